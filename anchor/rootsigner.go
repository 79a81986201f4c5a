package anchor

import (
	"crypto/rand"
	"time"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	dtcose "github.com/datatrails/go-datatrails-common/cose"
	"github.com/forestrie/go-certassets/hashtree"
	"github.com/veraison/go-cose"
)

// CertifiedState is what a certificate commits to.
type CertifiedState struct {
	// Root is the published digest. It is present while signing and removed
	// from the published payload.
	Root []byte `cbor:"1,keyasint"`
	// Timestamp is the unix time (milliseconds) read when the digest was
	// signed. Including it allows the same digest to be re-signed.
	Timestamp int64 `cbor:"2,keyasint"`
	// Sequence counts the digests published by one anchor, starting at 1.
	Sequence uint64 `cbor:"3,keyasint"`
}

// RootSigner turns asset digests into certificates for one issuer.
type RootSigner struct {
	issuer string
	codec  dtcbor.CBORCodec
}

func NewRootSigner(issuer string, codec dtcbor.CBORCodec) RootSigner {
	return RootSigner{issuer: issuer, codec: codec}
}

// Sign certifies digest as the sequence'th digest issued for subject.
//
// The signature covers the state with the digest in it, the returned
// certificate carries the state without it.
func (rs RootSigner) Sign(
	signer IdentifiableCoseSigner, subject string, digest hashtree.Hash, issuedAt time.Time, sequence uint64,
) ([]byte, error) {
	publicKey, err := signer.PublicKey()
	if err != nil {
		return nil, err
	}

	state := CertifiedState{
		Root:      digest[:],
		Timestamp: issuedAt.UnixMilli(),
		Sequence:  sequence,
	}
	signedPayload, err := rs.codec.MarshalCBOR(state)
	if err != nil {
		return nil, err
	}

	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				dtcose.HeaderLabelCWTClaims: dtcose.NewCNFClaim(
					rs.issuer, subject, signer.KeyIdentifier(), signer.Algorithm(), *publicKey),
			},
		},
		Payload: signedPayload,
	}
	if err = msg.Sign(rand.Reader, nil, signer); err != nil {
		return nil, err
	}

	state.Root = nil
	if msg.Payload, err = rs.codec.MarshalCBOR(state); err != nil {
		return nil, err
	}
	return msg.MarshalCBOR()
}

// NewCertificateCodec is the deterministic codec certificate payloads are
// written and read with.
func NewCertificateCodec() (dtcbor.CBORCodec, error) {
	return dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts(), // unsigned int decodes to uint64
	)
}
