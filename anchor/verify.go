package anchor

import (
	"crypto/ecdsa"
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	dtcose "github.com/datatrails/go-datatrails-common/cose"
	"github.com/forestrie/go-certassets/hashtree"
)

// Certificate is a decoded certificate whose signature has not been checked.
type Certificate struct {
	codec  dtcbor.CBORCodec
	signed *dtcose.CoseSign1Message

	// State is the published state. Its Root is always empty.
	State CertifiedState
}

// DecodeCertificate decodes a certificate without verifying it.
func DecodeCertificate(codec dtcbor.CBORCodec, data []byte) (*Certificate, error) {
	signed, err := dtcose.NewCoseSign1MessageFromCBOR(
		data, dtcose.WithDecOptions(dtcbor.NewDeterministicDecOpts()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCertificateDecode, err)
	}

	c := &Certificate{codec: codec, signed: signed}
	if err = codec.UnmarshalInto(signed.Payload, &c.State); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCertificateDecode, err)
	}
	if len(c.State.Root) != 0 {
		return nil, ErrStateRootPresent
	}
	return c, nil
}

// PublicKey returns the confirmation key named in the certificate claims.
func (c *Certificate) PublicKey() (*ecdsa.PublicKey, error) {
	key, _, err := dtcose.NewCWTPublicKeyProvider(c.signed).PublicKey()
	if err != nil {
		return nil, err
	}
	ecKey, ok := key.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: confirmation key is %T", ErrUntrustedKey, key)
	}
	return ecKey, nil
}

// Verify checks the signature with digest restored as the root. It proves
// the certificate's own key vouched for digest, Verifier additionally pins
// that key.
func (c *Certificate) Verify(digest hashtree.Hash) error {
	state := c.State
	state.Root = digest[:]
	payload, err := c.codec.MarshalCBOR(state)
	if err != nil {
		return err
	}

	detached := c.signed.Payload
	c.signed.Payload = payload
	defer func() { c.signed.Payload = detached }()

	return c.signed.VerifyWithProvider(dtcose.NewCWTPublicKeyProvider(c.signed), nil)
}

// Verifier returns a function that accepts a certificate only if it was
// signed by trusted and vouches for digest.
func Verifier(trusted *ecdsa.PublicKey) func(certificate []byte, digest hashtree.Hash) error {
	return func(certificate []byte, digest hashtree.Hash) error {
		codec, err := NewCertificateCodec()
		if err != nil {
			return err
		}
		c, err := DecodeCertificate(codec, certificate)
		if err != nil {
			return err
		}

		claimed, err := c.PublicKey()
		if err != nil {
			return err
		}
		if !trusted.Equal(claimed) {
			return ErrUntrustedKey
		}
		return c.Verify(digest)
	}
}
