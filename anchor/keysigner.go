package anchor

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"fmt"

	"github.com/google/uuid"
	"github.com/veraison/go-cose"
)

// IdentifiableCoseSigner is a COSE signer that can also name its key and
// provide the public half, which is what a certificate embeds.
type IdentifiableCoseSigner interface {
	cose.Signer
	PublicKey() (*ecdsa.PublicKey, error)
	KeyIdentifier() string
}

// KeySigner signs with a local ECDSA key.
type KeySigner struct {
	cose.Signer
	key           *ecdsa.PrivateKey
	keyIdentifier string
}

// NewKeySigner selects the COSE algorithm from the key curve. An empty
// keyIdentifier is replaced by a random uuid.
func NewKeySigner(key *ecdsa.PrivateKey, keyIdentifier string) (*KeySigner, error) {
	alg, err := curveAlgorithm(key.Curve)
	if err != nil {
		return nil, err
	}
	signer, err := cose.NewSigner(alg, key)
	if err != nil {
		return nil, err
	}
	if keyIdentifier == "" {
		keyIdentifier = uuid.NewString()
	}
	return &KeySigner{Signer: signer, key: key, keyIdentifier: keyIdentifier}, nil
}

func (s *KeySigner) PublicKey() (*ecdsa.PublicKey, error) {
	return &s.key.PublicKey, nil
}

func (s *KeySigner) KeyIdentifier() string {
	return s.keyIdentifier
}

func curveAlgorithm(curve elliptic.Curve) (cose.Algorithm, error) {
	switch curve {
	case elliptic.P256():
		return cose.AlgorithmES256, nil
	case elliptic.P384():
		return cose.AlgorithmES384, nil
	case elliptic.P521():
		return cose.AlgorithmES512, nil
	default:
		return cose.Algorithm(0), fmt.Errorf("%w: %s", ErrUnsupportedCurve, curve.Params().Name)
	}
}
