package anchor

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-certassets/hashtree"
	"github.com/stretchr/testify/require"
)

func TestGenerateECKey(t *testing.T, curve elliptic.Curve) ecdsa.PrivateKey {
	privateKey, err := ecdsa.GenerateKey(curve, rand.Reader)
	require.NoError(t, err)
	return *privateKey
}

func TestNewRootSigner(t *testing.T, issuer string) RootSigner {
	codec, err := NewCertificateCodec()
	require.NoError(t, err)
	return NewRootSigner(issuer, codec)
}

type TestSignerContext struct {
	Key    ecdsa.PrivateKey
	Signer *KeySigner
	Anchor *SigningAnchor
}

// NewTestSignerContext creates a SigningAnchor over a fresh P-256 key.
func NewTestSignerContext(t *testing.T, log logger.Logger, issuer string, subject string, opts ...Option) *TestSignerContext {
	key := TestGenerateECKey(t, elliptic.P256())
	signer, err := NewKeySigner(&key, "test attestation key")
	require.NoError(t, err)

	a, err := NewSigningAnchor(log, signer, issuer, subject, opts...)
	require.NoError(t, err)

	return &TestSignerContext{
		Key:    key,
		Signer: signer,
		Anchor: a,
	}
}

// Verifier accepts certificates signed by the context key
func (s *TestSignerContext) Verifier() func(certificate []byte, digest hashtree.Hash) error {
	return Verifier(&s.Key.PublicKey)
}
