package anchor

import (
	"context"
	"crypto/elliptic"
	"crypto/sha256"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-certassets/hashtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type put struct {
	path string
	data []byte
}

type fakeStore struct {
	puts []put
	err  error
}

func (s *fakeStore) Put(ctx context.Context, identity string, source io.ReadSeekCloser, opts ...azblob.Option) (*azblob.WriteResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	data, err := io.ReadAll(source)
	if err != nil {
		return nil, err
	}
	s.puts = append(s.puts, put{path: identity, data: data})
	return &azblob.WriteResponse{}, nil
}

func testLog() logger.Logger {
	logger.New("NOOP")
	return logger.Sugar.WithServiceName("anchor-test")
}

func TestSigningAnchorPublish(t *testing.T) {
	ctx := context.Background()
	tc := NewTestSignerContext(t, testLog(), "synsation.org", "assets",
		WithClock(func() time.Time { return time.UnixMilli(1700000000000) }))

	_, ok := tc.Anchor.CurrentCertificate()
	require.False(t, ok, "no certificate before the first publish")

	first := hashtree.Hash(sha256.Sum256([]byte("first")))
	require.NoError(t, tc.Anchor.Publish(ctx, first))
	cert, ok := tc.Anchor.CurrentCertificate()
	require.True(t, ok)
	assert.Equal(t, uint64(1), tc.Anchor.Sequence())

	verify := tc.Verifier()
	assert.NoError(t, verify(cert, first))
	assert.Error(t, verify(cert, hashtree.Hash{}))

	codec, err := NewCertificateCodec()
	require.NoError(t, err)
	c, err := DecodeCertificate(codec, cert)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), c.State.Timestamp)
	assert.Equal(t, uint64(1), c.State.Sequence)

	second := hashtree.Hash(sha256.Sum256([]byte("second")))
	require.NoError(t, tc.Anchor.Publish(ctx, second))
	cert2, _ := tc.Anchor.CurrentCertificate()
	assert.Equal(t, uint64(2), tc.Anchor.Sequence())
	assert.NoError(t, verify(cert2, second))
	assert.Error(t, verify(cert2, first))
}

func TestVerifierRejectsOtherKeys(t *testing.T) {
	ctx := context.Background()
	signing := NewTestSignerContext(t, testLog(), "synsation.org", "assets")
	other := NewTestSignerContext(t, testLog(), "synsation.org", "assets")

	digest := hashtree.Hash(sha256.Sum256([]byte("x")))
	require.NoError(t, signing.Anchor.Publish(ctx, digest))
	cert, _ := signing.Anchor.CurrentCertificate()

	err := other.Verifier()(cert, digest)
	assert.ErrorIs(t, err, ErrUntrustedKey)

	err = signing.Verifier()([]byte("not cose"), digest)
	assert.ErrorIs(t, err, ErrCertificateDecode)
}

func TestSigningAnchorCertificateStore(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	tc := NewTestSignerContext(t, testLog(), "synsation.org", "assets", WithCertificateStore(store))

	digest := hashtree.Hash(sha256.Sum256([]byte("stored")))
	require.NoError(t, tc.Anchor.Publish(ctx, digest))
	require.NoError(t, tc.Anchor.Publish(ctx, digest))

	require.Len(t, store.puts, 2)
	assert.Equal(t, "v1/certassets/assets/certificates/0000000000000001.sth", store.puts[0].path)
	assert.Equal(t, "v1/certassets/assets/certificates/0000000000000002.sth", store.puts[1].path)

	cert, _ := tc.Anchor.CurrentCertificate()
	assert.Equal(t, store.puts[1].data, cert)
}

func TestSigningAnchorStoreFailure(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{err: errors.New("blob service unavailable")}
	tc := NewTestSignerContext(t, testLog(), "synsation.org", "assets", WithCertificateStore(store))

	err := tc.Anchor.Publish(ctx, hashtree.Hash{})
	assert.ErrorIs(t, err, ErrCertificateStore)

	_, ok := tc.Anchor.CurrentCertificate()
	assert.False(t, ok)
	assert.Equal(t, uint64(0), tc.Anchor.Sequence())
}

func TestNewKeySigner(t *testing.T) {
	tests := []struct {
		name    string
		curve   elliptic.Curve
		wantErr error
	}{
		{"P-256", elliptic.P256(), nil},
		{"P-384", elliptic.P384(), nil},
		{"P-521", elliptic.P521(), nil},
		{"P-224", elliptic.P224(), ErrUnsupportedCurve},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := TestGenerateECKey(t, tt.curve)
			signer, err := NewKeySigner(&key, "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, signer.KeyIdentifier())
			pub, err := signer.PublicKey()
			require.NoError(t, err)
			assert.True(t, pub.Equal(&key.PublicKey))
		})
	}
}
