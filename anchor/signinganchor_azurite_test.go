//go:build integration && azurite

package anchor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/forestrie/go-certassets/certtesting"
	"github.com/forestrie/go-certassets/hashtree"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigningAnchorAzurite(t *testing.T) {
	ctx := context.Background()
	tc := certtesting.NewBlobTestContext(t, certtesting.TestConfig{TestLabelPrefix: "certassets-anchor"})
	subject := "azurite-" + uuid.NewString()

	sc := NewTestSignerContext(t, tc.Log, "synsation.org", subject, WithCertificateStore(tc.Storer))

	digest := hashtree.Hash(sha256.Sum256([]byte("azurite")))
	require.NoError(t, sc.Anchor.Publish(ctx, digest))

	rr, err := tc.Storer.Reader(ctx, CertificateBlobPath(subject, 1), azblob.WithGetTags())
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(digest[:]), rr.Tags[RootTag])

	cert, _ := sc.Anchor.CurrentCertificate()
	assert.NoError(t, sc.Verifier()(cert, digest))
}
