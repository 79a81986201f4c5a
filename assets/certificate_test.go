package assets

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/forestrie/go-certassets/anchor"
	"github.com/forestrie/go-certassets/certtesting"
	"github.com/forestrie/go-certassets/hashtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCertificateHeader(t *testing.T) {
	value := FormatCertificateHeader([]byte{0xfb, 0xff}, []byte("tree"))
	assert.Equal(t, "certificate=:+/8=:, tree=:dHJlZQ==:", value)

	certificate, tree, err := ParseCertificateHeader(value)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xfb, 0xff}, certificate)
	assert.Equal(t, []byte("tree"), tree)
}

func TestParseCertificateHeaderMalformed(t *testing.T) {
	b64 := base64.StdEncoding.EncodeToString([]byte("x"))
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"missing tree", "certificate=:" + b64 + ":"},
		{"missing certificate", "tree=:" + b64 + ":"},
		{"unquoted", "certificate=" + b64 + ", tree=:" + b64 + ":"},
		{"no separator", "certificate:" + b64 + ":, tree=:" + b64 + ":"},
		{"duplicate", "certificate=:" + b64 + ":, certificate=:" + b64 + ":, tree=:" + b64 + ":"},
		{"url alphabet", "certificate=:-_8=:, tree=:" + b64 + ":"},
		{"unpadded", "certificate=:eA:, tree=:" + b64 + ":"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseCertificateHeader(tt.value)
			assert.ErrorIs(t, err, ErrHeaderMalformed)
		})
	}
}

func TestVerifyCertificateHeader(t *testing.T) {
	ctx := context.Background()
	r, memory := newTestRegistrar(t)
	r.Add([]string{"/a"}, nil, []byte("alpha"))
	r.Add([]string{"/b"}, nil, []byte("beta"))
	require.NoError(t, r.Finalize(ctx))

	headerA, err := r.CertificateHeader("/a")
	require.NoError(t, err)
	headerMissing, err := r.CertificateHeader("/missing")
	require.NoError(t, err)

	tests := []struct {
		name    string
		value   string
		path    string
		body    string
		verify  CertificateVerifier
		wantErr error
	}{
		{
			name: "certified", value: headerA.Value, path: "/a", body: "alpha",
			verify: memory.Verify,
		},
		{
			name: "tampered body", value: headerA.Value, path: "/a", body: "alphA",
			verify: memory.Verify, wantErr: ErrContentMismatch,
		},
		{
			name: "witness for another path", value: headerA.Value, path: "/b", body: "beta",
			verify: memory.Verify, wantErr: ErrPathNotCertified,
		},
		{
			name: "absence proof", value: headerMissing.Value, path: "/missing", body: "",
			verify: memory.Verify, wantErr: ErrPathNotCertified,
		},
		{
			name: "certificate rejected", value: headerA.Value, path: "/a", body: "alpha",
			verify: func([]byte, hashtree.Hash) error {
				return errors.New("untrusted")
			},
			wantErr: ErrCertificateRejected,
		},
		{
			name: "malformed", value: "tree=::", path: "/a", body: "alpha",
			verify: memory.Verify, wantErr: ErrHeaderMalformed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyCertificateHeader(tt.value, tt.path, []byte(tt.body), tt.verify)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAbsenceProofLookup(t *testing.T) {
	r, _ := newTestRegistrar(t)
	for _, p := range []string{"/a", "/c", "/e", "/g"} {
		r.Add([]string{p}, nil, []byte(p))
	}
	require.NoError(t, r.Finalize(context.Background()))

	w := r.Witness("/d")
	assert.Equal(t, r.RootHash(), w.Reconstruct())
	assert.Equal(t, hashtree.LookupAbsent, w.Lookup([]byte(Label), []byte("/d")).Status)
}

func TestSignedCertificateEndToEnd(t *testing.T) {
	ctx := context.Background()
	tc := certtesting.NewTestContext(t, certtesting.TestConfig{TestLabelPrefix: "assets-signed"})
	sc := anchor.NewTestSignerContext(t, tc.Log, "synsation.org", "assets")

	r := NewRegistrar(tc.Log, sc.Anchor, NewStore())
	r.Add([]string{"/", "/index.html"}, EntryPageHeaders(), []byte("<html></html>"))
	require.NoError(t, r.Finalize(ctx))

	for _, path := range []string{"/", "/index.html"} {
		header, err := r.CertificateHeader(path)
		require.NoError(t, err)
		assert.NoError(t, VerifyCertificateHeader(header.Value, path, []byte("<html></html>"), sc.Verifier()))
	}

	// a second key must not be able to vouch for this content
	other := anchor.NewTestSignerContext(t, tc.Log, "synsation.org", "assets")
	header, err := r.CertificateHeader("/")
	require.NoError(t, err)
	err = VerifyCertificateHeader(header.Value, "/", []byte("<html></html>"), other.Verifier())
	assert.ErrorIs(t, err, ErrCertificateRejected)
	assert.ErrorIs(t, err, anchor.ErrUntrustedKey)
}

func TestCertificateHeaderForEveryPath(t *testing.T) {
	r, memory := newTestRegistrar(t)
	paths := make([]string, 3000)
	for i := range paths {
		paths[i] = fmt.Sprintf("/assets/chunk-%04d.js", i)
		r.Add([]string{paths[i]}, nil, []byte(paths[i]))
	}
	require.NoError(t, r.Finalize(context.Background()))

	for _, path := range paths {
		header, err := r.CertificateHeader(path)
		require.NoError(t, err)
		require.NoError(t, VerifyCertificateHeader(header.Value, path, []byte(path), memory.Verify), path)
	}
}
