package assets

import (
	"context"

	"github.com/forestrie/go-certassets/hashtree"
)

// Anchor publishes the asset digest to whatever remote verifiers trust, and
// hands back the certificate issued for the most recently published digest.
//
// CurrentCertificate returns false until a Publish has succeeded.
type Anchor interface {
	Publish(ctx context.Context, digest hashtree.Hash) error
	CurrentCertificate() ([]byte, bool)
}

// CertificateVerifier checks that certificate vouches for digest.
type CertificateVerifier func(certificate []byte, digest hashtree.Hash) error
