package certtesting

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"sync"

	"github.com/forestrie/go-certassets/hashtree"
)

const memoryCertificatePrefix = "memory-anchor:"

var ErrNotCertified = errors.New("certificate does not vouch for digest")

// MemoryAnchor records published digests and issues a certificate that is
// just the hex digest. It trusts whatever it is given.
type MemoryAnchor struct {
	CallCounter

	mu        sync.Mutex
	published []hashtree.Hash
	failWith  error
}

func NewMemoryAnchor() *MemoryAnchor {
	return &MemoryAnchor{}
}

// FailWith makes every following Publish return err. nil restores success.
func (a *MemoryAnchor) FailWith(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failWith = err
}

func (a *MemoryAnchor) Publish(ctx context.Context, digest hashtree.Hash) error {
	a.IncMethodCall("Publish")
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failWith != nil {
		return a.failWith
	}
	a.published = append(a.published, digest)
	return nil
}

func (a *MemoryAnchor) CurrentCertificate() ([]byte, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.published) == 0 {
		return nil, false
	}
	last := a.published[len(a.published)-1]
	return []byte(memoryCertificatePrefix + hex.EncodeToString(last[:])), true
}

// Published returns every digest accepted so far, oldest first.
func (a *MemoryAnchor) Published() []hashtree.Hash {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]hashtree.Hash(nil), a.published...)
}

// Verify has the shape of assets.CertificateVerifier.
func (a *MemoryAnchor) Verify(certificate []byte, digest hashtree.Hash) error {
	if !strings.HasPrefix(string(certificate), memoryCertificatePrefix) {
		return ErrNotCertified
	}
	if string(certificate[len(memoryCertificatePrefix):]) != hex.EncodeToString(digest[:]) {
		return ErrNotCertified
	}
	return nil
}
