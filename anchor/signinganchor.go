package anchor

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-certassets/hashtree"
)

// CertificateStore receives a copy of every certificate issued. It is
// satisfied by *azblob.Storer.
type CertificateStore interface {
	Put(ctx context.Context, identity string, source io.ReadSeekCloser, opts ...azblob.Option) (*azblob.WriteResponse, error)
}

// SigningAnchor certifies published digests by signing them itself.
type SigningAnchor struct {
	mu sync.RWMutex

	log        logger.Logger
	signer     IdentifiableCoseSigner
	rootSigner RootSigner
	subject    string
	store      CertificateStore
	now        func() time.Time

	sequence    uint64
	certificate []byte
}

type Option func(*SigningAnchor)

// WithCertificateStore writes each certificate to store before it becomes
// current. A failed write fails the publish.
func WithCertificateStore(store CertificateStore) Option {
	return func(a *SigningAnchor) {
		a.store = store
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *SigningAnchor) {
		a.now = now
	}
}

func NewSigningAnchor(
	log logger.Logger, signer IdentifiableCoseSigner, issuer string, subject string, opts ...Option,
) (*SigningAnchor, error) {
	codec, err := NewCertificateCodec()
	if err != nil {
		return nil, err
	}
	a := &SigningAnchor{
		log:        log,
		signer:     signer,
		rootSigner: NewRootSigner(issuer, codec),
		subject:    subject,
		now:        time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// Publish signs digest and, once any configured store has accepted the
// certificate, makes it the current certificate.
func (a *SigningAnchor) Publish(ctx context.Context, digest hashtree.Hash) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	sequence := a.sequence + 1
	data, err := a.rootSigner.Sign(a.signer, a.subject, digest, a.now(), sequence)
	if err != nil {
		return err
	}

	if a.store != nil {
		blobPath := CertificateBlobPath(a.subject, sequence)
		// never replace a certificate that was already issued
		_, err = a.store.Put(ctx, blobPath, azblob.NewBytesReaderCloser(data),
			azblob.WithTags(map[string]string{RootTag: hex.EncodeToString(digest[:])}),
			azblob.WithEtagNoneMatch("*"),
		)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCertificateStore, blobPath, err)
		}
	}

	a.sequence = sequence
	a.certificate = data
	a.log.Debugf("certified digest %x as %s #%d", digest, a.subject, a.sequence)
	return nil
}

func (a *SigningAnchor) CurrentCertificate() ([]byte, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.certificate == nil {
		return nil, false
	}
	return bytes.Clone(a.certificate), true
}

// Sequence returns the number of digests certified so far.
func (a *SigningAnchor) Sequence() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sequence
}
