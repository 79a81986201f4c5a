package assets

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-certassets/certmap"
	"github.com/forestrie/go-certassets/hashtree"
)

// Label is the namespace the asset tree is wrapped under before its digest is
// published.
const Label = "http_assets"

// ContentHash is the hash committed for a body.
func ContentHash(body []byte) hashtree.Hash {
	return sha256.Sum256(body)
}

// Registrar keeps the Store and the commitment tree in step.
//
// Add and AddValueToCertify stage changes against a working version of the
// tree. Finalize publishes the working digest, and only once the anchor has
// accepted it are the staged records written to the store and the working
// tree made current. Readers therefore never see a record whose hash is not
// covered by the published digest.
//
// Registrar is not safe for concurrent use, see Service.
type Registrar struct {
	log    logger.Logger
	anchor Anchor
	store  *Store

	committed *certmap.Map
	working   *certmap.Map
	pending   map[string]Record
}

func NewRegistrar(log logger.Logger, anchor Anchor, store *Store) *Registrar {
	return &Registrar{
		log:       log,
		anchor:    anchor,
		store:     store,
		committed: certmap.New(),
		working:   certmap.New(),
		pending:   map[string]Record{},
	}
}

// Add stages body, with headers, under every path in paths. The body is
// hashed once and each path gets its own copy of it.
func (r *Registrar) Add(paths []string, headers Headers, body []byte) hashtree.Hash {
	hash := ContentHash(body)
	for _, path := range paths {
		r.working = r.working.Insert([]byte(path), hash)
		r.pending[path] = Record{Headers: headers, Body: body}.clone()
	}
	r.log.Debugf("staged %d bytes at %v: %x", len(body), paths, hash)
	return hash
}

// AddValueToCertify commits hash under label without storing any content.
func (r *Registrar) AddValueToCertify(label string, hash hashtree.Hash) {
	r.working = r.working.Insert([]byte(label), hash)
}

// Pending returns the number of staged paths
func (r *Registrar) Pending() int {
	return len(r.pending)
}

// Discard drops everything staged since the last Finalize.
func (r *Registrar) Discard() {
	r.working = r.committed
	r.pending = map[string]Record{}
}

// Finalize publishes the digest of the working tree. On failure the staged
// batch is discarded and the previously published state is left as it was.
func (r *Registrar) Finalize(ctx context.Context) error {
	digest := hashtree.LabeledHash([]byte(Label), r.working.RootHash())

	if err := r.anchor.Publish(ctx, digest); err != nil {
		r.log.Infof("discarding %d staged assets, publish failed: %v", len(r.pending), err)
		r.Discard()
		return fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	for path, rec := range r.pending {
		r.store.put(path, rec)
	}
	r.log.Infof("published asset digest %x covering %d paths", digest, r.working.Len())

	r.committed = r.working
	r.pending = map[string]Record{}
	return nil
}

// RootHash returns the published digest: the committed tree wrapped under Label.
func (r *Registrar) RootHash() hashtree.Hash {
	return hashtree.LabeledHash([]byte(Label), r.committed.RootHash())
}

// Committed returns the hash committed for path in the published tree.
func (r *Registrar) Committed(path string) (hashtree.Hash, bool) {
	return r.committed.Get([]byte(path))
}

// Witness returns the labeled witness for path against RootHash.
func (r *Registrar) Witness(path string) hashtree.Tree {
	return hashtree.Labeled([]byte(Label), r.committed.Witness([]byte(path)))
}

func (r *Registrar) Store() *Store {
	return r.store
}
