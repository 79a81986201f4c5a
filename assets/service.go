package assets

import (
	"sync"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-certassets/hashtree"
)

// Service is the certified asset state for one process. It is constructed
// once by the entry point and shared by reference with every handler.
//
// Mutating calls hold the write lock for the whole registration, including
// the publish in Finalize, so readers only ever observe published states.
// Reads share the read lock.
type Service struct {
	mu sync.RWMutex

	log       logger.Logger
	cfg       Config
	transform Transform
	registrar *Registrar
	loaded    bool
}

type ServiceOption func(*Service)

func WithConfig(cfg Config) ServiceOption {
	return func(s *Service) {
		s.cfg = cfg
	}
}

func WithTransform(transform Transform) ServiceOption {
	return func(s *Service) {
		s.transform = transform
	}
}

func NewService(log logger.Logger, anchor Anchor, opts ...ServiceOption) *Service {
	s := &Service{
		log:       log,
		cfg:       DefaultConfig(),
		transform: InjectDomainMetadata,
	}
	for _, o := range opts {
		o(s)
	}
	s.registrar = NewRegistrar(log, anchor, NewStore())
	return s
}

// Asset returns the record stored for path.
func (s *Service) Asset(path string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registrar.Store().Get(path)
}

// CertifiedAsset returns the record for path with the certificate header
// appended. An unknown path is reported by ok == false and a nil error.
func (s *Service) CertifiedAsset(path string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return Record{}, false, ErrNotInitialized
	}
	rec, ok := s.registrar.Store().Get(path)
	if !ok {
		return Record{}, false, nil
	}
	header, err := s.registrar.CertificateHeader(path)
	if err != nil {
		return Record{}, false, err
	}
	rec.Headers = append(rec.Headers, header)
	return rec, true, nil
}

func (s *Service) CertificateHeader(path string) (Header, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registrar.CertificateHeader(path)
}

// RootHash returns the most recently published digest.
func (s *Service) RootHash() hashtree.Hash {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registrar.RootHash()
}

// Paths lists every stored path.
func (s *Service) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registrar.Store().Paths()
}
