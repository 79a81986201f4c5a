package assets

import (
	"sort"
	"sync"
)

// Store maps request paths to records. Put replaces, there is no delete.
//
// Records are copied on the way in and on the way out. A caller mutating a
// body it handed over, or got back, must not be able to change bytes whose
// hash is already committed.
type Store struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewStore() *Store {
	return &Store{records: map[string]Record{}}
}

func (s *Store) Put(path string, headers Headers, body []byte) {
	s.put(path, Record{Headers: headers, Body: body}.clone())
}

func (s *Store) put(path string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[path] = rec
}

func (s *Store) Get(path string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[path]
	if !ok {
		return Record{}, false
	}
	return rec.clone(), true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Paths returns the stored paths in sorted order
func (s *Store) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0, len(s.records))
	for p := range s.records {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
