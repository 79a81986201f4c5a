package certmap

import (
	"bytes"

	"github.com/forestrie/go-certassets/hashtree"
)

// Map is an immutable version of the commitment tree. The zero value is an
// empty map.
type Map struct {
	root *node
}

func New() *Map {
	return &Map{}
}

func (m *Map) Len() int {
	return m.root.len()
}

// Insert returns a new version with key committed to value, replacing any
// previous value. The key is copied.
func (m *Map) Insert(key []byte, value hashtree.Hash) *Map {
	if current, ok := m.Get(key); ok && current == value {
		return m
	}
	k := bytes.Clone(key)
	if k == nil {
		k = []byte{}
	}
	return &Map{root: insert(m.root, k, value, keyPriority(k))}
}

func (m *Map) Get(key []byte) (hashtree.Hash, bool) {
	n := m.root
	for n != nil {
		c := bytes.Compare(key, n.key)
		switch {
		case c == 0:
			return n.value, true
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return hashtree.Hash{}, false
}

// RootHash returns the digest of the full tree. It is cached on the root node.
func (m *Map) RootHash() hashtree.Hash {
	if m.root == nil {
		return hashtree.EmptyHash()
	}
	return m.root.subtreeHash
}

// Ascend calls fn for each entry in key order until fn returns false.
func (m *Map) Ascend(fn func(key []byte, value hashtree.Hash) bool) {
	ascend(m.root, fn)
}

func ascend(n *node, fn func(key []byte, value hashtree.Hash) bool) bool {
	if n == nil {
		return true
	}
	if !ascend(n.left, fn) {
		return false
	}
	if !fn(n.key, n.value) {
		return false
	}
	return ascend(n.right, fn)
}
