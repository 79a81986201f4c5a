package certmap

import (
	"bytes"
	"crypto/sha256"

	"github.com/forestrie/go-certassets/hashtree"
)

type node struct {
	key      []byte
	value    hashtree.Hash
	priority hashtree.Hash

	left  *node
	right *node

	size        int
	dataHash    hashtree.Hash
	subtreeHash hashtree.Hash
}

func keyPriority(key []byte) hashtree.Hash {
	return sha256.Sum256(key)
}

// newNode is the only constructor. Nodes are immutable once built so the
// cached hashes never go stale.
func newNode(key []byte, value, priority hashtree.Hash, left, right *node) *node {
	n := &node{
		key:      key,
		value:    value,
		priority: priority,
		left:     left,
		right:    right,
		size:     1 + left.len() + right.len(),
	}
	n.dataHash = hashtree.LabeledHash(key, hashtree.LeafHash(value[:]))

	switch {
	case left == nil && right == nil:
		n.subtreeHash = n.dataHash
	case right == nil:
		n.subtreeHash = hashtree.ForkHash(left.subtreeHash, n.dataHash)
	case left == nil:
		n.subtreeHash = hashtree.ForkHash(n.dataHash, right.subtreeHash)
	default:
		n.subtreeHash = hashtree.ForkHash(
			left.subtreeHash, hashtree.ForkHash(n.dataHash, right.subtreeHash))
	}
	return n
}

func (n *node) len() int {
	if n == nil {
		return 0
	}
	return n.size
}

// outranks reports whether a belongs above b. Equal priorities are only
// possible for equal keys, the key comparison keeps the order total anyway.
func outranks(a, b *node) bool {
	if c := bytes.Compare(a.priority[:], b.priority[:]); c != 0 {
		return c > 0
	}
	return bytes.Compare(a.key, b.key) < 0
}

func insert(n *node, key []byte, value, priority hashtree.Hash) *node {
	if n == nil {
		return newNode(key, value, priority, nil, nil)
	}

	c := bytes.Compare(key, n.key)
	if c == 0 {
		return newNode(n.key, value, n.priority, n.left, n.right)
	}

	if c < 0 {
		left := insert(n.left, key, value, priority)
		if outranks(left, n) {
			// rotate right
			return newNode(left.key, left.value, left.priority,
				left.left, newNode(n.key, n.value, n.priority, left.right, n.right))
		}
		return newNode(n.key, n.value, n.priority, left, n.right)
	}

	right := insert(n.right, key, value, priority)
	if outranks(right, n) {
		// rotate left
		return newNode(right.key, right.value, right.priority,
			newNode(n.key, n.value, n.priority, n.left, right.left), right.right)
	}
	return newNode(n.key, n.value, n.priority, n.left, right)
}
