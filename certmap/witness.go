package certmap

import (
	"bytes"

	"github.com/forestrie/go-certassets/hashtree"
)

// Witness returns the pruned tree proving the value committed for key.
//
// When key is present its entry is the only value revealed, every other node
// on the path contributes just a digest. When key is absent the labels on the
// search path are revealed with their values pruned. The search path always
// passes through the in-order neighbours of an absent key, so the result is a
// proof of absence.
//
// Either way the witness reconstructs to RootHash.
func (m *Map) Witness(key []byte) hashtree.Tree {
	_, present := m.Get(key)
	return witness(m.root, key, !present)
}

func witness(n *node, key []byte, revealLabels bool) hashtree.Tree {
	if n == nil {
		return hashtree.Empty()
	}

	c := bytes.Compare(key, n.key)
	if c == 0 {
		return shape(n,
			pruned(n.left),
			hashtree.Labeled(n.key, hashtree.Leaf(bytes.Clone(n.value[:]))),
			pruned(n.right))
	}

	data := hashtree.Pruned(n.dataHash)
	if revealLabels {
		data = hashtree.Labeled(n.key, hashtree.Pruned(hashtree.LeafHash(n.value[:])))
	}
	if c < 0 {
		return shape(n, witness(n.left, key, revealLabels), data, pruned(n.right))
	}
	return shape(n, pruned(n.left), data, witness(n.right, key, revealLabels))
}

func pruned(n *node) hashtree.Tree {
	if n == nil {
		return hashtree.Empty()
	}
	return hashtree.Pruned(n.subtreeHash)
}

// shape arranges the parts exactly as newNode hashes them
func shape(n *node, left, data, right hashtree.Tree) hashtree.Tree {
	switch {
	case n.left == nil && n.right == nil:
		return data
	case n.right == nil:
		return hashtree.Fork(left, data)
	case n.left == nil:
		return hashtree.Fork(data, right)
	default:
		return hashtree.Fork(left, hashtree.Fork(data, right))
	}
}
