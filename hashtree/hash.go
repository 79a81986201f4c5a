package hashtree

import (
	"crypto/sha256"
)

var (
	sepEmpty   = domainSep("ic-hashtree-empty")
	sepFork    = domainSep("ic-hashtree-fork")
	sepLabeled = domainSep("ic-hashtree-labeled")
	sepLeaf    = domainSep("ic-hashtree-leaf")

	emptyHash = sum(sepEmpty)
)

func domainSep(s string) []byte {
	return append([]byte{byte(len(s))}, s...)
}

func sum(parts ...[]byte) Hash {
	hasher := sha256.New()
	for _, p := range parts {
		_, _ = hasher.Write(p)
	}
	var out Hash
	hasher.Sum(out[:0])
	return out
}

// EmptyHash is the digest of the empty tree
func EmptyHash() Hash {
	return emptyHash
}

// ForkHash computes:
//
//	H( ds("ic-hashtree-fork") || left[32] || right[32] )
func ForkHash(left, right Hash) Hash {
	return sum(sepFork, left[:], right[:])
}

// LabeledHash computes:
//
//	H( ds("ic-hashtree-labeled") || label || subtree[32] )
//
// Wrapping a digest under a fixed label is how independent trees share one
// published digest without their proofs colliding.
func LabeledHash(label []byte, subtree Hash) Hash {
	return sum(sepLabeled, label, subtree[:])
}

// LeafHash computes:
//
//	H( ds("ic-hashtree-leaf") || value )
func LeafHash(value []byte) Hash {
	return sum(sepLeaf, value)
}

// Reconstruct returns the digest the tree commits to. Pruned nodes contribute
// their carried digest so any pruning of a tree reconstructs the same value.
func (t Tree) Reconstruct() Hash {
	switch t.Kind {
	case KindFork:
		return ForkHash(t.Left.Reconstruct(), t.Right.Reconstruct())
	case KindLabeled:
		return LabeledHash(t.Label, t.Subtree().Reconstruct())
	case KindLeaf:
		return LeafHash(t.Value)
	case KindPruned:
		return t.Digest
	default:
		return emptyHash
	}
}
