package hashtree

import "errors"

// HashBytes is the width of every digest in a hash tree.
const HashBytes = 32

type Hash = [HashBytes]byte

type Kind uint8

const (
	KindEmpty   Kind = 0
	KindFork    Kind = 1
	KindLabeled Kind = 2
	KindLeaf    Kind = 3
	KindPruned  Kind = 4
)

var (
	ErrMalformedTree = errors.New("hashtree: malformed tree encoding")
	ErrBadHashSize   = errors.New("hashtree: pruned digest must be 32 bytes")
)

// Tree is a single hash tree node. Which fields are meaningful depends on Kind:
//
//	KindFork     Left, Right
//	KindLabeled  Label, Left (the labeled sub tree)
//	KindLeaf     Value
//	KindPruned   Digest
type Tree struct {
	Kind   Kind
	Label  []byte
	Value  []byte
	Digest Hash
	Left   *Tree
	Right  *Tree
}

func Empty() Tree {
	return Tree{Kind: KindEmpty}
}

func Fork(left, right Tree) Tree {
	return Tree{Kind: KindFork, Left: &left, Right: &right}
}

func Labeled(label []byte, subtree Tree) Tree {
	return Tree{Kind: KindLabeled, Label: label, Left: &subtree}
}

func Leaf(value []byte) Tree {
	return Tree{Kind: KindLeaf, Value: value}
}

func Pruned(digest Hash) Tree {
	return Tree{Kind: KindPruned, Digest: digest}
}

// Subtree returns the tree beneath a labeled node.
func (t Tree) Subtree() Tree {
	if t.Kind != KindLabeled || t.Left == nil {
		return Empty()
	}
	return *t.Left
}
