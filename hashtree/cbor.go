package hashtree

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// SelfDescribeTag marks the encoding as CBOR for content sniffing decoders.
const SelfDescribeTag = 55799

// selfDescribePrefix is SelfDescribeTag as encoded in front of every tree.
var selfDescribePrefix = []byte{0xd9, 0xd9, 0xf7}

// maxNestedLevels bounds decoding depth. Every level of a witness costs up to
// two arrays, so the decoder default of 32 is far too small.
const maxNestedLevels = 65535

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{MaxNestedLevels: maxNestedLevels}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Encode serializes t as self describing deterministic CBOR.
func Encode(t Tree) ([]byte, error) {
	return encMode.Marshal(cbor.Tag{Number: SelfDescribeTag, Content: encodeValue(t)})
}

func encodeValue(t Tree) []any {
	switch t.Kind {
	case KindFork:
		return []any{uint64(KindFork), encodeValue(*t.Left), encodeValue(*t.Right)}
	case KindLabeled:
		return []any{uint64(KindLabeled), nonNil(t.Label), encodeValue(t.Subtree())}
	case KindLeaf:
		return []any{uint64(KindLeaf), nonNil(t.Value)}
	case KindPruned:
		return []any{uint64(KindPruned), t.Digest[:]}
	default:
		return []any{uint64(KindEmpty)}
	}
}

// nonNil keeps empty byte strings from encoding as CBOR null
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

// Decode parses the Encode format. The self describe tag is optional, any
// other tag is rejected.
func Decode(data []byte) (Tree, error) {
	var v any
	if err := decMode.Unmarshal(bytes.TrimPrefix(data, selfDescribePrefix), &v); err != nil {
		return Tree{}, fmt.Errorf("%w: %v", ErrMalformedTree, err)
	}
	return decodeValue(v)
}

func decodeValue(v any) (Tree, error) {
	node, ok := v.([]any)
	if !ok || len(node) == 0 {
		return Tree{}, fmt.Errorf("%w: node is not a non empty array", ErrMalformedTree)
	}
	kind, ok := node[0].(uint64)
	if !ok {
		return Tree{}, fmt.Errorf("%w: node kind is not an unsigned int", ErrMalformedTree)
	}

	arity := map[Kind]int{KindEmpty: 1, KindFork: 3, KindLabeled: 3, KindLeaf: 2, KindPruned: 2}
	want, known := arity[Kind(kind)]
	if !known {
		return Tree{}, fmt.Errorf("%w: unknown node kind %d", ErrMalformedTree, kind)
	}
	if len(node) != want {
		return Tree{}, fmt.Errorf("%w: kind %d has %d fields, want %d", ErrMalformedTree, kind, len(node), want)
	}

	switch Kind(kind) {
	case KindFork:
		left, err := decodeValue(node[1])
		if err != nil {
			return Tree{}, err
		}
		right, err := decodeValue(node[2])
		if err != nil {
			return Tree{}, err
		}
		return Fork(left, right), nil
	case KindLabeled:
		label, ok := node[1].([]byte)
		if !ok {
			return Tree{}, fmt.Errorf("%w: label is not a byte string", ErrMalformedTree)
		}
		subtree, err := decodeValue(node[2])
		if err != nil {
			return Tree{}, err
		}
		return Labeled(label, subtree), nil
	case KindLeaf:
		value, ok := node[1].([]byte)
		if !ok {
			return Tree{}, fmt.Errorf("%w: leaf value is not a byte string", ErrMalformedTree)
		}
		return Leaf(value), nil
	case KindPruned:
		digest, ok := node[1].([]byte)
		if !ok {
			return Tree{}, fmt.Errorf("%w: pruned digest is not a byte string", ErrMalformedTree)
		}
		if len(digest) != HashBytes {
			return Tree{}, ErrBadHashSize
		}
		var h Hash
		copy(h[:], digest)
		return Pruned(h), nil
	default:
		return Empty(), nil
	}
}
