package hashtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample builds the tree
//
//	        fork
//	      /      \
//	   fork      labeled(c)
//	  /    \        |
//	l(a)   l(b)   leaf(3)
//	 |      |
//	leaf(1) leaf(2)
func sample() Tree {
	return Fork(
		Fork(
			Labeled([]byte("a"), Leaf([]byte("1"))),
			Labeled([]byte("b"), Leaf([]byte("2"))),
		),
		Labeled([]byte("c"), Leaf([]byte("3"))),
	)
}

func TestReconstructStableUnderPruning(t *testing.T) {
	full := sample()
	root := full.Reconstruct()

	left := Fork(
		Labeled([]byte("a"), Leaf([]byte("1"))),
		Labeled([]byte("b"), Leaf([]byte("2"))),
	)
	tests := []struct {
		name string
		tree Tree
	}{
		{"fully pruned", Pruned(root)},
		{"right pruned", Fork(left, Pruned(Labeled([]byte("c"), Leaf([]byte("3"))).Reconstruct()))},
		{"left pruned", Fork(Pruned(left.Reconstruct()), Labeled([]byte("c"), Leaf([]byte("3"))))},
		{"leaf pruned", Fork(left, Labeled([]byte("c"), Pruned(LeafHash([]byte("3")))))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, root, tt.tree.Reconstruct())
		})
	}
}

func TestHashesAreDomainSeparated(t *testing.T) {
	v := []byte("x")
	assert.NotEqual(t, LeafHash(v), LabeledHash(v, Hash{}))
	assert.NotEqual(t, EmptyHash(), LeafHash(nil))
	assert.NotEqual(t, ForkHash(EmptyHash(), EmptyHash()), EmptyHash())
	assert.Equal(t, EmptyHash(), Empty().Reconstruct())
}

func TestLookup(t *testing.T) {
	full := sample()

	r := full.Lookup([]byte("b"))
	require.Equal(t, LookupFound, r.Status)
	value, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, []byte("2"), value)

	assert.Equal(t, LookupAbsent, full.Lookup([]byte("0")).Status)
	assert.Equal(t, LookupAbsent, full.Lookup([]byte("bb")).Status)
	assert.Equal(t, LookupAbsent, full.Lookup([]byte("d")).Status)

	// b is hidden, so anything between a and c is unknown
	hidden := Fork(
		Fork(
			Labeled([]byte("a"), Leaf([]byte("1"))),
			Pruned(Labeled([]byte("b"), Leaf([]byte("2"))).Reconstruct()),
		),
		Labeled([]byte("c"), Leaf([]byte("3"))),
	)
	assert.Equal(t, LookupUnknown, hidden.Lookup([]byte("b")).Status)
	assert.Equal(t, LookupUnknown, hidden.Lookup([]byte("bb")).Status)
	assert.Equal(t, LookupAbsent, hidden.Lookup([]byte("0")).Status)
	assert.Equal(t, LookupFound, hidden.Lookup([]byte("c")).Status)

	assert.Equal(t, LookupAbsent, Empty().Lookup([]byte("a")).Status)
	assert.Equal(t, LookupUnknown, Pruned(full.Reconstruct()).Lookup([]byte("a")).Status)
}

func TestLookupNested(t *testing.T) {
	inner := Fork(
		Labeled([]byte("/a"), Leaf([]byte("ha"))),
		Labeled([]byte("/b"), Pruned(LeafHash([]byte("hb")))),
	)
	tree := Labeled([]byte("http_assets"), inner)

	value, ok := tree.Lookup([]byte("http_assets"), []byte("/a")).Value()
	require.True(t, ok)
	assert.Equal(t, []byte("ha"), value)

	r := tree.Lookup([]byte("http_assets"), []byte("/b"))
	assert.Equal(t, LookupFound, r.Status)
	_, ok = r.Value()
	assert.False(t, ok, "a pruned value is found but not readable")

	assert.Equal(t, LookupAbsent, tree.Lookup([]byte("other"), []byte("/a")).Status)
}

func TestEncodeDecode(t *testing.T) {
	tree := Labeled([]byte("http_assets"), Fork(
		Fork(Pruned(LeafHash([]byte("p"))), Labeled([]byte("/x"), Leaf(nil))),
		Empty(),
	))

	data, err := Encode(tree)
	require.NoError(t, err)
	require.Equal(t, []byte{0xd9, 0xd9, 0xf7}, data[:3])

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, tree.Reconstruct(), decoded.Reconstruct())

	again, err := Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, data, again, "encoding must be canonical")
}

func TestDecodeUntagged(t *testing.T) {
	// [3, h'01']
	decoded, err := Decode([]byte{0x82, 0x03, 0x41, 0x01})
	require.NoError(t, err)
	assert.Equal(t, KindLeaf, decoded.Kind)
	assert.Equal(t, []byte{1}, decoded.Value)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not an array", []byte{0x01}, ErrMalformedTree},
		{"unknown kind", []byte{0x81, 0x09}, ErrMalformedTree},
		{"wrong arity", []byte{0x82, 0x01, 0x80}, ErrMalformedTree},
		{"short pruned", []byte{0x82, 0x04, 0x41, 0x01}, ErrBadHashSize},
		{"garbage", []byte{0xff, 0xff}, ErrMalformedTree},
		{"foreign tag", []byte{0xc6, 0x81, 0x00}, ErrMalformedTree},
		{"tag without content", []byte{0xd9, 0xd9, 0xf7}, ErrMalformedTree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeDeepTree(t *testing.T) {
	tree := Labeled([]byte("http_assets"), Leaf([]byte("x")))
	for i := 0; i < 2000; i++ {
		tree = Fork(tree, Pruned(LeafHash([]byte{byte(i)})))
	}

	data, err := Encode(tree)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, tree.Reconstruct(), decoded.Reconstruct())
}
