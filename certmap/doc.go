// Package certmap provides the commitment tree for certified content: an
// ordered map from byte string keys to 32 byte hashes whose every node caches
// the hash tree digest of its subtree.
//
// The map is a treap. Node priority is SHA-256 of the key, so the shape of the
// tree, and hence the root digest and the shape of every witness, is a pure
// function of the set of keys. Two maps holding the same entries are
// indistinguishable regardless of the order the entries were inserted in.
//
// Maps are persistent: Insert returns a new version and leaves the receiver
// untouched, sharing all nodes off the modified path. Holding on to a version
// is how callers take a consistent snapshot or abandon a batch of inserts.
//
// A node with key k and value v commits to
//
//	data = Labeled(k, Leaf(v))
//
// and its subtree to one of
//
//	data                          no children
//	Fork(left, data)              left child only
//	Fork(data, right)             right child only
//	Fork(left, Fork(data, right)) both children
package certmap
