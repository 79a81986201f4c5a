package hashtree

/*

# Hash trees for certified data

A hash tree is the wire level shape of a certified value. It is a binary tree
of forks whose leaves are either revealed (labeled sub trees and leaf values)
or pruned (replaced by their digest). Any tree reconstructs to a single 32
byte digest, and pruning a sub tree never changes that digest. A verifier
holding a trusted digest can therefore accept a heavily pruned tree and read
only the values it reveals.

The node digests are domain separated SHA-256:

	Empty           H(ds("ic-hashtree-empty"))
	Fork(l, r)      H(ds("ic-hashtree-fork")    || D(l) || D(r))
	Labeled(k, t)   H(ds("ic-hashtree-labeled") || k || D(t))
	Leaf(v)         H(ds("ic-hashtree-leaf")    || v)
	Pruned(h)       h

where ds(s) is the single byte length of s followed by s.

Lookup treats the labeled nodes reachable through forks at one level as a
sorted sequence. A label is proven absent only when its neighbours on both
sides are revealed and no pruned node sits between them.

The canonical encoding is deterministic CBOR behind the self-describe tag
(55799):

	[0]
	[1, left, right]
	[2, label, subtree]
	[3, value]
	[4, digest]

*/
