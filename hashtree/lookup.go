package hashtree

import "bytes"

type LookupStatus uint8

const (
	// LookupUnknown means the tree was pruned in a way that hides the answer
	LookupUnknown LookupStatus = iota
	LookupAbsent
	LookupFound
)

func (s LookupStatus) String() string {
	switch s {
	case LookupAbsent:
		return "absent"
	case LookupFound:
		return "found"
	default:
		return "unknown"
	}
}

type LookupResult struct {
	Status LookupStatus
	// Tree is the node found at the end of the path, valid only for LookupFound
	Tree Tree
}

// Value returns the leaf value for a found leaf.
func (r LookupResult) Value() ([]byte, bool) {
	if r.Status != LookupFound || r.Tree.Kind != KindLeaf {
		return nil, false
	}
	return r.Tree.Value, true
}

// Lookup follows path, one label per level, through the labeled nodes of t.
func (t Tree) Lookup(path ...[]byte) LookupResult {
	if len(path) == 0 {
		return LookupResult{Status: LookupFound, Tree: t}
	}
	if t.Kind == KindLeaf {
		return LookupResult{Status: LookupAbsent}
	}

	label, rest := path[0], path[1:]
	items := flatten(t, nil)

	for i, item := range items {
		if item.Kind != KindLabeled {
			continue
		}
		c := bytes.Compare(label, item.Label)
		if c == 0 {
			return item.Subtree().Lookup(rest...)
		}
		if c < 0 {
			// the label would sit immediately before item
			if i == 0 || items[i-1].Kind == KindLabeled {
				return LookupResult{Status: LookupAbsent}
			}
			return LookupResult{Status: LookupUnknown}
		}
	}

	if len(items) == 0 || items[len(items)-1].Kind == KindLabeled {
		return LookupResult{Status: LookupAbsent}
	}
	return LookupResult{Status: LookupUnknown}
}

// flatten collects the non fork nodes of one level, in order, skipping empties.
func flatten(t Tree, out []Tree) []Tree {
	switch t.Kind {
	case KindEmpty:
		return out
	case KindFork:
		out = flatten(*t.Left, out)
		return flatten(*t.Right, out)
	default:
		return append(out, t)
	}
}
