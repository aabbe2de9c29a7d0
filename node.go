package veranda

// node is one segment of the field-path trie. A node exists for every
// segment of every key that was ever written; only nodes with a non-nil
// entry are visible through the dictionary API, the rest are structural
// ancestors. Children are owned by their parent, keyed by the case-folded
// segment; there are no cycles.
type node struct {
	parent   *node
	segment  string // original casing of this path segment
	key      string // full original-cased path down to this node
	children map[string]*node
	entry    *Entry

	// invalid caches the number of entries at or below this node whose
	// state is Invalid. Maintained on every state transition so subtree
	// queries never rescan.
	invalid int
}

func newRootNode() *node { return &node{} }

func (n *node) child(folded string) *node {
	if n.children == nil {
		return nil
	}
	return n.children[folded]
}

// ensureChild returns the child for seg, creating it on first use. The
// first writer of a segment fixes its stored casing.
func (n *node) ensureChild(seg string) *node {
	folded := foldSegment(seg)
	if c := n.child(folded); c != nil {
		return c
	}
	if n.children == nil {
		n.children = make(map[string]*node)
	}
	c := &node{
		parent:  n,
		segment: seg,
		key:     joinKey(n.key, seg),
	}
	n.children[folded] = c
	return c
}

// bumpInvalid adjusts the cached invalid count on n and every ancestor.
func (n *node) bumpInvalid(delta int) {
	for m := n; m != nil; m = m.parent {
		m.invalid += delta
	}
}

// prune removes n and any now-empty ancestors that neither carry an entry
// nor any children. The root is never pruned.
func (n *node) prune() {
	for m := n; m.parent != nil && m.entry == nil && len(m.children) == 0; {
		p := m.parent
		delete(p.children, foldSegment(m.segment))
		m = p
	}
}

// leadsTo reports whether other is n itself or a descendant of n.
func (n *node) leadsTo(other *node) bool {
	for m := other; m != nil; m = m.parent {
		if m == n {
			return true
		}
	}
	return false
}

// walk visits n and every descendant, entry-bearing or not. It stops early
// when fn returns false.
func (n *node) walk(fn func(*node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}
