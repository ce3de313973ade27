package xmltree

// This file implements the navigation axes of spec.md §6, grounded
// step-for-step on original_source/src/access.rs: each Rust iterator
// (parent, children, ancestors, descendants, following/-siblings,
// preceding/-siblings, traverse(+reverse), level-order BFS) becomes a
// Go func returning a []Handle (the arena is small and in-memory, so
// the teacher's preference for concrete slices over lazy iterators in
// xmltree.go's Children/Descendants fits better than hand-rolled
// iterator structs).

// FirstChild returns the first child of h, or the zero Handle if h
// has no children.
func (t *Tree) FirstChild(h Handle) Handle { return t.n(h).firstChild }

// LastChild returns the last child of h, or the zero Handle if h has
// no children.
func (t *Tree) LastChild(h Handle) Handle { return t.n(h).lastChild }

// NextSibling returns the next sibling of h in its parent's child
// list, or the zero Handle if h is the last child.
func (t *Tree) NextSibling(h Handle) Handle { return t.n(h).nextSibling }

// PreviousSibling returns the previous sibling of h, or the zero
// Handle if h is the first child.
func (t *Tree) PreviousSibling(h Handle) Handle { return t.n(h).prevSibling }

// Children returns the direct children of h, in document order.
func (t *Tree) Children(h Handle) []Handle {
	var out []Handle
	for c := t.n(h).firstChild; c.valid(); c = t.n(c).nextSibling {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of direct children of h.
func (t *Tree) ChildCount(h Handle) int {
	n := 0
	for c := t.n(h).firstChild; c.valid(); c = t.n(c).nextSibling {
		n++
	}
	return n
}

// ContentChildren returns h's direct children that are not attribute
// or namespace declarations -- the part of the child range a
// serializer descends into, as opposed to the leading
// [Namespace*][Attribute*] range it reads from the element's maps.
func (t *Tree) ContentChildren(h Handle) []Handle {
	var out []Handle
	for c := t.n(h).firstChild; c.valid(); c = t.n(c).nextSibling {
		if category(t.Kind(c)) == CategoryContent {
			out = append(out, c)
		}
	}
	return out
}

// HasContentChildren reports whether h has at least one content
// (non-attribute, non-namespace) child.
func (t *Tree) HasContentChildren(h Handle) bool {
	for c := t.n(h).firstChild; c.valid(); c = t.n(c).nextSibling {
		if category(t.Kind(c)) == CategoryContent {
			return true
		}
	}
	return false
}

// Ancestors returns h's ancestors starting with its parent and ending
// with the document root.
func (t *Tree) Ancestors(h Handle) []Handle {
	var out []Handle
	for p := t.n(h).parent; p.valid(); p = t.n(p).parent {
		out = append(out, p)
	}
	return out
}

// Descendants returns every node under h, in document (pre-)order,
// not including h itself.
func (t *Tree) Descendants(h Handle) []Handle {
	var out []Handle
	var walk func(Handle)
	walk = func(cur Handle) {
		for c := t.n(cur).firstChild; c.valid(); c = t.n(c).nextSibling {
			out = append(out, c)
			walk(c)
		}
	}
	walk(h)
	return out
}

// FollowingSiblings returns h's younger siblings, nearest first.
func (t *Tree) FollowingSiblings(h Handle) []Handle {
	var out []Handle
	for s := t.n(h).nextSibling; s.valid(); s = t.n(s).nextSibling {
		out = append(out, s)
	}
	return out
}

// PrecedingSiblings returns h's older siblings, nearest first.
func (t *Tree) PrecedingSiblings(h Handle) []Handle {
	var out []Handle
	for s := t.n(h).prevSibling; s.valid(); s = t.n(s).prevSibling {
		out = append(out, s)
	}
	return out
}

// Following returns every node that follows h in document order,
// excluding h's own descendants and ancestors.
func (t *Tree) Following(h Handle) []Handle {
	var out []Handle
	cur := h
	for cur.valid() {
		for s := t.n(cur).nextSibling; s.valid(); s = t.n(s).nextSibling {
			out = append(out, s)
			out = append(out, t.Descendants(s)...)
		}
		cur = t.n(cur).parent
	}
	return out
}

// Preceding returns every node that precedes h in document order,
// excluding h's own ancestors.
func (t *Tree) Preceding(h Handle) []Handle {
	var out []Handle
	cur := h
	for cur.valid() {
		for s := t.n(cur).prevSibling; s.valid(); s = t.n(s).prevSibling {
			out = append(out, t.reverseDescendants(s)...)
			out = append(out, s)
		}
		cur = t.n(cur).parent
	}
	return out
}

func (t *Tree) reverseDescendants(h Handle) []Handle {
	d := t.Descendants(h)
	for i, j := 0, len(d)-1; i < j; i, j = i+1, j-1 {
		d[i], d[j] = d[j], d[i]
	}
	return d
}

// NodeEdge marks whether a Traverse step is entering (Start) or
// leaving (End) a node, so callers can tell container boundaries
// apart from leaves -- needed by the pretty-printer's Unmixed/Mixed
// stack (spec.md §8).
type NodeEdge uint8

const (
	Start NodeEdge = iota
	End
)

// TraverseStep pairs a Handle with which edge of it was reached.
type TraverseStep struct {
	Handle Handle
	Edge   NodeEdge
}

// Traverse walks h and its descendants in document order, emitting a
// Start step on entry to every node and an End step on leaving it.
// Nodes with no children (every non-element/non-document node, and
// childless elements) get their End immediately after their Start, so
// element structure is still visible in the stream.
func (t *Tree) Traverse(h Handle) []TraverseStep {
	var out []TraverseStep
	var walk func(Handle)
	walk = func(cur Handle) {
		out = append(out, TraverseStep{cur, Start})
		for c := t.n(cur).firstChild; c.valid(); c = t.n(c).nextSibling {
			walk(c)
		}
		out = append(out, TraverseStep{cur, End})
	}
	walk(h)
	return out
}

// ReverseTraverse walks h and its descendants in reverse document
// order.
func (t *Tree) ReverseTraverse(h Handle) []TraverseStep {
	var out []TraverseStep
	var walk func(Handle)
	walk = func(cur Handle) {
		out = append(out, TraverseStep{cur, End})
		for c := t.n(cur).lastChild; c.valid(); c = t.n(c).prevSibling {
			walk(c)
		}
		out = append(out, TraverseStep{cur, Start})
	}
	walk(h)
	return out
}

// LevelOrder performs a breadth-first walk of h and its descendants,
// emitting a Start step per node and an End sentinel wherever the
// parent of the next emission differs from the parent of the
// previous one -- which happens at least once per level, but also
// between two same-level nodes' child groups -- plus one final End.
func (t *Tree) LevelOrder(h Handle) []TraverseStep {
	out := []TraverseStep{{h, Start}}
	queue := []Handle{h}
	var prevParent Handle
	havePrev := false
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for c := t.n(cur).firstChild; c.valid(); c = t.n(c).nextSibling {
			if havePrev && prevParent != cur {
				out = append(out, TraverseStep{invalidHandle, End})
			}
			out = append(out, TraverseStep{c, Start})
			queue = append(queue, c)
			prevParent = cur
			havePrev = true
		}
	}
	out = append(out, TraverseStep{invalidHandle, End})
	return out
}
