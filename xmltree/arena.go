package xmltree

// node is one slot in a Tree's arena: a value plus the doubly-linked
// sibling/parent/child pointers needed for every navigation axis and
// mutation in spec.md §4-§5. Grounded on droyo-go-xml's xmltree.go
// Element struct (parent/children slice), generalized from a
// slice-of-children representation to an arena-of-cells with explicit
// first/last/next/prev links: spec.md requires mutation (detach,
// insert-before/after) to preserve Handles taken before the edit,
// which a slice-backed children list cannot do once an earlier
// element is removed and later ones shift index.
type node struct {
	value Value

	parent      Handle
	firstChild  Handle
	lastChild   Handle
	prevSibling Handle
	nextSibling Handle

	removed bool
}

// Tree owns an arena of nodes plus the interner tables every node's
// Value may reference. A Tree is not safe for concurrent use from
// multiple goroutines without external synchronization (spec.md §Non-goals:
// thread-safe sharing is explicitly out of scope).
type Tree struct {
	interners *interners
	nodes     []node
	root      Handle
}

// NewTree creates an empty Tree containing only a Document node, and
// returns the Tree along with the Document's Handle.
func NewTree() (*Tree, Handle) {
	t := &Tree{interners: newInterners()}
	// index 0 is reserved so the zero Handle is never a valid node.
	t.nodes = append(t.nodes, node{})
	root := t.alloc(documentValue())
	t.root = root
	return t, root
}

// Root returns the Handle of the Tree's Document node.
func (t *Tree) Root() Handle { return t.root }

func (t *Tree) alloc(v Value) Handle {
	h := Handle{index: uint32(len(t.nodes))}
	t.nodes = append(t.nodes, node{value: v})
	return h
}

func (t *Tree) n(h Handle) *node { return &t.nodes[h.index] }

// Value returns the value stored at h.
func (t *Tree) Value(h Handle) Value { return t.n(h).value }

// SetValue overwrites the value stored at h in place, preserving tree
// structure. Most callers should prefer the typed mutation helpers in
// mutate.go; this exists for in-place edits like changing an
// attribute's text or an element's Name.
func (t *Tree) SetValue(h Handle, v Value) { t.n(h).value = v }

// Kind returns the Kind of the node at h.
func (t *Tree) Kind(h Handle) Kind { return t.n(h).value.Kind }

// IsRemoved reports whether h has been detached and released via
// Remove. A removed handle's arena slot is retained (tombstoned, per
// spec.md §4.1) rather than reused, so Handle equality keeps working
// for comparisons even after removal.
func (t *Tree) IsRemoved(h Handle) bool { return t.n(h).removed }

// Parent returns the parent Handle of h, or the zero Handle if h is
// the document root or has been detached.
func (t *Tree) Parent(h Handle) Handle { return t.n(h).parent }
