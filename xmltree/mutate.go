package xmltree

// This file implements the mutation API of spec.md §5, grounded
// line-for-line on original_source/src/manipulation.rs: the same
// append/prepend/insert-before/insert-after/detach/remove/clone/
// clone-with-prefixes/element-unwrap/element-wrap/replace operations,
// the same add/remove structure checks, and the same text-consolidation
// behavior (at most one merge on insert, one on removal).

// --- low-level arena linking (no structure checks, no consolidation) ---

func (t *Tree) linkDetach(h Handle) {
	nd := t.n(h)
	parent, prev, next := nd.parent, nd.prevSibling, nd.nextSibling
	if prev.valid() {
		t.n(prev).nextSibling = next
	} else if parent.valid() {
		t.n(parent).firstChild = next
	}
	if next.valid() {
		t.n(next).prevSibling = prev
	} else if parent.valid() {
		t.n(parent).lastChild = prev
	}
	nd.parent = invalidHandle
	nd.prevSibling = invalidHandle
	nd.nextSibling = invalidHandle
}

func (t *Tree) linkAppendChild(parent, child Handle) {
	pn := t.n(parent)
	last := pn.lastChild
	cn := t.n(child)
	cn.parent = parent
	cn.prevSibling = last
	cn.nextSibling = invalidHandle
	if last.valid() {
		t.n(last).nextSibling = child
	} else {
		pn.firstChild = child
	}
	pn.lastChild = child
}

func (t *Tree) linkPrependChild(parent, child Handle) {
	pn := t.n(parent)
	first := pn.firstChild
	cn := t.n(child)
	cn.parent = parent
	cn.prevSibling = invalidHandle
	cn.nextSibling = first
	if first.valid() {
		t.n(first).prevSibling = child
	} else {
		pn.lastChild = child
	}
	pn.firstChild = child
}

func (t *Tree) linkInsertAfter(ref, newNode Handle) {
	rn := t.n(ref)
	parent, next := rn.parent, rn.nextSibling
	nn := t.n(newNode)
	nn.parent = parent
	nn.prevSibling = ref
	nn.nextSibling = next
	rn.nextSibling = newNode
	if next.valid() {
		t.n(next).prevSibling = newNode
	} else if parent.valid() {
		t.n(parent).lastChild = newNode
	}
}

func (t *Tree) linkInsertBefore(ref, newNode Handle) {
	rn := t.n(ref)
	parent, prev := rn.parent, rn.prevSibling
	nn := t.n(newNode)
	nn.parent = parent
	nn.nextSibling = ref
	nn.prevSibling = prev
	rn.prevSibling = newNode
	if prev.valid() {
		t.n(prev).nextSibling = newNode
	} else if parent.valid() {
		t.n(parent).firstChild = newNode
	}
}

// markRemoved tombstones h and its descendants: their arena slots stay
// allocated (so stale Handles don't alias a future node) but report
// IsRemoved.
func (t *Tree) markRemoved(h Handle) {
	t.n(h).removed = true
	for c := t.n(h).firstChild; c.valid(); c = t.n(c).nextSibling {
		t.markRemoved(c)
	}
}

// isAncestorOf reports whether a is an ancestor of (or equal to) b,
// used to reject moves that would create a cycle.
func (t *Tree) isAncestorOf(a, b Handle) bool {
	for cur := b; cur.valid(); cur = t.n(cur).parent {
		if cur == a {
			return true
		}
	}
	return false
}

// --- structure checks ---

func (t *Tree) isUnderRoot(h Handle) bool {
	p := t.n(h).parent
	return p.valid() && p == t.root
}

func (t *Tree) isRoot(h Handle) bool { return h == t.root }

func (t *Tree) addStructureCheck(parent, child Handle) error {
	if !parent.valid() {
		return errInvalidOp("cannot create siblings for document root")
	}
	pk := t.Kind(parent)
	if pk != KindElement && pk != KindDocument {
		return errInvalidOp("cannot add children to a non-element, non-document node")
	}
	if t.isAncestorOf(child, parent) {
		return errInvalidOp("cannot move a node under its own descendant")
	}
	switch t.Kind(child) {
	case KindDocument:
		return errInvalidOp("cannot move the document root")
	case KindElement:
		if t.isUnderRoot(child) {
			return errInvalidOp("cannot move the document element")
		}
		if t.isRoot(parent) && t.hasElementChild(parent) {
			return errInvalidOp("cannot add an extra element under the document root")
		}
	case KindText:
		if t.isRoot(parent) {
			return errInvalidOp("cannot add a text node directly under the document root")
		}
	case KindAttribute, KindNamespace:
		return errInvalidOp("use InsertAttribute/InsertNamespace for attribute and namespace nodes")
	case KindComment, KindProcessingInstruction:
		// allowed everywhere
	}
	return nil
}

func (t *Tree) hasElementChild(parent Handle) bool {
	for c := t.n(parent).firstChild; c.valid(); c = t.n(c).nextSibling {
		if t.Kind(c) == KindElement {
			return true
		}
	}
	return false
}

func (t *Tree) removeStructureCheck(h Handle) error {
	switch t.Kind(h) {
	case KindDocument:
		return errInvalidOp("cannot remove the document root")
	case KindElement:
		if t.isUnderRoot(h) {
			return errInvalidOp("cannot remove the document element")
		}
	}
	return nil
}

// --- text consolidation ---

func (t *Tree) addConsolidateTextNodes(h, prev, next Handle) bool {
	if t.Kind(h) != KindText {
		return false
	}
	added := t.n(h).value.Text
	if prev.valid() && t.Kind(prev) == KindText {
		pn := t.n(prev)
		pn.value.Text += added
		t.linkDetach(h)
		t.markRemoved(h)
		return true
	}
	if next.valid() && t.Kind(next) == KindText {
		nn := t.n(next)
		nn.value.Text = added + nn.value.Text
		t.linkDetach(h)
		t.markRemoved(h)
		return true
	}
	return false
}

func (t *Tree) removeConsolidateTextNodes(prev, next Handle) bool {
	if !prev.valid() || !next.valid() {
		return false
	}
	if t.Kind(prev) != KindText || t.Kind(next) != KindText {
		return false
	}
	pn := t.n(prev)
	pn.value.Text += t.n(next).value.Text
	t.linkDetach(next)
	t.markRemoved(next)
	return true
}

// --- public mutation API ---

// Append makes child the new last child of parent.
func (t *Tree) Append(parent, child Handle) error {
	if err := t.addStructureCheck(parent, child); err != nil {
		return err
	}
	prev, next := t.n(child).prevSibling, t.n(child).nextSibling
	if child.valid() && t.n(child).parent.valid() {
		t.linkDetach(child)
	}
	t.removeConsolidateTextNodes(prev, next)
	if t.addConsolidateTextNodes(child, t.n(parent).lastChild, invalidHandle) {
		return nil
	}
	t.linkAppendChild(parent, child)
	return nil
}

// AppendFragmentContent is Append without the "no text directly under
// the document" rule: a fragment root may hold top-level text, unlike
// a well-formed document (spec.md §4.11's parse-fragment relaxation).
// It still rejects moving the document root itself, and attribute or
// namespace nodes, which never belong directly under anything but an
// element.
func (t *Tree) AppendFragmentContent(parent, child Handle) error {
	switch t.Kind(child) {
	case KindDocument:
		return errInvalidOp("cannot move the document root")
	case KindAttribute, KindNamespace:
		return errInvalidOp("use InsertAttribute/InsertNamespace for attribute and namespace nodes")
	}
	if t.isAncestorOf(child, parent) {
		return errInvalidOp("cannot move a node under its own descendant")
	}
	prev, next := t.n(child).prevSibling, t.n(child).nextSibling
	if child.valid() && t.n(child).parent.valid() {
		t.linkDetach(child)
	}
	t.removeConsolidateTextNodes(prev, next)
	if t.addConsolidateTextNodes(child, t.n(parent).lastChild, invalidHandle) {
		return nil
	}
	t.linkAppendChild(parent, child)
	return nil
}

// Prepend makes child the new first child of parent.
func (t *Tree) Prepend(parent, child Handle) error {
	if err := t.addStructureCheck(parent, child); err != nil {
		return err
	}
	prev, next := t.n(child).prevSibling, t.n(child).nextSibling
	if child.valid() && t.n(child).parent.valid() {
		t.linkDetach(child)
	}
	t.removeConsolidateTextNodes(prev, next)
	if t.addConsolidateTextNodes(child, invalidHandle, t.n(parent).firstChild) {
		return nil
	}
	t.linkPrependChild(parent, child)
	return nil
}

// InsertAfter inserts newSibling immediately after ref.
func (t *Tree) InsertAfter(ref, newSibling Handle) error {
	if err := t.addStructureCheck(t.n(ref).parent, newSibling); err != nil {
		return err
	}
	prev, next := t.n(newSibling).prevSibling, t.n(newSibling).nextSibling
	if newSibling.valid() && t.n(newSibling).parent.valid() {
		t.linkDetach(newSibling)
	}
	t.removeConsolidateTextNodes(prev, next)
	if t.addConsolidateTextNodes(newSibling, ref, t.n(ref).nextSibling) {
		return nil
	}
	t.linkInsertAfter(ref, newSibling)
	return nil
}

// InsertBefore inserts newSibling immediately before ref.
func (t *Tree) InsertBefore(ref, newSibling Handle) error {
	if err := t.addStructureCheck(t.n(ref).parent, newSibling); err != nil {
		return err
	}
	prev, next := t.n(newSibling).prevSibling, t.n(newSibling).nextSibling
	if newSibling.valid() && t.n(newSibling).parent.valid() {
		t.linkDetach(newSibling)
	}
	t.removeConsolidateTextNodes(prev, next)
	if t.addConsolidateTextNodes(newSibling, t.n(ref).prevSibling, ref) {
		return nil
	}
	t.linkInsertBefore(ref, newSibling)
	return nil
}

// Detach removes h from its parent, turning it into the root of a new
// fragment. Its descendants are preserved and travel with it; h
// itself is not tombstoned, so it may be reinserted elsewhere.
func (t *Tree) Detach(h Handle) error {
	if err := t.removeStructureCheck(h); err != nil {
		return err
	}
	prev, next := t.n(h).prevSibling, t.n(h).nextSibling
	t.linkDetach(h)
	t.removeConsolidateTextNodes(prev, next)
	return nil
}

// Remove detaches h and its descendants and tombstones them: their
// Handles remain comparable but IsRemoved reports true and no
// operation may use them as an argument again, other than IsRemoved
// itself.
func (t *Tree) Remove(h Handle) error {
	if t.Kind(h) == KindElement && t.isUnderRoot(h) {
		return errInvalidOp("cannot remove the document element")
	}
	prev, next := t.n(h).prevSibling, t.n(h).nextSibling
	t.linkDetach(h)
	t.markRemoved(h)
	t.removeConsolidateTextNodes(prev, next)
	return nil
}

// Clone copies h and its descendants into a new, unattached fragment
// and returns the root of the copy. The original subtree is
// untouched.
func (t *Tree) Clone(h Handle) Handle {
	topName := t.AddName("clone-root")
	top := t.alloc(elementValue(topName))
	stack := []Handle{top}
	for _, step := range t.Traverse(h) {
		switch step.Edge {
		case Start:
			v := t.n(step.Handle).value
			nh := t.alloc(v)
			t.linkAppendChild(stack[len(stack)-1], nh)
			stack = append(stack, nh)
		case End:
			stack = stack[:len(stack)-1]
		}
	}
	clone := t.n(top).firstChild
	t.linkDetach(clone)
	return clone
}

// CloneWithPrefixes is like Clone, but when h is an element it also
// copies in any namespace prefixes bound in h's original scope that
// the clone does not already declare for itself, so the clone remains
// resolvable once detached from its original ancestors.
func (t *Tree) CloneWithPrefixes(h Handle) Handle {
	var inScope map[PrefixID]NamespaceID
	if parent := t.n(h).parent; parent.valid() {
		inScope = t.NamespacesInScope(parent)
	}
	clone := t.Clone(h)
	if t.Kind(clone) != KindElement {
		return clone
	}
	existing := map[PrefixID]bool{}
	for c := t.n(clone).firstChild; c.valid() && t.Kind(c) == KindNamespace; c = t.n(c).nextSibling {
		existing[t.n(c).value.Prefix] = true
	}
	for prefix, ns := range inScope {
		if existing[prefix] {
			continue
		}
		t.InsertNamespace(clone, prefix, ns)
	}
	return clone
}

// ElementUnwrap removes an element but keeps its children, which move
// up to take its place among its former siblings.
func (t *Tree) ElementUnwrap(h Handle) error {
	if t.Kind(h) != KindElement {
		return errInvalidOp("cannot unwrap a non-element node")
	}
	if err := t.removeStructureCheck(h); err != nil {
		return err
	}
	first := t.n(h).firstChild
	if !first.valid() {
		return t.Remove(h)
	}
	last := t.n(h).lastChild
	parent := t.n(h).parent
	prevOuter := t.n(h).prevSibling
	nextOuter := t.n(h).nextSibling

	t.linkDetach(h)
	// Only h itself is tombstoned; its children stay live and are
	// spliced into parent below.
	hn := t.n(h)
	hn.removed = true
	hn.firstChild, hn.lastChild = invalidHandle, invalidHandle

	// splice [first..last] into parent where h used to be.
	t.n(first).prevSibling = prevOuter
	t.n(last).nextSibling = nextOuter
	if prevOuter.valid() {
		t.n(prevOuter).nextSibling = first
	} else {
		t.n(parent).firstChild = first
	}
	if nextOuter.valid() {
		t.n(nextOuter).prevSibling = last
	} else {
		t.n(parent).lastChild = last
	}
	for c := first; c.valid(); c = t.n(c).nextSibling {
		t.n(c).parent = parent
		if c == last {
			break
		}
	}

	if t.removeConsolidateTextNodes(prevOuter, first) {
		if first == last {
			t.removeConsolidateTextNodes(prevOuter, nextOuter)
		} else {
			t.removeConsolidateTextNodes(last, t.n(last).nextSibling)
		}
	} else {
		t.removeConsolidateTextNodes(last, t.n(last).nextSibling)
	}
	return nil
}

// ElementWrap wraps h in a newly created element named name, taking
// h's place among its siblings. h is not allowed to be the document
// root or a direct child of it (which includes the document element).
func (t *Tree) ElementWrap(h Handle, name NameID) (Handle, error) {
	if t.isRoot(h) {
		return invalidHandle, errInvalidOp("cannot wrap the document root")
	}
	if t.isUnderRoot(h) {
		return invalidHandle, errInvalidOp("cannot wrap a node directly under the document root")
	}
	parent := t.n(h).parent
	previous := t.n(h).prevSibling
	wrapper := t.alloc(elementValue(name))
	t.linkDetach(h)
	t.linkAppendChild(wrapper, h)
	if previous.valid() {
		if err := t.InsertAfter(previous, wrapper); err != nil {
			return invalidHandle, err
		}
	} else {
		if err := t.Prepend(parent, wrapper); err != nil {
			return invalidHandle, err
		}
	}
	return wrapper, nil
}

// Replace removes replaced and puts replacing in its place among its
// former siblings. replaced may not be the document root or a direct
// child of it.
func (t *Tree) Replace(replaced, replacing Handle) error {
	if t.isRoot(replaced) {
		return errInvalidOp("cannot replace the document root")
	}
	if t.isUnderRoot(replaced) {
		return errInvalidOp("cannot replace a node directly under the document root")
	}
	parent := t.n(replaced).parent
	previous := t.n(replaced).prevSibling
	t.linkDetach(replaced)
	t.markRemoved(replaced)
	if previous.valid() {
		return t.InsertAfter(previous, replacing)
	}
	return t.Prepend(parent, replacing)
}
