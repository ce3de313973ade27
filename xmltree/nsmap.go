package xmltree

import "github.com/cedarxml/xmltree/internal/ordered"

// This file implements the namespace ordered-map view, the prefix
// sibling of AttrMap, plus the "namespaces in scope" query the
// serializer's fullname resolution and CloneWithPrefixes both need.
// Grounded the same way as attrmap.go (nodemap.rs's NodeMap<K,V,A>)
// with the to_namespace_in_scope helper from manipulation.rs/access.rs
// providing the scope-walk shape.

// NamespaceMap is an ordered-map view over an element's Namespace
// children (its own prefix declarations only, not inherited ones).
type NamespaceMap struct {
	tree    *Tree
	element Handle
}

// Namespaces returns a NamespaceMap view over element's own namespace
// declarations.
func (t *Tree) Namespaces(element Handle) NamespaceMap {
	return NamespaceMap{tree: t, element: element}
}

func (m NamespaceMap) nsChildren() []Handle {
	var out []Handle
	t := m.tree
	for c := t.n(m.element).firstChild; c.valid(); c = t.n(c).nextSibling {
		if t.Kind(c) != KindNamespace {
			break
		}
		out = append(out, c)
	}
	return out
}

func (m NamespaceMap) findNode(prefix PrefixID) Handle {
	t := m.tree
	for c := t.n(m.element).firstChild; c.valid(); c = t.n(c).nextSibling {
		if t.Kind(c) != KindNamespace {
			break
		}
		if t.n(c).value.Prefix == prefix {
			return c
		}
	}
	return invalidHandle
}

// Len returns the number of namespace declarations on the element.
func (m NamespaceMap) Len() int { return len(m.nsChildren()) }

// Handles returns the namespace nodes, in document order.
func (m NamespaceMap) Handles() []Handle { return m.nsChildren() }

// ContainsKey reports whether prefix has a declaration on this
// element.
func (m NamespaceMap) ContainsKey(prefix PrefixID) bool { return m.findNode(prefix).valid() }

// Get implements ordered.Backing, returning the bound namespace id.
func (m NamespaceMap) Get(prefix PrefixID) (NamespaceID, bool) {
	h := m.findNode(prefix)
	if !h.valid() {
		return NoNamespace, false
	}
	return m.tree.n(h).value.Namespace, true
}

// Put implements ordered.Backing: overwrite an existing declaration
// for prefix, or append a new one at the end of the namespace range
// (the very front of the element's children, per spec.md §3's
// ordering).
func (m NamespaceMap) Put(prefix PrefixID, ns NamespaceID) {
	t := m.tree
	if h := m.findNode(prefix); h.valid() {
		t.n(h).value.Namespace = ns
		return
	}
	h := t.alloc(namespaceValue(prefix, ns))
	last := m.lastNamespaceChild()
	if last.valid() {
		t.linkInsertAfter(last, h)
	} else {
		t.linkPrependChild(m.element, h)
	}
}

// Insert is Put's counterpart that also reports the prefix's previous
// binding, mirroring AttrMap.Insert.
func (m NamespaceMap) Insert(prefix PrefixID, ns NamespaceID) (previous NamespaceID, existed bool) {
	t := m.tree
	if h := m.findNode(prefix); h.valid() {
		previous = t.n(h).value.Namespace
		t.n(h).value.Namespace = ns
		return previous, true
	}
	m.Put(prefix, ns)
	return NoNamespace, false
}

func (m NamespaceMap) lastNamespaceChild() Handle {
	t := m.tree
	var last Handle
	for c := t.n(m.element).firstChild; c.valid(); c = t.n(c).nextSibling {
		if t.Kind(c) != KindNamespace {
			break
		}
		last = c
	}
	return last
}

// Remove deletes the namespace declaration for prefix, if present.
func (m NamespaceMap) Remove(prefix PrefixID) bool {
	h := m.findNode(prefix)
	if !h.valid() {
		return false
	}
	m.tree.linkDetach(h)
	m.tree.markRemoved(h)
	return true
}

// Entry returns an Entry view over the namespace declaration for
// prefix.
func (m NamespaceMap) Entry(prefix PrefixID) ordered.Entry[PrefixID, NamespaceID] {
	return ordered.Get[PrefixID, NamespaceID](m, prefix)
}

// InsertNamespace is a convenience wrapper equivalent to
// t.Namespaces(element).Put(prefix, ns).
func (t *Tree) InsertNamespace(element Handle, prefix PrefixID, ns NamespaceID) {
	t.Namespaces(element).Put(prefix, ns)
}

// InsertAttribute is a convenience wrapper equivalent to
// t.Attributes(element).Put(name, value).
func (t *Tree) InsertAttribute(element Handle, name NameID, value string) {
	t.Attributes(element).Put(name, value)
}

// NamespacesInScope walks h's ancestor chain (including h itself, if
// it is an element) and returns every prefix-to-namespace binding
// visible at that point, with the innermost (nearest) declaration for
// a given prefix winning over outer ones.
func (t *Tree) NamespacesInScope(h Handle) map[PrefixID]NamespaceID {
	chain := append([]Handle{h}, t.Ancestors(h)...)
	scope := make(map[PrefixID]NamespaceID)
	// walk from outermost to innermost so nearer bindings overwrite
	// farther ones.
	for i := len(chain) - 1; i >= 0; i-- {
		e := chain[i]
		if t.Kind(e) != KindElement {
			continue
		}
		for _, nh := range t.Namespaces(e).Handles() {
			v := t.n(nh).value
			scope[v.Prefix] = v.Namespace
		}
	}
	scope[XMLPrefix] = XMLNamespace
	return scope
}
