package xmltree

import "github.com/cedarxml/xmltree/internal/ordered"

// This file implements the attribute ordered-map view of spec.md §4.6,
// grounded on original_source/src/nodemap.rs's generic NodeMap<K,V,A>
// (a ValueAdapter picks out which children of an element count as the
// map's entries, where a freshly inserted entry goes, and how to read
///write its value) together with nodemap/entry.rs's Entry type. Go
// has no const-generic ValueAdapter trait, so AttrMap is a concrete
// type specialized to Attribute children instead of a generic adapter
// parameter; internal/ordered supplies the shared Occupied/Vacant
// Entry API over it via the Backing interface.

// AttrMap is an ordered-map view over an element's Attribute children:
// insertion order (= document order among attributes) is preserved,
// and every read/write goes straight to the arena, so there is no
// separate storage to keep in sync.
type AttrMap struct {
	tree    *Tree
	element Handle
}

// Attributes returns an AttrMap view over element's attributes.
// element must be a KindElement node.
func (t *Tree) Attributes(element Handle) AttrMap {
	return AttrMap{tree: t, element: element}
}

func (m AttrMap) attrChildren() []Handle {
	var out []Handle
	t := m.tree
	for c := t.n(m.element).firstChild; c.valid(); c = t.n(c).nextSibling {
		if t.Kind(c) == KindAttribute {
			out = append(out, c)
		}
	}
	return out
}

func (m AttrMap) findNode(name NameID) Handle {
	t := m.tree
	for c := t.n(m.element).firstChild; c.valid(); c = t.n(c).nextSibling {
		if t.Kind(c) != KindAttribute {
			continue
		}
		if t.n(c).value.Name == name {
			return c
		}
	}
	return invalidHandle
}

// Len returns the number of attributes on the element.
func (m AttrMap) Len() int { return len(m.attrChildren()) }

// Handles returns the attribute nodes, in document order.
func (m AttrMap) Handles() []Handle { return m.attrChildren() }

// ContainsKey reports whether an attribute named name is present.
func (m AttrMap) ContainsKey(name NameID) bool { return m.findNode(name).valid() }

// Find returns the attribute node for name, so a caller that just
// inserted a value (e.g. the parser, recording a source span) can
// refer to the resulting node without a second lookup-and-guess.
func (m AttrMap) Find(name NameID) (Handle, bool) {
	h := m.findNode(name)
	return h, h.valid()
}

// Get implements ordered.Backing, returning the attribute's text value.
func (m AttrMap) Get(name NameID) (string, bool) {
	h := m.findNode(name)
	if !h.valid() {
		return "", false
	}
	return m.tree.n(h).value.Text, true
}

// Put implements ordered.Backing: it overwrites an existing attribute
// of the same name in place, or appends a new one at the end of the
// attribute range (spec.md §3's [Namespace*][Attribute*][Content*]
// ordering -- after any namespace declarations, before any content).
func (m AttrMap) Put(name NameID, value string) {
	t := m.tree
	if h := m.findNode(name); h.valid() {
		t.n(h).value.Text = value
		return
	}
	h := t.alloc(attributeValue(name, value))
	insertionPoint := m.insertionPoint()
	if insertionPoint.valid() {
		t.linkInsertAfter(insertionPoint, h)
	} else {
		t.linkPrependChild(m.element, h)
	}
}

// Insert is Put's counterpart that also reports the attribute's
// previous value (spec.md §4.6: "updating an existing key keeps its
// position and returns the previous value").
func (m AttrMap) Insert(name NameID, value string) (previous string, existed bool) {
	t := m.tree
	if h := m.findNode(name); h.valid() {
		previous = t.n(h).value.Text
		t.n(h).value.Text = value
		return previous, true
	}
	m.Put(name, value)
	return "", false
}

// insertionPoint returns the last Namespace-or-Attribute child to
// insert a new attribute after, or the zero Handle to prepend.
func (m AttrMap) insertionPoint() Handle {
	t := m.tree
	var last Handle
	for c := t.n(m.element).firstChild; c.valid(); c = t.n(c).nextSibling {
		k := t.Kind(c)
		if k == KindNamespace || k == KindAttribute {
			last = c
			continue
		}
		break
	}
	return last
}

// Remove deletes the attribute named name, if present, reporting
// whether it was found.
func (m AttrMap) Remove(name NameID) bool {
	h := m.findNode(name)
	if !h.valid() {
		return false
	}
	m.tree.linkDetach(h)
	m.tree.markRemoved(h)
	return true
}

// Entry returns an Entry view over the attribute named name, letting
// callers combine lookup and conditional insert in one call:
//
//	m.Entry(name).OrInsert("default")
func (m AttrMap) Entry(name NameID) ordered.Entry[NameID, string] {
	return ordered.Get[NameID, string](m, name)
}
