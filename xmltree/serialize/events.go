// Package serialize turns a Tree into an output stream, and provides
// the building blocks (fullname resolution, escaping, a pretty-printer)
// the XML and HTML5 serializers in this package share.
//
// Grounded on original_source/src/serializer.rs's Output enum plus the
// SerializerWriter trait that walks it: a subtree is walked here,
// recursively over content children only, into a flat Event stream
// that reads an element's namespace/attribute children from its maps
// rather than descending into them as ordinary content, mirroring how the
// Rust Element type never exposed them as children in the first place.
package serialize

import "github.com/cedarxml/xmltree/xmltree"

// EventKind identifies what an Event represents.
type EventKind uint8

const (
	EventStartTagOpen EventKind = iota
	EventNamespaceDecl
	EventAttribute
	EventStartTagClose
	EventEndTag
	EventText
	EventComment
	EventProcessingInstruction
)

// Event is one step of the flattened output stream for a subtree.
// Which fields are meaningful depends on Kind, the same closed-sum
// shape as xmltree.Value.
type Event struct {
	Kind EventKind
	Node xmltree.Handle

	Name      xmltree.NameID    // StartTagOpen, EndTag, Attribute, ProcessingInstruction target
	Prefix    xmltree.PrefixID  // NamespaceDecl
	Namespace xmltree.NamespaceID
	Value     string  // Attribute
	Text      string  // Text, Comment
	PIData    *string // ProcessingInstruction

	// SelfClosing is set on StartTagClose when the element has no
	// content children (a serializer may choose to collapse
	// StartTagClose+EndTag into one self-closed tag, or not).
	SelfClosing bool
}

// Events flattens the subtree rooted at h into a linear stream in
// document order. h is normally an xmltree.KindElement or
// xmltree.KindDocument node.
func Events(t *xmltree.Tree, h xmltree.Handle) []Event {
	var out []Event
	emit(t, h, &out)
	return out
}

func emit(t *xmltree.Tree, h xmltree.Handle, out *[]Event) {
	switch t.Kind(h) {
	case xmltree.KindDocument:
		for _, c := range t.ContentChildren(h) {
			emit(t, c, out)
		}
	case xmltree.KindElement:
		name, _ := t.ElementName(h)
		*out = append(*out, Event{Kind: EventStartTagOpen, Node: h, Name: name})
		for _, nh := range t.Namespaces(h).Handles() {
			v := t.Value(nh)
			*out = append(*out, Event{Kind: EventNamespaceDecl, Node: nh, Prefix: v.Prefix, Namespace: v.Namespace})
		}
		for _, ah := range t.Attributes(h).Handles() {
			v := t.Value(ah)
			*out = append(*out, Event{Kind: EventAttribute, Node: ah, Name: v.Name, Value: v.Text})
		}
		hasContent := t.HasContentChildren(h)
		*out = append(*out, Event{Kind: EventStartTagClose, Node: h, SelfClosing: !hasContent})
		for _, c := range t.ContentChildren(h) {
			emit(t, c, out)
		}
		*out = append(*out, Event{Kind: EventEndTag, Node: h, Name: name})
	case xmltree.KindText:
		s, _ := t.Text(h)
		*out = append(*out, Event{Kind: EventText, Node: h, Text: s})
	case xmltree.KindComment:
		s, _ := t.Text(h)
		*out = append(*out, Event{Kind: EventComment, Node: h, Text: s})
	case xmltree.KindProcessingInstruction:
		v := t.Value(h)
		*out = append(*out, Event{Kind: EventProcessingInstruction, Node: h, Name: v.Name, PIData: v.PIData})
	}
}
