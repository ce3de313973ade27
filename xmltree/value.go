package xmltree

// Value is the payload carried by a node. Which of the fields below
// are meaningful is selected by Kind; this is Go's approximation of
// the closed sum type spec.md §3 describes. Grounded on
// original_source/src/xmlvalue.rs's Value enum, but attributes and
// namespace declarations are never embedded here -- per spec.md's
// child-range design they live as ordinary Attribute/Namespace
// children of an Element, not as fields of it.
type Value struct {
	Kind Kind

	// Element, ProcessingInstruction, Attribute
	Name NameID

	// Text, Comment, Attribute value
	Text string

	// ProcessingInstruction data (nil means no data segment)
	PIData *string

	// Namespace
	Prefix    PrefixID
	Namespace NamespaceID
}

func documentValue() Value { return Value{Kind: KindDocument} }

func elementValue(name NameID) Value { return Value{Kind: KindElement, Name: name} }

func textValue(s string) Value { return Value{Kind: KindText, Text: s} }

func commentValue(s string) Value { return Value{Kind: KindComment, Text: s} }

func piValue(target NameID, data *string) Value {
	return Value{Kind: KindProcessingInstruction, Name: target, PIData: data}
}

func attributeValue(name NameID, value string) Value {
	return Value{Kind: KindAttribute, Name: name, Text: value}
}

func namespaceValue(prefix PrefixID, ns NamespaceID) Value {
	return Value{Kind: KindNamespace, Prefix: prefix, Namespace: ns}
}
