package xmltree

// Constructors for unattached nodes, plus the append_text/append_element/
// append_comment/append_processing_instruction convenience wrappers
// from original_source/src/manipulation.rs that pair a constructor
// with an Append call.

// NewElement allocates a detached Element node named name.
func (t *Tree) NewElement(name NameID) Handle { return t.alloc(elementValue(name)) }

// NewText allocates a detached Text node.
func (t *Tree) NewText(s string) Handle { return t.alloc(textValue(s)) }

// NewComment allocates a detached Comment node. s must not contain
// "--" or end in "-"; callers doing untrusted serialization should
// validate with IsValidComment first.
func (t *Tree) NewComment(s string) Handle { return t.alloc(commentValue(s)) }

// NewProcessingInstruction allocates a detached ProcessingInstruction
// node. target must not be "xml" in any case; see IsValidPITarget.
func (t *Tree) NewProcessingInstruction(target NameID, data *string) Handle {
	return t.alloc(piValue(target, data))
}

// IsValidComment reports whether s may be used as comment text: it
// must not contain "--" and must not end in "-" (both would be
// ambiguous with the "-->" close delimiter).
func IsValidComment(s string) bool {
	if len(s) > 0 && s[len(s)-1] == '-' {
		return false
	}
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '-' && s[i+1] == '-' {
			return false
		}
	}
	return true
}

// IsValidPITarget reports whether target may be used as a processing
// instruction target: "xml" in any letter case is reserved by the XML
// specification for the document declaration.
func IsValidPITarget(target string) bool {
	if len(target) != 3 {
		return true
	}
	lower := [3]byte{}
	for i := 0; i < 3; i++ {
		c := target[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	return string(lower[:]) != "xml"
}

// AppendText creates a text node and appends it to parent.
func (t *Tree) AppendText(parent Handle, s string) (Handle, error) {
	h := t.NewText(s)
	if err := t.Append(parent, h); err != nil {
		return invalidHandle, err
	}
	return h, nil
}

// AppendElement creates an element named name and appends it to
// parent.
func (t *Tree) AppendElement(parent Handle, name NameID) (Handle, error) {
	h := t.NewElement(name)
	if err := t.Append(parent, h); err != nil {
		return invalidHandle, err
	}
	return h, nil
}

// AppendComment creates a comment and appends it to parent.
func (t *Tree) AppendComment(parent Handle, s string) (Handle, error) {
	if !IsValidComment(s) {
		return invalidHandle, &Error{Kind: ErrInvalidComment, Detail: s}
	}
	h := t.NewComment(s)
	if err := t.Append(parent, h); err != nil {
		return invalidHandle, err
	}
	return h, nil
}

// AppendProcessingInstruction creates a processing instruction and
// appends it to parent.
func (t *Tree) AppendProcessingInstruction(parent Handle, target NameID, data *string) (Handle, error) {
	h := t.NewProcessingInstruction(target, data)
	if err := t.Append(parent, h); err != nil {
		return invalidHandle, err
	}
	return h, nil
}

// DocumentElement returns the single Element child of the Document
// node root, or an error if root is not a Document or has no element
// child yet.
func (t *Tree) DocumentElement(root Handle) (Handle, error) {
	if t.Kind(root) != KindDocument {
		return invalidHandle, errNotDocument(root)
	}
	for c := t.n(root).firstChild; c.valid(); c = t.n(c).nextSibling {
		if t.Kind(c) == KindElement {
			return c, nil
		}
	}
	return invalidHandle, &Error{Kind: ErrNoElementAtTopLevel, Handle: root}
}

// Text returns the text content of a Text or Comment node, and
// whether h is such a node.
func (t *Tree) Text(h Handle) (string, bool) {
	switch t.Kind(h) {
	case KindText, KindComment:
		return t.n(h).value.Text, true
	default:
		return "", false
	}
}

// SetText overwrites the text of a Text or Comment node in place.
func (t *Tree) SetText(h Handle, s string) error {
	switch t.Kind(h) {
	case KindText, KindComment:
		t.n(h).value.Text = s
		return nil
	default:
		return errInvalidOp("not a text or comment node")
	}
}

// ElementName returns the NameID of an Element node, and whether h is
// one.
func (t *Tree) ElementName(h Handle) (NameID, bool) {
	if t.Kind(h) != KindElement {
		return 0, false
	}
	return t.n(h).value.Name, true
}

// SetElementName changes the name of an Element node in place.
func (t *Tree) SetElementName(h Handle, name NameID) error {
	if t.Kind(h) != KindElement {
		return errNotElement(h)
	}
	t.n(h).value.Name = name
	return nil
}
