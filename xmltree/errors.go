package xmltree

import "fmt"

// ErrorKind classifies an Error without forcing callers to string-match
// Error() text. Grounded on original_source/src/error.rs's Error enum;
// the parse-only variants (UnclosedTag, InvalidEntity, ...) live in
// package parse's own ParseError instead, since spec.md keeps parsing
// and tree-mutation errors as separate typed families.
type ErrorKind uint8

const (
	// ErrNotDocument: the operation required a Document node.
	ErrNotDocument ErrorKind = iota
	// ErrNotElement: the operation required an Element node.
	ErrNotElement
	// ErrInvalidOperation: a structural rule was violated (text under
	// Document, moving a node under its own descendant, and so on).
	ErrInvalidOperation
	// ErrInvalidComment: comment text contains "--" or ends in "-".
	ErrInvalidComment
	// ErrInvalidTarget: a processing-instruction target of "xml" in any
	// case.
	ErrInvalidTarget
	// ErrMissingPrefix: a namespace used during serialization has no
	// bound prefix; see Tree.CreateMissingPrefixes.
	ErrMissingPrefix
	// ErrNamespaceInProcessingInstruction: a PI target may not carry a
	// namespace prefix.
	ErrNamespaceInProcessingInstruction
	// ErrIllegalAtTopLevel: an Attribute or Namespace value was placed
	// directly under a Document node.
	ErrIllegalAtTopLevel
	// ErrTextAtTopLevel: a Text node was placed directly under a
	// Document node (allowed only for fragment roots, never for a
	// well-formed document).
	ErrTextAtTopLevel
	// ErrNoElementAtTopLevel: a Document has no Element child.
	ErrNoElementAtTopLevel
	// ErrMultipleElementsAtTopLevel: a Document has more than one
	// Element child.
	ErrMultipleElementsAtTopLevel
	// ErrIO: writing serialized output failed.
	ErrIO
	// ErrUnknownPrefix: a caller-constructed name used a prefix that is
	// not bound in scope (raised outside parsing; the parser's own
	// unresolved-prefix failure is parse.ErrUnknownPrefix).
	ErrUnknownPrefix
	// ErrProcessingInstructionGtInHtml: a PI containing '>' cannot be
	// serialized as HTML5.
	ErrProcessingInstructionGtInHtml
	// ErrParse: wraps a *parse.ParseError surfaced through the general
	// error type.
	ErrParse
)

// Error is xmltree's general error type, covering access and mutation
// failures as well as serialization failures that are not specific to
// one serializer. Callers recover it with errors.As and branch on its
// Kind field; Handle and Detail carry the offending node or text where
// one applies.
type Error struct {
	Kind   ErrorKind
	Handle Handle
	Detail string
	cause  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrNotDocument:
		return "xmltree: not a document node"
	case ErrNotElement:
		return "xmltree: not an element node"
	case ErrInvalidOperation:
		return fmt.Sprintf("xmltree: invalid operation: %s", e.Detail)
	case ErrInvalidComment:
		return fmt.Sprintf("xmltree: invalid comment text: %q", e.Detail)
	case ErrInvalidTarget:
		return fmt.Sprintf("xmltree: invalid processing instruction target: %q", e.Detail)
	case ErrMissingPrefix:
		return fmt.Sprintf("xmltree: missing prefix for namespace %q", e.Detail)
	case ErrNamespaceInProcessingInstruction:
		return "xmltree: namespace prefix not allowed in processing instruction target"
	case ErrIllegalAtTopLevel:
		return "xmltree: attribute or namespace node not allowed directly under document"
	case ErrTextAtTopLevel:
		return "xmltree: text node not allowed directly under document"
	case ErrNoElementAtTopLevel:
		return "xmltree: document has no element child"
	case ErrMultipleElementsAtTopLevel:
		return "xmltree: document has more than one element child"
	case ErrIO:
		return fmt.Sprintf("xmltree: write error: %s", e.Detail)
	case ErrUnknownPrefix:
		return fmt.Sprintf("xmltree: unknown prefix: %q", e.Detail)
	case ErrProcessingInstructionGtInHtml:
		return fmt.Sprintf("xmltree: processing instruction contains '>': %q", e.Detail)
	case ErrParse:
		return fmt.Sprintf("xmltree: parse error: %s", e.Detail)
	default:
		return "xmltree: error"
	}
}

// Unwrap exposes a wrapped parse error (Kind == ErrParse) to
// errors.Unwrap/errors.As, so callers can recover the concrete
// *parse.ParseError without string matching.
func (e *Error) Unwrap() error { return e.cause }

func errNotDocument(h Handle) error    { return &Error{Kind: ErrNotDocument, Handle: h} }
func errNotElement(h Handle) error     { return &Error{Kind: ErrNotElement, Handle: h} }
func errInvalidOp(detail string) error { return &Error{Kind: ErrInvalidOperation, Detail: detail} }

// WrapParseError adapts a parse-time failure into the general Error
// type, e.g. for callers who call Parse through an interface that
// only returns error.
func WrapParseError(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: ErrParse, Detail: err.Error(), cause: err}
}
