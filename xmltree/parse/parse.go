// Package parse builds an xmltree.Tree from XML source text.
//
// It drives encoding/xml.Decoder as its tokenizer (building a tokenizer
// is explicitly out of scope), the way droyo-go-xml's xmltree.Parse
// drives a small scanner wrapper around the same *xml.Decoder: a
// recursive descent over StartElement/EndElement tokens, tracking
// byte offsets with InputOffset for optional span recording.
package parse

import (
	"bytes"
	"encoding/xml"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/cedarxml/xmltree/internal/handleset"
	"github.com/cedarxml/xmltree/internal/idnorm"
	"github.com/cedarxml/xmltree/xmltree"
)

// recursionLimit guards against pathologically deep input, mirroring
// droyo-go-xml's xmltree.recursionLimit/errDeepXML pair.
const recursionLimit = 3000

// Options configures a single Parse/ParseFragment call.
type Options struct {
	// DetectCharset enables golang.org/x/net/html/charset as an
	// encoding-detection collaborator for non-UTF-8 input: without it,
	// a declared encoding other than UTF-8 is rejected.
	DetectCharset bool
	// IgnoreStandalone accepts standalone="no" instead of rejecting it.
	IgnoreStandalone bool
	// TrackSpans records a SpanMap of source byte ranges as parsing
	// proceeds. Leave false to skip the bookkeeping entirely.
	TrackSpans bool
}

type parser struct {
	dec        *xml.Decoder
	tree       *xmltree.Tree
	spans      *SpanMap
	trackSpans bool
	ids        *idnorm.Tracker
	fragment   bool
}

func newParser(r io.Reader, opts Options, fragment bool) *parser {
	dec := xml.NewDecoder(r)
	if opts.DetectCharset {
		dec.CharsetReader = charset.NewReaderLabel
	}
	p := &parser{
		dec:        dec,
		ids:        idnorm.NewTracker(),
		trackSpans: opts.TrackSpans,
		fragment:   fragment,
	}
	if opts.TrackSpans {
		p.spans = newSpanMap()
	}
	return p
}

// Parse reads a well-formed XML document: exactly one element at top
// level, plus any number of comments and processing instructions, and
// no top-level text.
func Parse(r io.Reader, opts Options) (*xmltree.Tree, xmltree.Handle, *SpanMap, error) {
	return parseTop(r, opts, false)
}

// ParseFragment reads an arbitrary sequence of content nodes (text,
// elements, comments, processing instructions) at top level; it does
// not require a single document element.
func ParseFragment(r io.Reader, opts Options) (*xmltree.Tree, xmltree.Handle, *SpanMap, error) {
	return parseTop(r, opts, true)
}

// ParseString is a convenience wrapper around Parse for in-memory
// source text.
func ParseString(s string, opts Options) (*xmltree.Tree, xmltree.Handle, *SpanMap, error) {
	return Parse(strings.NewReader(s), opts)
}

func parseTop(r io.Reader, opts Options, fragment bool) (*xmltree.Tree, xmltree.Handle, *SpanMap, error) {
	p := newParser(r, opts, fragment)
	tree, root := xmltree.NewTree()
	p.tree = tree

	elementCount := 0
	for {
		begin := p.dec.InputOffset()
		tok, err := p.dec.Token()
		end := p.dec.InputOffset()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, xmltree.Handle{}, nil, classifyTokenError(err, Span{begin, end})
		}
		switch tt := tok.(type) {
		case xml.ProcInst:
			if tt.Target == "xml" {
				if err := p.checkXMLDecl(tt, opts); err != nil {
					return nil, xmltree.Handle{}, nil, err
				}
				continue
			}
			target := tree.AddName(tt.Target)
			data := string(tt.Inst)
			if _, err := tree.AppendProcessingInstruction(root, target, &data); err != nil {
				return nil, xmltree.Handle{}, nil, wrapStructural(err)
			}
		case xml.Comment:
			if _, err := tree.AppendComment(root, string(tt)); err != nil {
				return nil, xmltree.Handle{}, nil, wrapStructural(err)
			}
		case xml.Directive:
			return nil, xmltree.Handle{}, nil, &ParseError{Kind: ErrDtdUnsupported}
		case xml.CharData:
			if fragment {
				if err := p.appendContent(root, tree.NewText(string(tt))); err != nil {
					return nil, xmltree.Handle{}, nil, wrapStructural(err)
				}
			} else if len(bytes.TrimSpace(tt)) > 0 {
				return nil, xmltree.Handle{}, nil, &ParseError{Kind: ErrTextAtTopLevel}
			}
		case xml.StartElement:
			elementCount++
			if !fragment && elementCount > 1 {
				return nil, xmltree.Handle{}, nil, &ParseError{Kind: ErrMultipleElementsAtTopLevel}
			}
			if _, err := p.parseElement(root, tt.Copy(), scope{}, 0, Span{begin, end}); err != nil {
				return nil, xmltree.Handle{}, nil, err
			}
		}
	}
	if !fragment && elementCount == 0 {
		return nil, xmltree.Handle{}, nil, &ParseError{Kind: ErrNoElementAtTopLevel}
	}
	return tree, root, p.spans, nil
}

// appendContent appends child to parent, relaxing the "no text
// directly under the document" rule when parsing a fragment.
func (p *parser) appendContent(parent, child xmltree.Handle) error {
	if p.fragment && parent == p.tree.Root() {
		return p.tree.AppendFragmentContent(parent, child)
	}
	return p.tree.Append(parent, child)
}

func (p *parser) checkXMLDecl(tt xml.ProcInst, opts Options) error {
	attrs := declAttrs(tt.Inst)
	get := func(name string) (string, bool) {
		for _, a := range attrs {
			if a.Name.Local == name {
				return a.Value, true
			}
		}
		return "", false
	}
	if v, ok := get("version"); ok && v != "1.0" {
		return &ParseError{Kind: ErrUnsupportedVersion, Name: v}
	}
	if v, ok := get("encoding"); ok {
		lower := strings.ToLower(v)
		if lower != "utf-8" && lower != "utf8" && !opts.DetectCharset {
			return &ParseError{Kind: ErrUnsupportedEncoding, Name: v}
		}
	}
	if v, ok := get("standalone"); ok && v == "no" && !opts.IgnoreStandalone {
		return &ParseError{Kind: ErrUnsupportedNotStandalone}
	}
	return nil
}

// declAttrs parses the pseudo-attributes of an XML or text
// declaration (version/encoding/standalone) by handing them back to
// encoding/xml's own attribute grammar, wrapped in a throwaway tag,
// rather than writing a second attribute parser.
func declAttrs(inst []byte) []xml.Attr {
	var buf bytes.Buffer
	buf.WriteString("<_ ")
	buf.Write(inst)
	buf.WriteString("/>")
	dec := xml.NewDecoder(&buf)
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if se, ok := tok.(xml.StartElement); ok {
		return se.Attr
	}
	return nil
}

func (p *parser) parseElement(parent xmltree.Handle, start xml.StartElement, parentScope scope, depth int, startSpan Span) (xmltree.Handle, error) {
	if depth > recursionLimit {
		return xmltree.Handle{}, &ParseError{Kind: ErrUnclosedTag}
	}

	elemScope := parentScope
	type nsDecl struct{ prefix, uri string }
	var nsDecls []nsDecl
	for _, a := range start.Attr {
		switch {
		case a.Name.Space == "xmlns":
			elemScope = elemScope.declare(a.Value)
			nsDecls = append(nsDecls, nsDecl{a.Name.Local, a.Value})
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			elemScope = elemScope.declare(a.Value)
			nsDecls = append(nsDecls, nsDecl{"", a.Value})
		}
	}

	ns := xmltree.NoNamespace
	if start.Name.Space != "" {
		if start.Name.Space == xmltree.XMLNamespaceURI || elemScope.contains(start.Name.Space) {
			ns = p.tree.AddNamespace(start.Name.Space)
		} else {
			return xmltree.Handle{}, &ParseError{Kind: ErrUnknownPrefix, Name: start.Name.Space}
		}
	}
	name := p.tree.AddNameNS(start.Name.Local, ns)
	elem := p.tree.NewElement(name)
	p.spans.set(SpanElementName, elem, startSpan)

	for _, d := range nsDecls {
		var pfx xmltree.PrefixID
		if d.prefix == "" {
			pfx = xmltree.EmptyPrefix
		} else {
			pfx = p.tree.AddPrefix(d.prefix)
		}
		p.tree.InsertNamespace(elem, pfx, p.tree.AddNamespace(d.uri))
	}

	var seen handleset.Set
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		attrNS := xmltree.NoNamespace
		if a.Name.Space != "" {
			if a.Name.Space == xmltree.XMLNamespaceURI || elemScope.contains(a.Name.Space) {
				attrNS = p.tree.AddNamespace(a.Name.Space)
			} else {
				return xmltree.Handle{}, &ParseError{Kind: ErrUnknownPrefix, Name: a.Name.Space}
			}
		}
		attrName := p.tree.AddNameNS(a.Name.Local, attrNS)
		if !seen.Insert(uint16(attrName)) {
			return xmltree.Handle{}, &ParseError{Kind: ErrDuplicateAttribute, Name: a.Name.Local}
		}
		// The decoder has already rewritten CR and CRLF to LF; attribute
		// value normalization maps each LF, CR and TAB to a space.
		value := strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' || r == '\t' {
				return ' '
			}
			return r
		}, a.Value)
		if attrNS != xmltree.NoNamespace && a.Name.Space == xmltree.XMLNamespaceURI && a.Name.Local == "id" {
			normalized, ok := p.ids.Add(value)
			if !ok {
				return xmltree.Handle{}, &ParseError{Kind: ErrDuplicateID, Name: normalized}
			}
			p.tree.InsertAttribute(elem, attrName, normalized)
			p.spanAttr(elem, attrName, startSpan)
			continue
		}
		p.tree.InsertAttribute(elem, attrName, value)
		p.spanAttr(elem, attrName, startSpan)
	}

	if err := p.appendContent(parent, elem); err != nil {
		return xmltree.Handle{}, wrapStructural(err)
	}

	var text strings.Builder
	var textSpan Span
	flushText := func() error {
		if text.Len() == 0 {
			return nil
		}
		h, err := p.tree.AppendText(elem, text.String())
		text.Reset()
		if err != nil {
			return wrapStructural(err)
		}
		p.spans.set(SpanText, h, textSpan)
		textSpan = Span{}
		return nil
	}

	for {
		begin := p.dec.InputOffset()
		tok, err := p.dec.Token()
		end := p.dec.InputOffset()
		if err != nil {
			if err == io.EOF {
				return xmltree.Handle{}, &ParseError{Kind: ErrUnclosedTag, Span: Span{begin, end}}
			}
			return xmltree.Handle{}, classifyTokenError(err, Span{begin, end})
		}

		switch tt := tok.(type) {
		case xml.StartElement:
			if err := flushText(); err != nil {
				return xmltree.Handle{}, err
			}
			if _, err := p.parseElement(elem, tt.Copy(), elemScope, depth+1, Span{begin, end}); err != nil {
				return xmltree.Handle{}, err
			}
		case xml.EndElement:
			// encoding/xml's Decoder.Token already rejects a
			// mismatched close tag before returning it (see
			// classifyTokenError's "closed by" branch below), so by
			// the time an EndElement reaches here it is guaranteed to
			// match start.
			if err := flushText(); err != nil {
				return xmltree.Handle{}, err
			}
			p.spans.set(SpanElementEnd, elem, Span{begin, end})
			return elem, nil
		case xml.CharData:
			if text.Len() == 0 {
				textSpan.Start = begin
			}
			textSpan.End = end
			text.Write(tt)
		case xml.Comment:
			if err := flushText(); err != nil {
				return xmltree.Handle{}, err
			}
			h, err := p.tree.AppendComment(elem, string(tt))
			if err != nil {
				return xmltree.Handle{}, wrapStructural(err)
			}
			p.spans.set(SpanComment, h, Span{begin, end})
		case xml.ProcInst:
			if err := flushText(); err != nil {
				return xmltree.Handle{}, err
			}
			target := p.tree.AddName(tt.Target)
			data := string(tt.Inst)
			h, err := p.tree.AppendProcessingInstruction(elem, target, &data)
			if err != nil {
				return xmltree.Handle{}, wrapStructural(err)
			}
			p.spans.set(SpanPIContent, h, Span{begin, end})
		case xml.Directive:
			return xmltree.Handle{}, &ParseError{Kind: ErrDtdUnsupported}
		}
	}
}

// spanAttr records both the name and value span for the attribute
// named name on elem. encoding/xml's InputOffset only bounds the whole
// start-tag token, not each attribute within it, so both spans are the
// same tag-wide range; see Span's doc comment.
func (p *parser) spanAttr(elem xmltree.Handle, name xmltree.NameID, tagSpan Span) {
	if p.spans == nil {
		return
	}
	h, ok := p.tree.Attributes(elem).Find(name)
	if !ok {
		return
	}
	p.spans.set(SpanAttrName, h, tagSpan)
	p.spans.set(SpanAttrValue, h, tagSpan)
}

// closedByPattern matches encoding/xml's popElement message for a
// mismatched end tag ("element <p> closed by </q>"). The decoder
// never hands that EndElement token back to the caller -- it detects
// the mismatch itself and fails the Token() call -- so this is the
// only place the opened/seen names are observable.
var closedByPattern = regexp.MustCompile(`element <([^>]*)> closed by </([^>]*)>`)

// declPattern matches the decoder's own rejection of an XML declaration
// with a version other than 1.0, or a non-UTF-8 encoding while no
// CharsetReader is set; such a declaration never reaches checkXMLDecl.
var declPattern = regexp.MustCompile(`(unsupported version|encoding) "([^"]*)"`)

// entityPattern matches the decoder's message for a bad entity
// reference; the "(no semicolon)" suffix marks an unterminated one.
var entityPattern = regexp.MustCompile(`invalid character entity (\S+)( \(no semicolon\))?`)

// classifyTokenError turns an *xml.SyntaxError from the decoder into a
// ParseError. encoding/xml does not expose a typed error taxonomy for
// its failure modes, so this is a best-effort text classification; an
// unrecognized message falls back to ErrTokenizer, which preserves the
// original error via Cause.
func classifyTokenError(err error, span Span) *ParseError {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "unexpected EOF"):
		return &ParseError{Kind: ErrUnclosedTag, Span: span, Cause: err}
	case closedByPattern.MatchString(msg):
		m := closedByPattern.FindStringSubmatch(msg)
		return &ParseError{Kind: ErrInvalidCloseTag, Span: span, Opened: m[1], Seen: m[2], Cause: err}
	case declPattern.MatchString(msg):
		m := declPattern.FindStringSubmatch(msg)
		kind := ErrUnsupportedEncoding
		if m[1] == "unsupported version" {
			kind = ErrUnsupportedVersion
		}
		return &ParseError{Kind: kind, Span: span, Name: m[2], Cause: err}
	case entityPattern.MatchString(msg):
		m := entityPattern.FindStringSubmatch(msg)
		kind := ErrInvalidEntity
		if m[2] != "" {
			kind = ErrUnclosedEntity
		}
		return &ParseError{Kind: kind, Span: span, Name: m[1], Cause: err}
	default:
		return &ParseError{Kind: ErrTokenizer, Span: span, Cause: err}
	}
}

// wrapStructural adapts an xmltree.Error from a mutation call made
// while building the tree into the parse package's own error type, so
// callers only ever see one error family from Parse/ParseFragment.
// The original error is kept reachable via Cause/errors.As for callers
// that need the precise xmltree.ErrorKind; Name carries a short label
// for the common case of just wanting a human-readable reason.
func wrapStructural(err error) error {
	if xe, ok := err.(*xmltree.Error); ok {
		return &ParseError{Kind: ErrTokenizer, Name: xe.Error(), Cause: err}
	}
	return &ParseError{Kind: ErrTokenizer, Cause: err}
}
