package serialize

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/cedarxml/xmltree/xmltree"
)

// Html5Elements classifies element names the way
// original_source/src/output/html5elements.rs's Html5Elements does:
// a name counts as one of these categories if it matches, case
// insensitively, while unprefixed (no namespace) or in the XHTML
// namespace. golang.org/x/net/html/atom supplies the canonical
// lowercase spelling for any recognized HTML tag, so IsHTML5Element
// uses it as a fast well-known-tag check before falling back to the
// same-shaped lowercase set lookup the Rust version does for anything
// atom doesn't know about (custom/legacy names like "command" or
// "isindex", which HTML5's living standard dropped but atom never
// carried either).
type Html5Elements struct {
	xhtmlNS  xmltree.NamespaceID
	mathmlNS xmltree.NamespaceID
	svgNS    xmltree.NamespaceID

	html5     map[string]bool
	phrasing  map[string]bool
	void      map[string]bool
	formatted map[string]bool
	noEscape  map[string]bool
}

const (
	XHTMLNamespaceURI  = "http://www.w3.org/1999/xhtml"
	MathMLNamespaceURI = "http://www.w3.org/1998/Math/MathML"
	SVGNamespaceURI    = "http://www.w3.org/2000/svg"
)

var html5Names = []string{
	"a", "abbr", "address", "area", "article", "aside", "audio", "b", "base", "bdi", "bdo",
	"blockquote", "body", "br", "button", "canvas", "caption", "cite", "code", "col", "colgroup",
	"command", "datalist", "dd", "del", "details", "dfn", "div", "dl", "dt", "em", "embed",
	"fieldset", "figcaption", "figure", "footer", "form", "h1", "h2", "h3", "h4", "h5", "h6",
	"head", "header", "hgroup", "hr", "html", "i", "iframe", "img", "input", "ins", "kbd",
	"keygen", "label", "legend", "li", "link", "map", "mark", "math", "menu", "meta", "meter",
	"nav", "noscript", "object", "ol", "optgroup", "option", "output", "p", "param", "pre",
	"progress", "q", "rp", "rt", "ruby", "s", "samp", "script", "section", "select", "small",
	"source", "span", "strong", "style", "sub", "summary", "sup", "table", "tbody", "td",
	"template", "textarea", "tfoot", "th", "thead", "time", "title", "tr", "track", "u", "ul",
	"var", "video", "wbr",
}

var voidNames = []string{
	"area", "base", "br", "col", "embed", "hr", "img", "input", "keygen", "link", "meta",
	"param", "source", "track", "wbr",
	"basefont", "frame", "isindex",
}

var phrasingContentNames = []string{
	"a", "abbr", "area", "audio", "b", "bdi", "bdo", "br", "button", "canvas", "cite", "code",
	"command", "datalist", "del", "dfn", "em", "embed", "i", "iframe", "img", "input", "ins",
	"kbd", "keygen", "label", "map", "mark", "math", "meter", "noscript", "object", "output",
	"progress", "q", "ruby", "s", "samp", "script", "select", "small", "span", "strong", "sub",
	"sup", "svg", "textarea", "time", "u", "var", "video", "wbr",
}

var formattedNames = []string{"pre", "script", "style", "title", "textarea"}

var noEscapeNames = []string{"script", "style"}

func nameSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// NewHtml5Elements builds the name classification tables, interning
// the XHTML/MathML/SVG namespace URIs on tree.
func NewHtml5Elements(tree *xmltree.Tree) *Html5Elements {
	return &Html5Elements{
		xhtmlNS:   tree.AddNamespace(XHTMLNamespaceURI),
		mathmlNS:  tree.AddNamespace(MathMLNamespaceURI),
		svgNS:     tree.AddNamespace(SVGNamespaceURI),
		html5:     nameSet(html5Names),
		phrasing:  nameSet(phrasingContentNames),
		void:      nameSet(voidNames),
		formatted: nameSet(formattedNames),
		noEscape:  nameSet(noEscapeNames),
	}
}

func (e *Html5Elements) isHTMLNamespace(ns xmltree.NamespaceID) bool {
	return ns == e.xhtmlNS || ns == xmltree.NoNamespace
}

// MustBeUnprefixed reports whether ns is one of the three namespaces
// HTML5 output always serializes without a prefix (XHTML, MathML,
// SVG), regardless of what prefix the tree's own namespace
// declarations would otherwise pick.
func (e *Html5Elements) MustBeUnprefixed(ns xmltree.NamespaceID) bool {
	return ns == e.xhtmlNS || ns == e.mathmlNS || ns == e.svgNS
}

func (e *Html5Elements) matches(tree *xmltree.Tree, set map[string]bool, name xmltree.NameID) bool {
	n := tree.NameOf(name)
	if !e.isHTMLNamespace(n.Namespace) {
		return false
	}
	return set[strings.ToLower(n.Local)]
}

// IsHTML5Element reports whether name is a recognized HTML5 element
// name (unprefixed or XHTML-namespaced). It consults
// golang.org/x/net/html/atom's table of well-known tag names first --
// a broader set than the curated html5Names list below -- before
// falling back to html5Names for the handful of obsolete names
// (command, isindex, ...) atom's table, built from the current living
// standard, no longer carries.
func (e *Html5Elements) IsHTML5Element(tree *xmltree.Tree, name xmltree.NameID) bool {
	n := tree.NameOf(name)
	if !e.isHTMLNamespace(n.Namespace) {
		return false
	}
	lower := strings.ToLower(n.Local)
	if atom.Lookup([]byte(lower)) != 0 {
		return true
	}
	return e.html5[lower]
}

// IsVoid reports whether name is a void element (no content, no
// closing tag -- <br>, <img>, ...).
func (e *Html5Elements) IsVoid(tree *xmltree.Tree, name xmltree.NameID) bool {
	return e.matches(tree, e.void, name)
}

// IsPhrasing reports whether name is inline/phrasing content for the
// purpose of pretty-printing's "does this element have an inline
// child" test.
func (e *Html5Elements) IsPhrasing(tree *xmltree.Tree, name xmltree.NameID) bool {
	return e.matches(tree, e.phrasing, name)
}

// IsFormatted reports whether name's content is preformatted (pre,
// script, style, title, textarea) and must never be reindented.
func (e *Html5Elements) IsFormatted(tree *xmltree.Tree, name xmltree.NameID) bool {
	return e.matches(tree, e.formatted, name)
}

// IsNoEscape reports whether name's text content is written raw,
// without entity-escaping (script, style).
func (e *Html5Elements) IsNoEscape(tree *xmltree.Tree, name xmltree.NameID) bool {
	return e.matches(tree, e.noEscape, name)
}
