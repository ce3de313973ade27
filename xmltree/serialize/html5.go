package serialize

import (
	"bufio"
	"io"
	"strings"

	"github.com/cedarxml/xmltree/xmltree"
)

// This file is the Go shape of
// original_source/src/output/html5_serializer.rs's Html5Serializer,
// reusing this package's Event stream, FullnameResolver and Pretty
// rather than a second bespoke walk: HTML5 output differs from XML
// output in which events it skips (void elements never get a closing
// tag; elements in MustBeUnprefixed namespaces drop their prefix) and
// how text is written (unescaped '>' except at a "]]>" boundary,
// raw/CDATA content for script/style and any CDATASectionElements
// caller opts into), not in how the tree is walked.

// HTML5Options configures WriteHTML5/HTML5String.
type HTML5Options struct {
	// Pretty enables indentation, informed by HTML5's phrasing-content
	// elements counting as "inline" the same way a text node does.
	Pretty bool
	// CDATASectionElements names elements (by NameID) whose text
	// content should be written as a CDATA section -- intended for
	// embedded non-HTML content such as inline MathML or SVG source,
	// per spec.md's HTML5 serializer scope.
	CDATASectionElements map[xmltree.NameID]bool
	// Normalizer runs over text and attribute content before escaping.
	Normalizer Normalizer
	// ExtraPrefixes declares additional xmlns bindings on root beyond
	// what WriteHTML5 already infers automatically by walking root's
	// parent scope (see inheritedExtraPrefixes): use this for bindings
	// root depends on that aren't declared anywhere in the tree at
	// all, such as a root that has been Detach-ed from its parent.
	// Unprefixed (X)HTML/MathML/SVG content never needs this.
	ExtraPrefixes []ExtraPrefix
}

// WriteHTML5 serializes the subtree rooted at root using HTML5
// serialization rules: a leading "<!DOCTYPE html>", void elements
// written unclosed, unprefixed XHTML/MathML/SVG content, and
// raw/CDATA text for the elements HTML5 treats as opaque.
func WriteHTML5(w io.Writer, tree *xmltree.Tree, root xmltree.Handle, opts HTML5Options) error {
	elements := NewHtml5Elements(tree)
	extra := inheritedExtraPrefixes(tree, root)
	for _, e := range opts.ExtraPrefixes {
		extra = append(extra, prefixNS{Prefix: e.Prefix, NS: e.Namespace})
	}
	resolver := NewFullnameResolverWithExtra(tree, extra)

	var pretty *Pretty
	if opts.Pretty {
		pretty = NewPretty(tree, elements.formattedSuppressor(tree), elements.phrasingInline(tree), elements.neverClosesSeparately(tree))
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("<!DOCTYPE html>")

	var pushStack []bool
	var elementStack []xmltree.NameID

	events := Events(tree, root)
	for _, ev := range events {
		indent, newline := 0, false
		if pretty != nil {
			indent, newline = pretty.Prettify(ev)
		}
		if indent > 0 {
			bw.WriteString(strings.Repeat("  ", indent))
		}

		switch ev.Kind {
		case EventStartTagOpen:
			did := resolver.Push(declaredOf(tree, ev.Node))
			pushStack = append(pushStack, did)
			elementStack = append(elementStack, ev.Name)
			name, ok := resolveHTML5Name(tree, resolver, elements, ev.Name, false)
			if !ok {
				return missingPrefixErr(tree, ev.Name)
			}
			bw.WriteByte('<')
			bw.WriteString(name)
			if ev.Node == root {
				declared := tree.Namespaces(root)
				seen := make(map[xmltree.PrefixID]bool, len(extra))
				for _, e := range extra {
					if elements.MustBeUnprefixed(e.NS) || declared.ContainsKey(e.Prefix) || seen[e.Prefix] {
						continue
					}
					seen[e.Prefix] = true
					writeNSDecl(bw, tree, e.Prefix, e.NS, opts.Normalizer)
				}
			}
		case EventNamespaceDecl:
			if elements.MustBeUnprefixed(ev.Namespace) {
				continue
			}
			writeNSDecl(bw, tree, ev.Prefix, ev.Namespace, opts.Normalizer)
		case EventAttribute:
			name, ok := resolveHTML5Name(tree, resolver, elements, ev.Name, true)
			if !ok {
				return missingPrefixErr(tree, ev.Name)
			}
			bw.WriteByte(' ')
			bw.WriteString(name)
			bw.WriteString(`="`)
			bw.WriteString(EscapeAttribute(ev.Value, opts.Normalizer))
			bw.WriteByte('"')
		case EventStartTagClose:
			bw.WriteByte('>')
		case EventEndTag:
			if !elements.IsVoid(tree, ev.Name) {
				name, ok := resolveHTML5Name(tree, resolver, elements, ev.Name, false)
				if !ok {
					return missingPrefixErr(tree, ev.Name)
				}
				bw.WriteString("</")
				bw.WriteString(name)
				bw.WriteByte('>')
			}
			if n := len(pushStack); n > 0 {
				did := pushStack[n-1]
				pushStack = pushStack[:n-1]
				if did {
					resolver.Pop()
				}
			}
			elementStack = elementStack[:len(elementStack)-1]
		case EventText:
			parent := xmltree.NameID(0)
			if len(elementStack) > 0 {
				parent = elementStack[len(elementStack)-1]
			}
			switch {
			case opts.CDATASectionElements[parent]:
				bw.WriteString(EscapeCDATA(ev.Text, opts.Normalizer))
			case elements.IsNoEscape(tree, parent):
				bw.WriteString(ev.Text)
			default:
				bw.WriteString(EscapeText(ev.Text, opts.Normalizer, true))
			}
		case EventComment:
			bw.WriteString("<!--")
			bw.WriteString(ev.Text)
			bw.WriteString("-->")
		case EventProcessingInstruction:
			if tree.NameOf(ev.Name).Namespace != xmltree.NoNamespace {
				return &xmltree.Error{Kind: xmltree.ErrNamespaceInProcessingInstruction, Handle: ev.Node}
			}
			if ev.PIData != nil && strings.ContainsRune(*ev.PIData, '>') {
				return &xmltree.Error{Kind: xmltree.ErrProcessingInstructionGtInHtml, Detail: *ev.PIData}
			}
			bw.WriteString("<?")
			bw.WriteString(tree.LocalName(ev.Name))
			if ev.PIData != nil && *ev.PIData != "" {
				bw.WriteByte(' ')
				bw.WriteString(*ev.PIData)
			}
			bw.WriteString("?>")
		}

		if newline {
			bw.WriteByte('\n')
		}
	}
	if err := bw.Flush(); err != nil {
		return &xmltree.Error{Kind: xmltree.ErrIO, Detail: err.Error()}
	}
	return nil
}

// HTML5String serializes the subtree rooted at root as HTML5 and
// returns it as a string.
func HTML5String(tree *xmltree.Tree, root xmltree.Handle, opts HTML5Options) (string, error) {
	var b strings.Builder
	if err := WriteHTML5(&b, tree, root, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// resolveHTML5Name resolves name the way HTML5 output requires:
// XHTML/MathML/SVG content is always unprefixed, regardless of what
// the resolver would otherwise pick.
func resolveHTML5Name(tree *xmltree.Tree, resolver *FullnameResolver, elements *Html5Elements, name xmltree.NameID, attribute bool) (string, bool) {
	n := tree.NameOf(name)
	if elements.MustBeUnprefixed(n.Namespace) {
		return n.Local, true
	}
	if attribute {
		return resolver.FullnameAttribute(name)
	}
	return resolver.FullnameElement(name)
}

func (e *Html5Elements) formattedSuppressor(tree *xmltree.Tree) func(xmltree.NameID) bool {
	return func(name xmltree.NameID) bool { return e.IsFormatted(tree, name) }
}

func (e *Html5Elements) phrasingInline(tree *xmltree.Tree) func(xmltree.NameID) bool {
	return func(name xmltree.NameID) bool { return e.IsPhrasing(tree, name) }
}

// neverClosesSeparately reports, for the pretty-printer, whether an
// element's open and close tags never produce separate output. In
// HTML5 that's void elements only (<br>, <img>, ...): unlike XML,
// a childless <div> still gets a written </div>.
func (e *Html5Elements) neverClosesSeparately(tree *xmltree.Tree) func(xmltree.Handle) bool {
	return func(h xmltree.Handle) bool {
		name, ok := tree.ElementName(h)
		return ok && e.IsVoid(tree, name)
	}
}
