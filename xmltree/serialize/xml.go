package serialize

import (
	"bufio"
	"io"
	"strings"

	"github.com/cedarxml/xmltree/xmltree"
)

// This file plays the role of droyo-go-xml's marshal.go encoder
// (buffered io.Writer output, a pretty/indent switch) driving the
// Event stream and FullnameResolver, in the shape of
// original_source/src/output/xml_serializer.rs's XmlSerializerWriter
// (write_start_tag_open/write_attribute/...).

// XMLOptions configures WriteXML/XMLString.
type XMLOptions struct {
	// Pretty enables indentation and newlines between nodes.
	Pretty bool
	// Suppress, when non-nil, reports whether an element's content
	// should never be indented even when Pretty is set (a <pre>-like
	// tag).
	Suppress func(xmltree.NameID) bool
	// CreateMissingPrefixes calls Tree.CreateMissingPrefixes on root
	// before serializing, so a namespace used without a bound prefix
	// gets one synthesized rather than failing with ErrMissingPrefix.
	CreateMissingPrefixes bool
	// CDATASectionElements names elements (by NameID) whose text
	// children are written as CDATA sections instead of escaped text.
	CDATASectionElements map[xmltree.NameID]bool
	// UnescapedGT leaves '>' literal in text content (except where it
	// would be read back as closing a CDATA section).
	UnescapedGT bool
	// Declaration emits a leading <?xml version="1.0" encoding="UTF-8"?>.
	Declaration bool
	// Normalizer runs over text and attribute content before escaping.
	// Defaults to no normalization.
	Normalizer Normalizer
	// ExtraPrefixes declares additional xmlns bindings on root beyond
	// what WriteXML already infers automatically by walking root's
	// parent scope (see inheritedExtraPrefixes): use this for bindings
	// root depends on that aren't declared anywhere in the tree at
	// all, such as a root that has been Detach-ed from its parent.
	ExtraPrefixes []ExtraPrefix
}

// ExtraPrefix is one (prefix, namespace) binding to declare on a
// fragment's root element; see XMLOptions.ExtraPrefixes.
type ExtraPrefix struct {
	Prefix    xmltree.PrefixID
	Namespace xmltree.NamespaceID
}

// WriteXML serializes the subtree rooted at root as XML to w.
func WriteXML(w io.Writer, tree *xmltree.Tree, root xmltree.Handle, opts XMLOptions) error {
	if opts.CreateMissingPrefixes {
		if tree.Kind(root) == xmltree.KindElement {
			if err := tree.CreateMissingPrefixes(root); err != nil {
				return err
			}
		}
	}

	extra := inheritedExtraPrefixes(tree, root)
	for _, e := range opts.ExtraPrefixes {
		extra = append(extra, prefixNS{Prefix: e.Prefix, NS: e.Namespace})
	}
	resolver := NewFullnameResolverWithExtra(tree, extra)

	var pretty *Pretty
	if opts.Pretty {
		pretty = NewPretty(tree, opts.Suppress, nil, nil)
	}

	bw := bufio.NewWriter(w)
	if opts.Declaration {
		bw.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
		if opts.Pretty {
			bw.WriteByte('\n')
		}
	}
	var pushStack []bool
	var elementStack []xmltree.NameID

	for _, ev := range Events(tree, root) {
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
			name, ok := resolver.FullnameElement(ev.Name)
			if !ok {
				return missingPrefixErr(tree, ev.Name)
			}
			bw.WriteByte('<')
			bw.WriteString(name)
			if ev.Node == root {
				declared := tree.Namespaces(root)
				seen := make(map[xmltree.PrefixID]bool, len(extra))
				for _, e := range extra {
					if declared.ContainsKey(e.Prefix) || seen[e.Prefix] {
						continue
					}
					seen[e.Prefix] = true
					writeNSDecl(bw, tree, e.Prefix, e.NS, opts.Normalizer)
				}
			}
		case EventNamespaceDecl:
			writeNSDecl(bw, tree, ev.Prefix, ev.Namespace, opts.Normalizer)
		case EventAttribute:
			name, ok := resolver.FullnameAttribute(ev.Name)
			if !ok {
				return missingPrefixErr(tree, ev.Name)
			}
			bw.WriteByte(' ')
			bw.WriteString(name)
			bw.WriteString(`="`)
			bw.WriteString(EscapeAttribute(ev.Value, opts.Normalizer))
			bw.WriteByte('"')
		case EventStartTagClose:
			if ev.SelfClosing {
				bw.WriteString("/>")
			} else {
				bw.WriteByte('>')
			}
		case EventEndTag:
			if tree.HasContentChildren(ev.Node) {
				name, ok := resolver.FullnameElement(ev.Name)
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
			if opts.CDATASectionElements[parent] {
				bw.WriteString(EscapeCDATA(ev.Text, opts.Normalizer))
			} else {
				bw.WriteString(EscapeText(ev.Text, opts.Normalizer, opts.UnescapedGT))
			}
		case EventComment:
			bw.WriteString("<!--")
			bw.WriteString(ev.Text)
			bw.WriteString("-->")
		case EventProcessingInstruction:
			if tree.NameOf(ev.Name).Namespace != xmltree.NoNamespace {
				return &xmltree.Error{Kind: xmltree.ErrNamespaceInProcessingInstruction, Handle: ev.Node}
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

// XMLString serializes the subtree rooted at root as XML and returns
// it as a string.
func XMLString(tree *xmltree.Tree, root xmltree.Handle, opts XMLOptions) (string, error) {
	var b strings.Builder
	if err := WriteXML(&b, tree, root, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeNSDecl(bw *bufio.Writer, tree *xmltree.Tree, prefix xmltree.PrefixID, ns xmltree.NamespaceID, normalizer Normalizer) {
	bw.WriteByte(' ')
	if prefix == xmltree.EmptyPrefix {
		bw.WriteString("xmlns=\"")
	} else {
		bw.WriteString("xmlns:")
		bw.WriteString(tree.PrefixString(prefix))
		bw.WriteString("=\"")
	}
	bw.WriteString(EscapeAttribute(tree.NamespaceString(ns), normalizer))
	bw.WriteByte('"')
}

func missingPrefixErr(tree *xmltree.Tree, name xmltree.NameID) error {
	uri := tree.NamespaceString(tree.NameOf(name).Namespace)
	return &xmltree.Error{Kind: xmltree.ErrMissingPrefix, Detail: uri}
}
