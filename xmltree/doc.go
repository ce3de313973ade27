// Package xmltree implements an in-memory, mutable tree of XML nodes.
//
// A Tree owns an arena of nodes plus the three interner tables for
// element/attribute names, namespace URIs and prefixes. Nodes are
// addressed by opaque, stable Handle values rather than pointers, so
// that handles taken before a mutation remain valid (though possibly
// marked removed) afterward. Namespace declarations and attributes are
// modeled as ordinary children of an element, occupying a fixed
// leading range ([Namespace*][Attribute*][Content*]) rather than a
// separate side table, so that traversal, cloning and removal all
// compose with the general tree machinery.
//
// Package xmltree/parse builds a Tree from XML source text. Package
// xmltree/serialize renders a Tree back to XML or HTML5.
package xmltree // import "github.com/cedarxml/xmltree/xmltree"
