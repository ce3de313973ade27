package serialize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarxml/xmltree/xmltree"
	"github.com/cedarxml/xmltree/xmltree/serialize"
)

func TestFullnameResolverUnnamespacedNameIsLocalOnly(t *testing.T) {
	tree, _ := xmltree.NewTree()
	r := serialize.NewFullnameResolver(tree)
	name := tree.AddName("p")

	got, ok := r.FullnameElement(name)
	require.True(t, ok)
	assert.Equal(t, "p", got)
}

func TestFullnameResolverXMLNamespaceAlwaysUsesXMLPrefix(t *testing.T) {
	tree, _ := xmltree.NewTree()
	r := serialize.NewFullnameResolver(tree)
	name := tree.AddNameNS("id", xmltree.XMLNamespace)

	got, ok := r.FullnameAttribute(name)
	require.True(t, ok)
	assert.Equal(t, "xml:id", got)
}

func TestFullnameResolverMissingPrefixFailsWithNoDeclarations(t *testing.T) {
	tree, _ := xmltree.NewTree()
	ns := tree.AddNamespace("urn:unbound")
	r := serialize.NewFullnameResolver(tree)
	name := tree.AddNameNS("thing", ns)

	_, ok := r.FullnameElement(name)
	assert.False(t, ok)
}

// TestWriteXMLPrefersEmptyPrefixForElements exercises elementPrefix's
// rule through the public WriteXML path: when a namespace has both an
// empty-prefix and a named-prefix binding in scope, elements prefer
// the empty prefix but attributes on the same element never do.
func TestWriteXMLPrefersEmptyPrefixForElements(t *testing.T) {
	tree, root := xmltree.NewTree()
	ns := tree.AddNamespace("urn:a")
	doc, err := tree.AppendElement(root, tree.AddNameNS("doc", ns))
	require.NoError(t, err)
	tree.InsertNamespace(doc, tree.AddPrefix("x"), ns)
	tree.InsertNamespace(doc, xmltree.EmptyPrefix, ns)
	tree.InsertAttribute(doc, tree.AddNameNS("attr", ns), "v")

	out, err := serialize.XMLString(tree, doc, serialize.XMLOptions{})
	require.NoError(t, err)
	assert.Contains(t, out, "<doc ")
	assert.Contains(t, out, "x:attr=\"v\"", "an attribute in a namespace is never written with the empty prefix")
}

func TestWriteXMLMissingPrefixFails(t *testing.T) {
	tree, root := xmltree.NewTree()
	ns := tree.AddNamespace("urn:unbound")
	doc, err := tree.AppendElement(root, tree.AddNameNS("doc", ns))
	require.NoError(t, err)

	_, err = serialize.XMLString(tree, doc, serialize.XMLOptions{})
	require.Error(t, err)
	var xerr *xmltree.Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, xmltree.ErrMissingPrefix, xerr.Kind)
}
