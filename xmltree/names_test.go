package xmltree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarxml/xmltree/xmltree"
)

func TestInternerRoundTrip(t *testing.T) {
	tree, _ := xmltree.NewTree()

	id := tree.AddName("foo")
	assert.Equal(t, "foo", tree.LocalName(id))

	got, ok := tree.LookupName("foo")
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = tree.LookupName("never-interned")
	assert.False(t, ok)
}

func TestAddNameIsIdempotent(t *testing.T) {
	tree, _ := xmltree.NewTree()
	a := tree.AddName("foo")
	b := tree.AddName("foo")
	assert.Equal(t, a, b)
}

func TestNameIdentityIncludesNamespaceNotPrefix(t *testing.T) {
	tree, _ := xmltree.NewTree()
	ns := tree.AddNamespace("urn:example")

	plain := tree.AddName("a")
	namespaced := tree.AddNameNS("a", ns)
	assert.NotEqual(t, plain, namespaced, "same local name in different namespaces must be distinct ids")

	// Re-interning with the same (local, ns) pair returns the same id
	// regardless of which prefix a caller associates with it at any
	// particular declaration site -- prefix plays no part in identity.
	again := tree.AddNameNS("a", ns)
	assert.Equal(t, namespaced, again)
}

func TestNamespaceAndPrefixInterners(t *testing.T) {
	tree, _ := xmltree.NewTree()

	ns := tree.AddNamespace("urn:example")
	assert.Equal(t, "urn:example", tree.NamespaceString(ns))
	got, ok := tree.LookupNamespace("urn:example")
	require.True(t, ok)
	assert.Equal(t, ns, got)

	pfx := tree.AddPrefix("ex")
	assert.Equal(t, "ex", tree.PrefixString(pfx))
	gotPfx, ok := tree.LookupPrefix("ex")
	require.True(t, ok)
	assert.Equal(t, pfx, gotPfx)
}

func TestXMLPrefixIsAlwaysBound(t *testing.T) {
	tree, _ := xmltree.NewTree()
	assert.Equal(t, xmltree.XMLNamespaceURI, tree.NamespaceString(xmltree.XMLNamespace))
	assert.Equal(t, xmltree.XMLPrefixString, tree.PrefixString(xmltree.XMLPrefix))
}

func TestNameOfReturnsLocalAndNamespace(t *testing.T) {
	tree, _ := xmltree.NewTree()
	ns := tree.AddNamespace("urn:example")
	id := tree.AddNameNS("thing", ns)

	n := tree.NameOf(id)
	assert.Equal(t, "thing", n.Local)
	assert.Equal(t, ns, n.Namespace)
}
