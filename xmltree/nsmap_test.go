package xmltree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarxml/xmltree/xmltree"
)

func TestNamespaceMapPutAppendsAtFront(t *testing.T) {
	tree, root := xmltree.NewTree()
	doc, _ := tree.AppendElement(root, tree.AddName("doc"))
	_, err := tree.AppendElement(doc, tree.AddName("child"))
	require.NoError(t, err)

	px := tree.AddPrefix("x")
	tree.InsertNamespace(doc, px, tree.AddNamespace("urn:x"))

	children := tree.Children(doc)
	require.Len(t, children, 2)
	assert.Equal(t, xmltree.KindNamespace, tree.Kind(children[0]))
	assert.Equal(t, xmltree.KindElement, tree.Kind(children[1]))
}

func TestNamespaceMapPutOverwritesInPlace(t *testing.T) {
	tree, root := xmltree.NewTree()
	doc, _ := tree.AppendElement(root, tree.AddName("doc"))
	px := tree.AddPrefix("x")
	ns1 := tree.AddNamespace("urn:one")
	ns2 := tree.AddNamespace("urn:two")

	nsmap := tree.Namespaces(doc)
	nsmap.Put(px, ns1)
	before := nsmap.Handles()
	nsmap.Put(px, ns2)

	assert.Equal(t, before, nsmap.Handles())
	got, ok := nsmap.Get(px)
	require.True(t, ok)
	assert.Equal(t, ns2, got)
}

func TestNamespaceMapInsertReturnsPreviousBinding(t *testing.T) {
	tree, root := xmltree.NewTree()
	doc, _ := tree.AppendElement(root, tree.AddName("doc"))
	px := tree.AddPrefix("x")
	ns1 := tree.AddNamespace("urn:one")
	ns2 := tree.AddNamespace("urn:two")
	nsmap := tree.Namespaces(doc)

	_, existed := nsmap.Insert(px, ns1)
	assert.False(t, existed)

	prev, existed := nsmap.Insert(px, ns2)
	assert.True(t, existed)
	assert.Equal(t, ns1, prev)
}

func TestNamespaceMapRemove(t *testing.T) {
	tree, root := xmltree.NewTree()
	doc, _ := tree.AppendElement(root, tree.AddName("doc"))
	px := tree.AddPrefix("x")
	nsmap := tree.Namespaces(doc)
	nsmap.Put(px, tree.AddNamespace("urn:x"))

	assert.True(t, nsmap.Remove(px))
	assert.False(t, nsmap.ContainsKey(px))
	assert.False(t, nsmap.Remove(px))
}

func TestNamespacesInScopeInnermostWins(t *testing.T) {
	tree, root := xmltree.NewTree()
	doc, _ := tree.AppendElement(root, tree.AddName("doc"))
	px := tree.AddPrefix("x")
	outer := tree.AddNamespace("urn:outer")
	inner := tree.AddNamespace("urn:inner")
	tree.InsertNamespace(doc, px, outer)

	a, _ := tree.AppendElement(doc, tree.AddName("a"))
	tree.InsertNamespace(a, px, inner)
	b, _ := tree.AppendElement(a, tree.AddName("b"))

	scope := tree.NamespacesInScope(b)
	assert.Equal(t, inner, scope[px])

	docScope := tree.NamespacesInScope(doc)
	assert.Equal(t, outer, docScope[px])
}

func TestNamespacesInScopeAlwaysIncludesXMLPrefix(t *testing.T) {
	tree, root := xmltree.NewTree()
	doc, _ := tree.AppendElement(root, tree.AddName("doc"))

	scope := tree.NamespacesInScope(doc)
	assert.Equal(t, xmltree.XMLNamespace, scope[xmltree.XMLPrefix])
}

func TestNamespaceMapEntryOrInsertWith(t *testing.T) {
	tree, root := xmltree.NewTree()
	doc, _ := tree.AppendElement(root, tree.AddName("doc"))
	px := tree.AddPrefix("x")
	nsmap := tree.Namespaces(doc)

	called := false
	v := nsmap.Entry(px).OrInsertWith(func() xmltree.NamespaceID {
		called = true
		return tree.AddNamespace("urn:lazy")
	})
	assert.True(t, called)
	assert.Equal(t, tree.AddNamespace("urn:lazy"), v)

	called = false
	nsmap.Entry(px).OrInsertWith(func() xmltree.NamespaceID {
		called = true
		return tree.AddNamespace("urn:never")
	})
	assert.False(t, called, "OrInsertWith must not call the thunk when the key is already present")
}
