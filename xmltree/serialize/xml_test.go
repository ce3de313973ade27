package serialize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarxml/xmltree/xmltree"
	"github.com/cedarxml/xmltree/xmltree/parse"
	"github.com/cedarxml/xmltree/xmltree/serialize"
)

func TestXMLRoundTrip(t *testing.T) {
	const src = `<doc xmlns:a="urn:a"><a:p attr="v">hello</a:p></doc>`
	tree, root, _, err := parse.ParseString(src, parse.Options{})
	require.NoError(t, err)
	doc, err := tree.DocumentElement(root)
	require.NoError(t, err)

	out, err := serialize.XMLString(tree, doc, serialize.XMLOptions{})
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestXMLStringEscapesTextAndAttributes(t *testing.T) {
	tree, root := xmltree.NewTree()
	doc, _ := tree.AppendElement(root, tree.AddName("doc"))
	tree.InsertAttribute(doc, tree.AddName("attr"), `a "quote" & <tag>`)
	_, err := tree.AppendText(doc, "a & b < c")
	require.NoError(t, err)

	out, err := serialize.XMLString(tree, doc, serialize.XMLOptions{})
	require.NoError(t, err)
	assert.Equal(t, `<doc attr="a &quot;quote&quot; &amp; &lt;tag>">a &amp; b &lt; c</doc>`, out)
}

func TestXMLStringWritesDeclaration(t *testing.T) {
	tree, root := xmltree.NewTree()
	doc, _ := tree.AppendElement(root, tree.AddName("doc"))

	out, err := serialize.XMLString(tree, doc, serialize.XMLOptions{Declaration: true})
	require.NoError(t, err)
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?><doc/>`, out)
}

func TestXMLStringCDATASectionElements(t *testing.T) {
	tree, root := xmltree.NewTree()
	doc, _ := tree.AppendElement(root, tree.AddName("doc"))
	_, err := tree.AppendText(doc, "1 < 2 && 3 > 2")
	require.NoError(t, err)
	name, _ := tree.ElementName(doc)

	out, err := serialize.XMLString(tree, doc, serialize.XMLOptions{
		CDATASectionElements: map[xmltree.NameID]bool{name: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "<doc><![CDATA[1 < 2 && 3 > 2]]></doc>", out)
}

func TestXMLStringUnescapedGT(t *testing.T) {
	tree, root := xmltree.NewTree()
	doc, _ := tree.AppendElement(root, tree.AddName("doc"))
	_, err := tree.AppendText(doc, "1 > 2")
	require.NoError(t, err)

	out, err := serialize.XMLString(tree, doc, serialize.XMLOptions{UnescapedGT: true})
	require.NoError(t, err)
	assert.Equal(t, "<doc>1 > 2</doc>", out)
}

// TestXMLStringCreateMissingPrefixes exercises the worked scenario of
// synthesizing a prefix for a namespace used with no bound prefix.
func TestXMLStringCreateMissingPrefixes(t *testing.T) {
	tree, root := xmltree.NewTree()
	ns := tree.AddNamespace("u")
	a, err := tree.AppendElement(root, tree.AddNameNS("a", ns))
	require.NoError(t, err)

	out, err := serialize.XMLString(tree, a, serialize.XMLOptions{CreateMissingPrefixes: true})
	require.NoError(t, err)
	assert.Equal(t, `<n0:a xmlns:n0="u"/>`, out)
}

// TestXMLStringFragmentSerializationInheritsParentPrefixes exercises
// serializing a subtree still attached under an ancestor that declares
// the prefix it depends on: the fragment must come out self-contained
// without the caller supplying anything.
func TestXMLStringFragmentSerializationInheritsParentPrefixes(t *testing.T) {
	const src = `<doc xmlns:a="urn:a"><a:p/></doc>`
	tree, root, _, err := parse.ParseString(src, parse.Options{})
	require.NoError(t, err)
	doc, err := tree.DocumentElement(root)
	require.NoError(t, err)
	p := tree.ContentChildren(doc)[0]

	out, err := serialize.XMLString(tree, p, serialize.XMLOptions{})
	require.NoError(t, err)
	assert.Equal(t, `<a:p xmlns:a="urn:a"/>`, out)
}

// TestXMLStringExtraPrefixesCoversADetachedFragment exercises the
// ExtraPrefixes escape hatch for a fragment with no parent left in the
// tree at all (Detach severs the link NamespacesInScope would walk).
func TestXMLStringExtraPrefixesCoversADetachedFragment(t *testing.T) {
	const src = `<doc xmlns:a="urn:a"><a:p/></doc>`
	tree, root, _, err := parse.ParseString(src, parse.Options{})
	require.NoError(t, err)
	doc, err := tree.DocumentElement(root)
	require.NoError(t, err)
	p := tree.ContentChildren(doc)[0]

	aPrefix, ok := tree.LookupPrefix("a")
	require.True(t, ok)
	aNS, ok := tree.LookupNamespace("urn:a")
	require.True(t, ok)

	require.NoError(t, tree.Detach(p))

	out, err := serialize.XMLString(tree, p, serialize.XMLOptions{
		ExtraPrefixes: []serialize.ExtraPrefix{{Prefix: aPrefix, Namespace: aNS}},
	})
	require.NoError(t, err)
	assert.Equal(t, `<a:p xmlns:a="urn:a"/>`, out)
}

func TestXMLStringPrettyPrintsBlockChildren(t *testing.T) {
	tree, root := xmltree.NewTree()
	doc, _ := tree.AppendElement(root, tree.AddName("doc"))
	_, err := tree.AppendElement(doc, tree.AddName("a"))
	require.NoError(t, err)
	_, err = tree.AppendElement(doc, tree.AddName("b"))
	require.NoError(t, err)

	out, err := serialize.XMLString(tree, doc, serialize.XMLOptions{Pretty: true})
	require.NoError(t, err)
	assert.Equal(t, "<doc>\n  <a/>\n  <b/>\n</doc>\n", out)
}

func TestXMLStringPrettyPreservesMixedContent(t *testing.T) {
	tree, root := xmltree.NewTree()
	doc, _ := tree.AppendElement(root, tree.AddName("doc"))
	_, err := tree.AppendText(doc, "before ")
	require.NoError(t, err)
	_, err = tree.AppendElement(doc, tree.AddName("em"))
	require.NoError(t, err)
	_, err = tree.AppendText(doc, " after")
	require.NoError(t, err)

	out, err := serialize.XMLString(tree, doc, serialize.XMLOptions{Pretty: true})
	require.NoError(t, err)
	assert.Equal(t, "<doc>before <em/> after</doc>\n", out, "mixed content must not be reindented")
}
