package xmltree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarxml/xmltree/xmltree"
)

// buildSample constructs:
//
//	<doc><a><b/><c>text</c></a><d/></doc>
//
// and returns the tree plus handles to every named node.
func buildSample(t *testing.T) (tree *xmltree.Tree, doc, a, b, c, text, d xmltree.Handle) {
	t.Helper()
	tree, root := xmltree.NewTree()
	var err error
	doc, err = tree.AppendElement(root, tree.AddName("doc"))
	require.NoError(t, err)
	a, err = tree.AppendElement(doc, tree.AddName("a"))
	require.NoError(t, err)
	b, err = tree.AppendElement(a, tree.AddName("b"))
	require.NoError(t, err)
	c, err = tree.AppendElement(a, tree.AddName("c"))
	require.NoError(t, err)
	text, err = tree.AppendText(c, "text")
	require.NoError(t, err)
	d, err = tree.AppendElement(doc, tree.AddName("d"))
	require.NoError(t, err)
	return
}

func TestChildrenAndContentChildren(t *testing.T) {
	tree, doc, a, _, _, _, d := buildSample(t)
	assert.Equal(t, []xmltree.Handle{a, d}, tree.Children(doc))
	assert.Equal(t, []xmltree.Handle{a, d}, tree.ContentChildren(doc))
	assert.True(t, tree.HasContentChildren(doc))
	assert.Equal(t, 2, tree.ChildCount(doc))
}

func TestContentChildrenSkipsAttributesAndNamespaces(t *testing.T) {
	tree, _, a, _, _, _, _ := buildSample(t)
	tree.InsertNamespace(a, tree.AddPrefix("x"), tree.AddNamespace("urn:x"))
	tree.InsertAttribute(a, tree.AddName("attr"), "v")

	assert.Equal(t, 4, tree.ChildCount(a)) // namespace + attribute + b + c
	content := tree.ContentChildren(a)
	assert.Len(t, content, 2)
	for _, h := range content {
		k := tree.Kind(h)
		assert.True(t, k == xmltree.KindElement || k == xmltree.KindText)
	}
}

func TestAncestorsOrderedFromParentToRoot(t *testing.T) {
	tree, doc, a, b, _, _, _ := buildSample(t)
	root := tree.Root()
	assert.Equal(t, []xmltree.Handle{a, doc, root}, tree.Ancestors(b))
}

func TestDescendantsPreOrder(t *testing.T) {
	tree, _, a, b, c, text, _ := buildSample(t)
	assert.Equal(t, []xmltree.Handle{b, c, text}, tree.Descendants(a))
}

func TestFollowingSiblingsAndPrecedingSiblings(t *testing.T) {
	tree, _, a, b, c, _, d := buildSample(t)
	assert.Equal(t, []xmltree.Handle{d}, tree.FollowingSiblings(a))
	assert.Equal(t, []xmltree.Handle{a}, tree.PrecedingSiblings(d))
	assert.Equal(t, []xmltree.Handle{c}, tree.FollowingSiblings(b))
	assert.Equal(t, []xmltree.Handle{b}, tree.PrecedingSiblings(c))
}

func TestFollowingExcludesAncestorsAndDescendants(t *testing.T) {
	tree, _, _, b, c, text, d := buildSample(t)
	assert.Equal(t, []xmltree.Handle{c, text, d}, tree.Following(b))
}

func TestPrecedingExcludesAncestors(t *testing.T) {
	tree, _, a, b, c, text, d := buildSample(t)
	assert.Equal(t, []xmltree.Handle{text, c, b, a}, tree.Preceding(d))
}

func TestTraverseEmitsPairedStartEndForEveryNode(t *testing.T) {
	tree, _, a, b, c, text, _ := buildSample(t)
	steps := tree.Traverse(a)

	want := []xmltree.TraverseStep{
		{a, xmltree.Start},
		{b, xmltree.Start},
		{b, xmltree.End},
		{c, xmltree.Start},
		{text, xmltree.Start},
		{text, xmltree.End},
		{c, xmltree.End},
		{a, xmltree.End},
	}
	assert.Equal(t, want, steps)
}

func TestReverseTraverseIsTraverseReversed(t *testing.T) {
	tree, _, a, b, c, text, _ := buildSample(t)
	steps := tree.ReverseTraverse(a)

	want := []xmltree.TraverseStep{
		{a, xmltree.End},
		{c, xmltree.End},
		{text, xmltree.End},
		{text, xmltree.Start},
		{c, xmltree.Start},
		{b, xmltree.End},
		{b, xmltree.Start},
		{a, xmltree.Start},
	}
	assert.Equal(t, want, steps)
}

func TestLevelOrderSentinelsBetweenParentGroups(t *testing.T) {
	tree, doc, a, b, c, text, d := buildSample(t)
	steps := tree.LevelOrder(doc)

	invalid := xmltree.Handle{}
	want := []xmltree.TraverseStep{
		{doc, xmltree.Start},
		{a, xmltree.Start},
		{d, xmltree.Start},
		{invalid, xmltree.End}, // boundary: a's children group starts
		{b, xmltree.Start},
		{c, xmltree.Start},
		{invalid, xmltree.End}, // boundary: c's children group starts
		{text, xmltree.Start},
		{invalid, xmltree.End}, // final
	}
	assert.Equal(t, want, steps)
}

func TestTraverseLeafNodeIsStartImmediatelyFollowedByEnd(t *testing.T) {
	tree, _, _, _, _, text, _ := buildSample(t)
	steps := tree.Traverse(text)
	assert.Equal(t, []xmltree.TraverseStep{
		{text, xmltree.Start},
		{text, xmltree.End},
	}, steps)
}

func TestTraverseEmptyElementGetsEndImmediately(t *testing.T) {
	tree, _, _, b, _, _, _ := buildSample(t)
	steps := tree.Traverse(b)
	assert.Equal(t, []xmltree.TraverseStep{
		{b, xmltree.Start},
		{b, xmltree.End},
	}, steps)
}
