package parse_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarxml/xmltree/xmltree"
	"github.com/cedarxml/xmltree/xmltree/parse"
)

func TestParseSimpleElement(t *testing.T) {
	tree, root, _, err := parse.ParseString("<p>Example</p>", parse.Options{})
	require.NoError(t, err)

	elem, err := tree.DocumentElement(root)
	require.NoError(t, err)
	name, ok := tree.ElementName(elem)
	require.True(t, ok)
	assert.Equal(t, "p", tree.LocalName(name))

	children := tree.ContentChildren(elem)
	require.Len(t, children, 1)
	text, ok := tree.Text(children[0])
	require.True(t, ok)
	assert.Equal(t, "Example", text)
}

func TestParseRecordsSpansWhenEnabled(t *testing.T) {
	tree, root, spans, err := parse.ParseString("<p>Example</p>", parse.Options{TrackSpans: true})
	require.NoError(t, err)
	elem, err := tree.DocumentElement(root)
	require.NoError(t, err)

	_, ok := spans.Span(parse.SpanElementName, elem)
	assert.True(t, ok)
}

func TestParseResolvesNamespacedElement(t *testing.T) {
	src := `<doc xmlns:a="urn:a"><a:p/></doc>`
	tree, root, _, err := parse.ParseString(src, parse.Options{})
	require.NoError(t, err)

	elem, err := tree.DocumentElement(root)
	require.NoError(t, err)
	children := tree.ContentChildren(elem)
	require.Len(t, children, 1)

	name, ok := tree.ElementName(children[0])
	require.True(t, ok)
	n := tree.NameOf(name)
	assert.Equal(t, "p", n.Local)
	assert.Equal(t, "urn:a", tree.NamespaceString(n.Namespace))
}

func TestParseDuplicateAttributeFails(t *testing.T) {
	_, _, _, err := parse.ParseString(`<p a="1" a="2"/>`, parse.Options{})
	require.Error(t, err)
	var pe *parse.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parse.ErrDuplicateAttribute, pe.Kind)
}

func TestParseDuplicateXMLIDFails(t *testing.T) {
	_, _, _, err := parse.ParseString(`<p><a xml:id="x"/><b xml:id="x"/></p>`, parse.Options{})
	require.Error(t, err)
	var pe *parse.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parse.ErrDuplicateID, pe.Kind)
}

func TestParseUnknownPrefixFails(t *testing.T) {
	_, _, _, err := parse.ParseString(`<a:p/>`, parse.Options{})
	require.Error(t, err)
	var pe *parse.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parse.ErrUnknownPrefix, pe.Kind)
}

func TestParseUnclosedTagFails(t *testing.T) {
	_, _, _, err := parse.ParseString(`<p>`, parse.Options{})
	require.Error(t, err)
	var pe *parse.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parse.ErrUnclosedTag, pe.Kind)
}

func TestParseInvalidCloseTagFails(t *testing.T) {
	_, _, _, err := parse.ParseString(`<p></q>`, parse.Options{})
	require.Error(t, err)
	var pe *parse.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parse.ErrInvalidCloseTag, pe.Kind)
	assert.Equal(t, "p", pe.Opened)
	assert.Equal(t, "q", pe.Seen)
}

func TestParseDTDUnsupported(t *testing.T) {
	_, _, _, err := parse.ParseString(`<!DOCTYPE p><p/>`, parse.Options{})
	require.Error(t, err)
	var pe *parse.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parse.ErrDtdUnsupported, pe.Kind)
}

func TestParseTextAtTopLevelFails(t *testing.T) {
	_, _, _, err := parse.ParseString(`stray text <p/>`, parse.Options{})
	require.Error(t, err)
	var pe *parse.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parse.ErrTextAtTopLevel, pe.Kind)
}

func TestParseMultipleElementsAtTopLevelFails(t *testing.T) {
	_, _, _, err := parse.ParseString(`<a/><b/>`, parse.Options{})
	require.Error(t, err)
	var pe *parse.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parse.ErrMultipleElementsAtTopLevel, pe.Kind)
}

func TestParseNoElementAtTopLevelFails(t *testing.T) {
	_, _, _, err := parse.ParseString(`<!--only a comment-->`, parse.Options{})
	require.Error(t, err)
	var pe *parse.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parse.ErrNoElementAtTopLevel, pe.Kind)
}

func TestParseUnsupportedVersionFails(t *testing.T) {
	_, _, _, err := parse.ParseString(`<?xml version="1.1"?><p/>`, parse.Options{})
	require.Error(t, err)
	var pe *parse.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parse.ErrUnsupportedVersion, pe.Kind)
}

func TestParseUnsupportedEncodingFailsWithoutDetection(t *testing.T) {
	_, _, _, err := parse.ParseString(`<?xml version="1.0" encoding="ISO-8859-1"?><p/>`, parse.Options{})
	require.Error(t, err)
	var pe *parse.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parse.ErrUnsupportedEncoding, pe.Kind)
}

func TestParseUnsupportedEncodingAcceptedWithDetection(t *testing.T) {
	_, _, _, err := parse.ParseString(`<?xml version="1.0" encoding="ISO-8859-1"?><p/>`, parse.Options{DetectCharset: true})
	require.NoError(t, err)
}

func TestParseStandaloneNoFails(t *testing.T) {
	_, _, _, err := parse.ParseString(`<?xml version="1.0" standalone="no"?><p/>`, parse.Options{})
	require.Error(t, err)
	var pe *parse.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parse.ErrUnsupportedNotStandalone, pe.Kind)
}

func TestParseStandaloneNoAcceptedWithIgnoreFlag(t *testing.T) {
	_, _, _, err := parse.ParseString(`<?xml version="1.0" standalone="no"?><p/>`, parse.Options{IgnoreStandalone: true})
	require.NoError(t, err)
}

func TestParseFragmentAllowsTopLevelTextAndMultipleElements(t *testing.T) {
	tree, root, _, err := parse.ParseFragment(strings.NewReader(`A<b/>B`), parse.Options{})
	require.NoError(t, err)

	children := tree.ContentChildren(root)
	require.Len(t, children, 3)
	first, ok := tree.Text(children[0])
	require.True(t, ok)
	assert.Equal(t, "A", first)
	assert.Equal(t, xmltree.KindElement, tree.Kind(children[1]))
	last, ok := tree.Text(children[2])
	require.True(t, ok)
	assert.Equal(t, "B", last)
}
