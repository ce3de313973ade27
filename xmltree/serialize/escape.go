package serialize

import "strings"

// This file is a line-for-line translation of
// original_source/src/entity.rs's serialize_text/serialize_cdata/
// serialize_attribute: parsing entity references back out of source
// text is encoding/xml's job (out of scope here), but writing them
// back out on the way to serialized XML/HTML5 output is not something
// encoding/xml exposes standalone, so it is reimplemented here.

// EscapeText escapes '&', '<', and (unless unescapedGT is set) '>' for
// use as element text content, after running s through normalizer.
// unescapedGT lets HTML5 output leave a bare '>' unescaped, as
// https://www.w3.org/TR/xslt-xquery-serialization/ allows -- except
// where it would be read back as closing a CDATA section ("]]>"),
// which is always escaped regardless.
func EscapeText(s string, normalizer Normalizer, unescapedGT bool) string {
	if normalizer == nil {
		normalizer = NoopNormalizer{}
	}
	s = normalizer.Normalize(s)
	var b strings.Builder
	changed := false
	trailingBrackets := 0
	for _, c := range s {
		switch c {
		case '&':
			changed = true
			b.WriteString("&amp;")
			trailingBrackets = 0
		case '<':
			changed = true
			b.WriteString("&lt;")
			trailingBrackets = 0
		case ']':
			if trailingBrackets < 2 {
				trailingBrackets++
			}
			b.WriteByte(']')
		case '>':
			if !unescapedGT || trailingBrackets >= 2 {
				changed = true
				b.WriteString("&gt;")
			} else {
				b.WriteRune(c)
			}
			trailingBrackets = 0
		default:
			b.WriteRune(c)
			trailingBrackets = 0
		}
	}
	if !changed {
		return s
	}
	return b.String()
}

// EscapeAttribute escapes '&', '<', '\'', and '"' for use inside a
// double-quoted attribute value, after running s through normalizer.
func EscapeAttribute(s string, normalizer Normalizer) string {
	if normalizer == nil {
		normalizer = NoopNormalizer{}
	}
	s = normalizer.Normalize(s)
	var b strings.Builder
	changed := false
	for _, c := range s {
		switch c {
		case '&':
			changed = true
			b.WriteString("&amp;")
		case '<':
			changed = true
			b.WriteString("&lt;")
		case '\'':
			changed = true
			b.WriteString("&apos;")
		case '"':
			changed = true
			b.WriteString("&quot;")
		default:
			b.WriteRune(c)
		}
	}
	if !changed {
		return s
	}
	return b.String()
}

// EscapeCDATA wraps s in a CDATA section, splitting any embedded
// "]]>" close-delimiter sequence across two adjacent sections so the
// result still parses back to the original text.
func EscapeCDATA(s string, normalizer Normalizer) string {
	if normalizer == nil {
		normalizer = NoopNormalizer{}
	}
	s = normalizer.Normalize(s)
	var b strings.Builder
	b.WriteString("<![CDATA[")
	brackets := 0
	for _, c := range s {
		switch c {
		case ']':
			if brackets < 2 {
				brackets++
			} else {
				b.WriteByte(']')
			}
		case '>':
			if brackets == 2 {
				b.WriteString("]]]]><![CDATA[>")
			} else {
				for i := 0; i < brackets; i++ {
					b.WriteByte(']')
				}
				b.WriteByte('>')
			}
			brackets = 0
		default:
			for i := 0; i < brackets; i++ {
				b.WriteByte(']')
			}
			brackets = 0
			b.WriteRune(c)
		}
	}
	for i := 0; i < brackets; i++ {
		b.WriteByte(']')
	}
	b.WriteString("]]>")
	return b.String()
}
