package parse

import "github.com/cedarxml/xmltree/xmltree"

// SpanKind identifies which sub-part of a node a recorded Span
// describes.
type SpanKind uint8

const (
	SpanElementName SpanKind = iota
	SpanElementEnd
	SpanAttrName
	SpanAttrValue
	SpanText
	SpanComment
	SpanPITarget
	SpanPIContent
)

type spanKey struct {
	kind SpanKind
	node xmltree.Handle
}

// SpanMap is the side-map of spans.md §4.11 describes: spans are
// recorded out-of-band rather than on the node itself, so that
// tracking can be skipped entirely (zero overhead) when a caller has
// no use for source positions.
type SpanMap struct {
	m map[spanKey]Span
}

func newSpanMap() *SpanMap { return &SpanMap{m: make(map[spanKey]Span)} }

func (s *SpanMap) set(kind SpanKind, h xmltree.Handle, span Span) {
	if s == nil {
		return
	}
	s.m[spanKey{kind, h}] = span
}

// Span returns the recorded span for (kind, node), if any.
func (s *SpanMap) Span(kind SpanKind, h xmltree.Handle) (Span, bool) {
	if s == nil {
		return Span{}, false
	}
	sp, ok := s.m[spanKey{kind, h}]
	return sp, ok
}
