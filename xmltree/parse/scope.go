package parse

// scope tracks which namespace URIs are currently declared while
// descending into an element, using the same value-copy-with-capped-
// backing-array idiom as droyo-go-xml's xmltree.Scope.pushNS: a child
// inherits its parent's scope by copying the slice header, then grows
// its own copy by appending, which (because the parent's slice is
// capped to its own length) always allocates a fresh backing array
// rather than clobbering a sibling's appended declarations.
//
// Go's encoding/xml.Decoder resolves namespace prefixes to URIs
// itself (see (*Decoder).translate), leaving Name.Space as the
// literal, unresolved prefix text when no declaration is in scope.
// Since this scope is maintained in lockstep with the decoder's own
// namespace stack (same xmlns attributes, same push points), a
// resolved Name.Space value is always a member of the current scope's
// uris; an unresolved one never is. That membership test is how the
// parser tells "prefix resolved to this URI" apart from "decoder left
// the bare prefix text in place" without needing its own tokenizer.
type scope struct {
	uris []string
}

func (s scope) declare(uri string) scope {
	s.uris = append(s.uris, uri)
	return scope{uris: s.uris[:len(s.uris):len(s.uris)]}
}

func (s scope) contains(uri string) bool {
	for i := len(s.uris) - 1; i >= 0; i-- {
		if s.uris[i] == uri {
			return true
		}
	}
	return false
}
