package serialize

// Normalizer lets a caller plug in a Unicode normalization form before
// text/attribute content is escaped and written. The default, used
// when no Normalizer is supplied, performs no normalization at all --
// ICU-equivalent normalization is pluggable, not built in, per the
// package's own non-goals; see the unicodenorm subpackage for an
// golang.org/x/text/unicode/norm-backed implementation.
//
// Grounded on original_source/src/output/mod.rs's Normalizer trait.
type Normalizer interface {
	Normalize(s string) string
}

// NoopNormalizer returns its input unchanged.
type NoopNormalizer struct{}

// Normalize implements Normalizer by returning s unchanged.
func (NoopNormalizer) Normalize(s string) string { return s }
