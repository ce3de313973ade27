// Package idnorm normalizes and tracks xml:id attribute values while
// parsing a document.
//
// It is adapted from droyo-go-xml's xmlref package, which resolved
// SOAP multi-reference elements by id while reading a document. That
// package tracked ids to dereference href="#id" pointers; this one
// tracks ids to reject duplicates, since xml:id (unlike a SOAP
// multiRef id) must be unique across the whole document. The
// value-normalization rules below follow original_source/src/idmap.rs's
// role in the parser: xml:id values are whitespace-collapsed the same
// way NMTOKENS are before uniqueness is checked.
package idnorm

import "strings"

// Tracker records xml:id values seen so far in a single document
// parse and rejects duplicates.
type Tracker struct {
	seen map[string]bool
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]bool)}
}

// Normalize collapses a raw xml:id attribute value the way an
// NMTOKEN is collapsed: leading/trailing whitespace is trimmed and
// any interior run of whitespace becomes a single space.
func Normalize(raw string) string {
	fields := strings.Fields(raw)
	return strings.Join(fields, " ")
}

// Add normalizes raw and records it, reporting false if an
// equal id has already been recorded (a duplicate xml:id).
func (tr *Tracker) Add(raw string) (normalized string, ok bool) {
	normalized = Normalize(raw)
	if tr.seen[normalized] {
		return normalized, false
	}
	tr.seen[normalized] = true
	return normalized, true
}
