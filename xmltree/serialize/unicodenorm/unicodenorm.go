// Package unicodenorm adapts golang.org/x/text/unicode/norm to the
// serialize.Normalizer interface, the concrete collaborator for the
// ICU-equivalent normalization the core package leaves pluggable.
package unicodenorm

import "golang.org/x/text/unicode/norm"

// Form wraps one of the four Unicode normalization forms
// (norm.NFC/NFD/NFKC/NFKD) as a serialize.Normalizer.
type Form struct {
	form norm.Form
}

// NFC normalizes to Normalization Form C (canonical composition), the
// form XML recommends for interchange.
func NFC() Form { return Form{norm.NFC} }

// NFD normalizes to Normalization Form D (canonical decomposition).
func NFD() Form { return Form{norm.NFD} }

// NFKC normalizes to Normalization Form KC (compatibility composition).
func NFKC() Form { return Form{norm.NFKC} }

// NFKD normalizes to Normalization Form KD (compatibility decomposition).
func NFKD() Form { return Form{norm.NFKD} }

// Normalize implements serialize.Normalizer.
func (f Form) Normalize(s string) string { return f.form.String(s) }
