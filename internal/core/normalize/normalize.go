// Package normalize provides a deterministic Turkish text normalizer and tokenizer
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Turkish aware lowercasing (I -> ı, İ -> i)
// 4 Remove zero-width and format characters
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

// pool of fresh transformer chains
// Turkish casing is locale sensitive, a generic case fold would map
// dotless I wrong, so the chain uses cases.Lower with the tr locale
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Lower(language.Turkish),
			runes.Remove(runes.In(unicode.Cf)), // strip ZWJ ZWNJ FEFF etc
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Fold returns the normalized comparison form of s
func (n *Normalizer) Fold(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return ns
}

// FoldTokens folds every token of a whitespace separated phrase
func (n *Normalizer) FoldTokens(phrase string) []string {
	fields := strings.Fields(phrase)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if nf := n.Fold(f); nf != "" {
			out = append(out, nf)
		}
	}
	return out
}
