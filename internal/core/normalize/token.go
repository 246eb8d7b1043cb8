package normalize

import "unicode"

// Token is one word of the source text with its rune offsets preserved
type Token struct {
	// Text is the original surface form
	Text string
	// Norm is the folded comparison form
	Norm string
	// Start and End are rune offsets into the source text, half open
	Start int
	End   int
}

// Tokenize splits text into word tokens and records rune offsets
// A word is a maximal run of letters, digits, or underscore
func (n *Normalizer) Tokenize(text string) []Token {
	if text == "" {
		return nil
	}

	var toks []Token
	var cur []rune
	start := -1
	pos := 0

	flush := func(end int) {
		if start < 0 {
			return
		}
		raw := string(cur)
		toks = append(toks, Token{
			Text:  raw,
			Norm:  n.Fold(raw),
			Start: start,
			End:   end,
		})
		cur = cur[:0]
		start = -1
	}

	for _, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = pos
			}
			cur = append(cur, r)
		} else {
			flush(pos)
		}
		pos++
	}
	flush(pos)

	return toks
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Norms projects the folded forms of toks
func Norms(toks []Token) []string {
	out := make([]string, len(toks))
	for i := range toks {
		out[i] = toks[i].Norm
	}
	return out
}
