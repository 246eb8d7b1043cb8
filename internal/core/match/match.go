package match

import (
	"deyimci/internal/core/lexicon"
	"deyimci/internal/core/normalize"
	perr "deyimci/internal/platform/errors"
)

// Quality tags how a candidate was found
type Quality string

const (
	// QualityExact means the folded tokens matched contiguously
	QualityExact Quality = "exact"
	// QualityWindowed means the match tolerated inserted tokens
	QualityWindowed Quality = "windowed"
)

// Candidate is a hypothesis that an idiom occurs in the text
// Start and End are token offsets, half open
type Candidate struct {
	EntryID int
	Start   int
	End     int
	Matched []string
	Quality Quality
	Gaps    int
}

// Matcher scans tokenized text against a shared immutable lexicon
type Matcher struct {
	lex *lexicon.Lexicon
}

// New constructs a Matcher over lex
func New(lex *lexicon.Lexicon) *Matcher { return &Matcher{lex: lex} }

// FindCandidates returns every candidate span for the given mode.
// Order is deterministic: ascending start offset, then ascending idiom id.
// Empty input yields an empty sequence, not an error
func (m *Matcher) FindCandidates(toks []normalize.Token, mode Mode) ([]Candidate, error) {
	if len(toks) == 0 {
		return nil, nil
	}
	norms := normalize.Norms(toks)

	var out []Candidate
	for i := range norms {
		bucket := m.lex.LookupByFirstToken(norms[i])
		for _, e := range bucket {
			var c Candidate
			var ok bool
			if mode.IsWindowed() {
				// a window trivially matches single tokens everywhere,
				// length 1 entries are exact-only by policy
				if e.Len() < 2 {
					continue
				}
				c, ok = windowAt(e, norms, i, mode.MaxGap())
			} else {
				c, ok = exactAt(e, norms, i)
			}
			if !ok {
				continue
			}
			if c.Start < 0 || c.Start >= c.End || c.End > len(toks) {
				return nil, perr.InvalidSpanf(
					"match: candidate for idiom %d has span [%d,%d) outside %d tokens",
					c.EntryID, c.Start, c.End, len(toks))
			}
			out = append(out, c)
		}
	}
	return out, nil
}

// exactAt matches e's folded tokens contiguously at position i
func exactAt(e *lexicon.Entry, norms []string, i int) (Candidate, bool) {
	l := e.Len()
	if i+l > len(norms) {
		return Candidate{}, false
	}
	for j := 1; j < l; j++ {
		if norms[i+j] != e.Tokens[j] {
			return Candidate{}, false
		}
	}
	return Candidate{
		EntryID: e.ID,
		Start:   i,
		End:     i + l,
		Matched: norms[i : i+l],
		Quality: QualityExact,
	}, true
}

// windowAt matches e's tokens in order starting at i, allowing up to
// maxGap extra tokens inside the window. The earliest continuation is
// taken at each step, so the span is the tightest left anchored match
func windowAt(e *lexicon.Entry, norms []string, i, maxGap int) (Candidate, bool) {
	l := e.Len()
	limit := i + l + maxGap
	if limit > len(norms) {
		limit = len(norms)
	}

	pos := i + 1
	for j := 1; j < l; j++ {
		found := -1
		for ; pos < limit; pos++ {
			if norms[pos] == e.Tokens[j] {
				found = pos
				break
			}
		}
		if found < 0 {
			return Candidate{}, false
		}
		pos = found + 1
	}

	end := pos
	gaps := (end - i) - l
	if gaps > maxGap {
		return Candidate{}, false
	}
	return Candidate{
		EntryID: e.ID,
		Start:   i,
		End:     end,
		Matched: norms[i:end],
		Quality: QualityWindowed,
		Gaps:    gaps,
	}, true
}

// Overlaps reports whether two candidates share at least one token index
func Overlaps(a, b Candidate) bool {
	return a.Start < b.End && b.Start < a.End
}
