package service

import (
	"sort"

	"deyimci/internal/core/match"
	"deyimci/internal/services/detect/domain"
)

// resolveOverlaps keeps at most one idiomatic candidate per overlapping group.
// Preference order: higher probability, longer span, lower start, lower idiom id.
// Losers are dropped entirely, not demoted to literal
func resolveOverlaps(xs []domain.ScoredCandidate) []domain.ScoredCandidate {
	if len(xs) <= 1 {
		return xs
	}

	ranked := append([]domain.ScoredCandidate(nil), xs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Probability != b.Probability {
			return a.Probability > b.Probability
		}
		al := a.Candidate.End - a.Candidate.Start
		bl := b.Candidate.End - b.Candidate.Start
		if al != bl {
			return al > bl
		}
		if a.Candidate.Start != b.Candidate.Start {
			return a.Candidate.Start < b.Candidate.Start
		}
		return a.Candidate.EntryID < b.Candidate.EntryID
	})

	kept := make([]domain.ScoredCandidate, 0, len(ranked))
	for _, sc := range ranked {
		clash := false
		for _, k := range kept {
			if match.Overlaps(sc.Candidate, k.Candidate) {
				clash = true
				break
			}
		}
		if !clash {
			kept = append(kept, sc)
		}
	}
	return kept
}

// sortDetections orders the final output by start offset, then idiom id
func sortDetections(out []domain.Detection) {
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TokenStart != out[j].TokenStart {
			return out[i].TokenStart < out[j].TokenStart
		}
		return out[i].IdiomID < out[j].IdiomID
	})
}
