// Package service implements the detection pipeline
package service

import (
	"context"

	"deyimci/internal/core/lexicon"
	"deyimci/internal/core/match"
	"deyimci/internal/core/normalize"
	perr "deyimci/internal/platform/errors"
	"deyimci/internal/services/detect/domain"
)

// Config for the detect service
type Config struct {
	// MaxGap is the default gap budget for token-window mode
	MaxGap int
}

// Service implements domain.DetectorPort
type Service struct {
	Lex        *lexicon.Lexicon
	Classifier domain.ClassifierPort

	norm    *normalize.Normalizer
	matcher *match.Matcher
	cfg     Config
}

// New constructs a detect service over a shared immutable lexicon
func New(lex *lexicon.Lexicon, classifier domain.ClassifierPort, cfg Config) *Service {
	return &Service{
		Lex:        lex,
		Classifier: classifier,
		norm:       normalize.New(),
		matcher:    match.New(lex),
		cfg:        cfg,
	}
}

// Detect runs tokenize, match, classify, and overlap resolution for one text.
// Empty text yields an empty result, not an error
func (s *Service) Detect(ctx context.Context, text string, opts domain.Options) ([]domain.Detection, error) {
	if err := checkThreshold(opts.Threshold); err != nil {
		return nil, err
	}
	scored, err := s.ScoreCandidates(ctx, text, opts.Mode, opts)
	if err != nil {
		return nil, err
	}
	return s.Resolve(scored, opts.Threshold), nil
}

// ScoreCandidates tokenizes, matches, and scores every candidate exactly once.
// The first classifier failure aborts the call, partial scores are never returned
func (s *Service) ScoreCandidates(
	ctx context.Context,
	text string,
	mode match.Mode,
	opts domain.Options,
) ([]domain.ScoredCandidate, error) {
	toks := s.norm.Tokenize(text)
	if len(toks) == 0 {
		return nil, nil
	}

	cands, err := s.matcher.FindCandidates(toks, mode)
	if err != nil {
		return nil, err
	}

	scored := make([]domain.ScoredCandidate, 0, len(cands))
	for _, c := range cands {
		charStart := toks[c.Start].Start
		charEnd := toks[c.End-1].End

		p, err := s.score(ctx, text, charStart, charEnd, opts)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeClassification,
				"detect: scoring idiom %d at tokens [%d,%d)", c.EntryID, c.Start, c.End)
		}
		if p < 0 || p > 1 {
			return nil, perr.Classificationf(
				"detect: classifier returned %v for idiom %d, want [0,1]", p, c.EntryID)
		}
		scored = append(scored, domain.ScoredCandidate{
			Candidate:   c,
			CharStart:   charStart,
			CharEnd:     charEnd,
			Probability: p,
		})
	}
	return scored, nil
}

func (s *Service) score(ctx context.Context, text string, start, end int, opts domain.Options) (float64, error) {
	if opts.ClassifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ClassifyTimeout)
		defer cancel()
	}
	return s.Classifier.Score(ctx, text, start, end)
}

// Resolve applies the threshold and drops losing overlapped idiomatic spans.
// Output is ordered by start offset, then idiom id
func (s *Service) Resolve(scored []domain.ScoredCandidate, threshold float64) []domain.Detection {
	if len(scored) == 0 {
		return nil
	}

	idiomatic := make([]domain.ScoredCandidate, 0, len(scored))
	literal := make([]domain.ScoredCandidate, 0, len(scored))
	for _, sc := range scored {
		if sc.Probability >= threshold {
			idiomatic = append(idiomatic, sc)
		} else {
			literal = append(literal, sc)
		}
	}

	kept := resolveOverlaps(idiomatic)

	out := make([]domain.Detection, 0, len(kept)+len(literal))
	for _, sc := range kept {
		out = append(out, s.toDetection(sc, true))
	}
	for _, sc := range literal {
		out = append(out, s.toDetection(sc, false))
	}
	sortDetections(out)
	return out
}

func (s *Service) toDetection(sc domain.ScoredCandidate, idiomatic bool) domain.Detection {
	surface, definition := "", ""
	if e, ok := s.Lex.ByID(sc.Candidate.EntryID); ok {
		surface = e.Surface
		definition = e.Definition
	}
	return domain.Detection{
		IdiomID:     sc.Candidate.EntryID,
		Surface:     surface,
		Definition:  definition,
		TokenStart:  sc.Candidate.Start,
		TokenEnd:    sc.Candidate.End,
		CharStart:   sc.CharStart,
		CharEnd:     sc.CharEnd,
		Matched:     sc.Candidate.Matched,
		Quality:     string(sc.Candidate.Quality),
		Gaps:        sc.Candidate.Gaps,
		Probability: sc.Probability,
		IsIdiomatic: idiomatic,
	}
}

func checkThreshold(t float64) error {
	if t <= 0 || t >= 1 {
		return perr.InvalidArgf("detect: threshold %v outside (0,1)", t)
	}
	return nil
}
