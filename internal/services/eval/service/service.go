// Package service implements the evaluation harness
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	perr "deyimci/internal/platform/errors"
	detectdomain "deyimci/internal/services/detect/domain"
	"deyimci/internal/services/eval/domain"

	"github.com/google/uuid"
)

// Service implements domain.EvaluatorPort
type Service struct {
	Det detectdomain.DetectorPort
}

// New constructs the evaluation service over a detector port
func New(det detectdomain.DetectorPort) *Service {
	return &Service{Det: det}
}

// Sweep scores every example once and reapplies each threshold to the
// scored candidate sets. The first classifier failure aborts the sweep
func (s *Service) Sweep(ctx context.Context, examples []domain.LabeledExample, in domain.Input) (domain.Report, error) {
	if len(in.Thresholds) == 0 {
		return domain.Report{}, perr.InvalidArgf("eval: no thresholds given")
	}
	for _, th := range in.Thresholds {
		if th <= 0 || th >= 1 {
			return domain.Report{}, perr.InvalidArgf("eval: threshold %v outside (0,1)", th)
		}
	}
	if in.Workers <= 0 {
		in.Workers = 4
	}

	report := domain.Report{RunID: uuid.NewString(), Examples: len(examples)}
	started := time.Now()

	scored, err := s.scoreAll(ctx, examples, in)
	if err != nil {
		return report, err
	}

	thresholds := append([]float64(nil), in.Thresholds...)
	sort.Float64s(thresholds)

	report.Rows = make([]domain.Metrics, 0, len(thresholds))
	for _, th := range thresholds {
		m := domain.Metrics{Threshold: th}
		for i, ex := range examples {
			tp, fp, fn := tally(s.Det.Resolve(scored[i], th), ex.Gold)
			m.TP += tp
			m.FP += fp
			m.FN += fn
		}
		m.Precision = safeDiv(m.TP, m.TP+m.FP)
		m.Recall = safeDiv(m.TP, m.TP+m.FN)
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		report.Rows = append(report.Rows, m)
	}

	report.Elapsed = time.Since(started)
	return report, nil
}

// scoreAll runs the classifier over every example with a bounded pool,
// merging results by example index
func (s *Service) scoreAll(
	ctx context.Context,
	examples []domain.LabeledExample,
	in domain.Input,
) ([][]detectdomain.ScoredCandidate, error) {
	scored := make([][]detectdomain.ScoredCandidate, len(examples))
	errs := make([]error, len(examples))

	sem := make(chan struct{}, in.Workers)
	wg := sync.WaitGroup{}
	for i := range examples {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			scored[i], errs[i] = s.Det.ScoreCandidates(ctx, examples[i].Text, in.Mode, detectdomain.Options{
				ClassifyTimeout: in.ClassifyTimeout,
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeClassification,
				"eval: scoring example %q", examples[i].ID)
		}
	}
	return scored, nil
}

// tally matches idiomatic predictions against gold spans for one example.
// A prediction hits a gold span when the char ranges overlap and the idiom
// ids agree, each side consumed at most once
func tally(preds []detectdomain.Detection, gold []domain.GoldSpan) (tp, fp, fn int) {
	used := make([]bool, len(gold))
	for _, p := range preds {
		if !p.IsIdiomatic {
			continue
		}
		hit := false
		for gi, g := range gold {
			if used[gi] || g.IdiomID != p.IdiomID {
				continue
			}
			if p.CharStart < g.CharEnd && g.CharStart < p.CharEnd {
				used[gi] = true
				hit = true
				break
			}
		}
		if hit {
			tp++
		} else {
			fp++
		}
	}
	for gi := range gold {
		if !used[gi] {
			fn++
		}
	}
	return tp, fp, fn
}

func safeDiv(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
