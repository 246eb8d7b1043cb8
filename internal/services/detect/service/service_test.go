package service

import (
	"context"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"deyimci/internal/core/lexicon"
	"deyimci/internal/core/match"
	"deyimci/internal/core/normalize"
	perr "deyimci/internal/platform/errors"
	"deyimci/internal/services/detect/domain"
)

// scoreFunc adapts a plain function to domain.ClassifierPort
type scoreFunc func(ctx context.Context, text string, start, end int) (float64, error)

func (f scoreFunc) Score(ctx context.Context, text string, start, end int) (float64, error) {
	return f(ctx, text, start, end)
}

func constScore(p float64) scoreFunc {
	return func(context.Context, string, int, int) (float64, error) { return p, nil }
}

func testLexicon(t *testing.T, surfaces ...string) *lexicon.Lexicon {
	t.Helper()
	n := normalize.New()
	entries := make([]*lexicon.Entry, 0, len(surfaces))
	for i, s := range surfaces {
		entries = append(entries, &lexicon.Entry{
			ID:      i + 1,
			Surface: s,
			Tokens:  n.FoldTokens(s),
		})
	}
	lex, err := lexicon.New(entries)
	if err != nil {
		t.Fatalf("lexicon.New: %v", err)
	}
	return lex
}

func TestDetect_SingleExactMatch(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "eli kulağında")
	svc := New(lex, constScore(0.82), Config{})

	got, err := svc.Detect(context.Background(), "Bugün yine eli kulağında oldu.", domain.Options{
		Threshold: 0.6,
		Mode:      match.Exact(),
	})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	want := []domain.Detection{{
		IdiomID:     1,
		Surface:     "eli kulağında",
		TokenStart:  2,
		TokenEnd:    4,
		CharStart:   11,
		CharEnd:     24,
		Matched:     []string{"eli", "kulağında"},
		Quality:     "exact",
		Probability: 0.82,
		IsIdiomatic: true,
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("detections mismatch\ngot  %#v\nwant %#v", got, want)
	}
}

func TestDetect_BelowThresholdStaysLiteral(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "eli kulağında")
	svc := New(lex, constScore(0.3), Config{})

	got, err := svc.Detect(context.Background(), "eli kulağında", domain.Options{Threshold: 0.6})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 literal detection, got %d", len(got))
	}
	if got[0].IsIdiomatic {
		t.Fatalf("probability 0.3 under threshold 0.6 must not be idiomatic")
	}
	if got[0].Probability != 0.3 {
		t.Fatalf("probability = %v, want 0.3", got[0].Probability)
	}
}

func TestDetect_ThresholdIsInclusive(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "eli kulağında")
	svc := New(lex, constScore(0.6), Config{})

	got, err := svc.Detect(context.Background(), "eli kulağında", domain.Options{Threshold: 0.6})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(got) != 1 || !got[0].IsIdiomatic {
		t.Fatalf("probability equal to the threshold must count as idiomatic, got %#v", got)
	}
}

func TestDetect_ThresholdOutsideOpenInterval(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "eli kulağında")
	svc := New(lex, constScore(0.8), Config{})

	for _, th := range []float64{0, 1, -0.2, 1.5} {
		_, err := svc.Detect(context.Background(), "eli kulağında", domain.Options{Threshold: th})
		if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("threshold %v: want invalid argument, got %v", th, err)
		}
	}
}

func TestDetect_EmptyText(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "eli kulağında")
	calls := int32(0)
	svc := New(lex, scoreFunc(func(context.Context, string, int, int) (float64, error) {
		atomic.AddInt32(&calls, 1)
		return 0.9, nil
	}), Config{})

	for _, text := range []string{"", "   ", "...!?"} {
		got, err := svc.Detect(context.Background(), text, domain.Options{Threshold: 0.6})
		if err != nil {
			t.Fatalf("Detect(%q): %v", text, err)
		}
		if len(got) != 0 {
			t.Fatalf("Detect(%q) = %#v, want empty", text, got)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("classifier called %d times for empty inputs", n)
	}
}

func TestDetect_OverlapKeepsHighestProbability(t *testing.T) {
	t.Parallel()

	// "göz kulak" spans tokens [0,2), "kulak asmak" spans [1,3)
	lex := testLexicon(t, "göz kulak", "kulak asmak")
	svc := New(lex, scoreFunc(func(_ context.Context, _ string, start, _ int) (float64, error) {
		if start == 0 {
			return 0.9, nil
		}
		return 0.7, nil
	}), Config{})

	got, err := svc.Detect(context.Background(), "göz kulak asmak", domain.Options{Threshold: 0.6})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("loser of an idiomatic overlap must be dropped entirely, got %#v", got)
	}
	if got[0].IdiomID != 1 || got[0].Probability != 0.9 {
		t.Fatalf("wrong winner: %#v", got[0])
	}
}

func TestDetect_OverlapTieFavorsLongerSpan(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "el ele", "el ele vermek")
	svc := New(lex, constScore(0.8), Config{})

	got, err := svc.Detect(context.Background(), "el ele vermek", domain.Options{Threshold: 0.6})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 detection, got %#v", got)
	}
	if got[0].IdiomID != 2 || got[0].TokenEnd-got[0].TokenStart != 3 {
		t.Fatalf("equal probabilities must prefer the longer span, got %#v", got[0])
	}
}

func TestDetect_LiteralOverlapsAreAllKept(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "göz kulak", "kulak asmak")
	svc := New(lex, constScore(0.2), Config{})

	got, err := svc.Detect(context.Background(), "göz kulak asmak", domain.Options{Threshold: 0.6})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("overlap resolution only applies to idiomatic spans, got %#v", got)
	}
	for _, d := range got {
		if d.IsIdiomatic {
			t.Fatalf("unexpected idiomatic detection at probability 0.2: %#v", d)
		}
	}
}

func TestDetect_Deterministic(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "göz kulak", "kulak asmak", "eli kulağında")
	svc := New(lex, constScore(0.8), Config{})
	text := "göz kulak asmak derken eli kulağında oldu"

	first, err := svc.Detect(context.Background(), text, domain.Options{Threshold: 0.6})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := svc.Detect(context.Background(), text, domain.Options{Threshold: 0.6})
		if err != nil {
			t.Fatalf("Detect: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs\nfirst %#v\nagain %#v", i, first, again)
		}
	}
}

func TestDetect_OneClassifierCallPerCandidate(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "göz kulak", "kulak asmak")
	calls := int32(0)
	svc := New(lex, scoreFunc(func(context.Context, string, int, int) (float64, error) {
		atomic.AddInt32(&calls, 1)
		return 0.8, nil
	}), Config{})

	if _, err := svc.Detect(context.Background(), "göz kulak asmak", domain.Options{Threshold: 0.6}); err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("classifier called %d times for 2 candidates", n)
	}
}

func TestDetect_ClassifierFailureAbortsCall(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "göz kulak", "kulak asmak")
	calls := int32(0)
	svc := New(lex, scoreFunc(func(context.Context, string, int, int) (float64, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return 0, perr.Classificationf("model unavailable")
		}
		return 0.8, nil
	}), Config{})

	got, err := svc.Detect(context.Background(), "göz kulak asmak", domain.Options{Threshold: 0.6})
	if !perr.IsCode(err, perr.ErrorCodeClassification) {
		t.Fatalf("want classification error, got %v", err)
	}
	if got != nil {
		t.Fatalf("no partial results on failure, got %#v", got)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("scoring must stop at the first failure, classifier called %d times", n)
	}
}

func TestDetect_ProbabilityOutOfRange(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "eli kulağında")
	svc := New(lex, constScore(1.7), Config{})

	_, err := svc.Detect(context.Background(), "eli kulağında", domain.Options{Threshold: 0.6})
	if !perr.IsCode(err, perr.ErrorCodeClassification) {
		t.Fatalf("want classification error for probability 1.7, got %v", err)
	}
}

func TestDetect_ClassifyTimeout(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "eli kulağında")
	svc := New(lex, scoreFunc(func(ctx context.Context, _ string, _, _ int) (float64, error) {
		<-ctx.Done()
		return 0, perr.Wrapf(ctx.Err(), perr.ErrorCodeClassification, "scoring timed out")
	}), Config{})

	_, err := svc.Detect(context.Background(), "eli kulağında", domain.Options{
		Threshold:       0.6,
		ClassifyTimeout: 10 * time.Millisecond,
	})
	if !perr.IsCode(err, perr.ErrorCodeClassification) {
		t.Fatalf("want classification error on timeout, got %v", err)
	}
}

func TestResolve_ThresholdMonotonicity(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "göz kulak", "eli kulağında")
	probs := map[int]float64{1: 0.55, 2: 0.85}
	svc := New(lex, scoreFunc(func(_ context.Context, _ string, start, _ int) (float64, error) {
		if start == 0 {
			return probs[1], nil
		}
		return probs[2], nil
	}), Config{})

	scored, err := svc.ScoreCandidates(context.Background(),
		"göz kulak ol dedi ama eli kulağında", match.Exact(), domain.Options{})
	if err != nil {
		t.Fatalf("ScoreCandidates: %v", err)
	}

	idiomaticAt := func(th float64) map[int]bool {
		set := map[int]bool{}
		for _, d := range svc.Resolve(scored, th) {
			if d.IsIdiomatic {
				set[d.IdiomID] = true
			}
		}
		return set
	}

	lo, hi := idiomaticAt(0.5), idiomaticAt(0.8)
	for id := range hi {
		if !lo[id] {
			t.Fatalf("idiom %d idiomatic at 0.8 but not at 0.5", id)
		}
	}
	if len(lo) != 2 || len(hi) != 1 {
		t.Fatalf("idiomatic counts lo=%d hi=%d, want 2 and 1", len(lo), len(hi))
	}
}

func TestDetect_OutputSortedByStart(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "eli kulağında", "göz kulak")
	svc := New(lex, constScore(0.8), Config{})

	got, err := svc.Detect(context.Background(),
		"göz kulak olun çünkü eli kulağında", domain.Options{Threshold: 0.6})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 detections, got %#v", got)
	}
	if got[0].TokenStart > got[1].TokenStart {
		t.Fatalf("output not ordered by start: %#v", got)
	}
}

func TestDetect_WindowedMode(t *testing.T) {
	t.Parallel()

	lex := testLexicon(t, "eli kulağında")
	svc := New(lex, constScore(0.9), Config{})

	got, err := svc.Detect(context.Background(), "eli hep kulağında", domain.Options{
		Threshold: 0.6,
		Mode:      match.TokenWindow(1),
	})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 windowed detection, got %#v", got)
	}
	if got[0].Quality != "windowed" || got[0].Gaps != 1 {
		t.Fatalf("quality/gaps mismatch: %#v", got[0])
	}
}
