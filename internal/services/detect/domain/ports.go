package domain

import (
	"context"

	"deyimci/internal/core/match"
)

// ClassifierPort scores a span of text as idiomatic vs literal usage
// spanStart and spanEnd are rune offsets into text
type ClassifierPort interface {
	Score(ctx context.Context, text string, spanStart, spanEnd int) (float64, error)
}

// DetectorPort is the single text detection surface
type DetectorPort interface {
	// Detect scores every candidate and resolves overlaps.
	// The first classifier failure aborts the whole call
	Detect(ctx context.Context, text string, opts Options) ([]Detection, error)

	// ScoreCandidates runs matching and scoring without applying a threshold,
	// callers that sweep thresholds score once and resolve per value
	ScoreCandidates(ctx context.Context, text string, mode match.Mode, opts Options) ([]ScoredCandidate, error)

	// Resolve applies a threshold to an already scored set and settles overlaps
	Resolve(scored []ScoredCandidate, threshold float64) []Detection
}

// RunnerPort replays the stored corpus through the detector
type RunnerPort interface {
	RunAll(ctx context.Context, in Input) (RunStats, error)
}

// CorpusReaderPort pages stored texts in id order
type CorpusReaderPort interface {
	List(ctx context.Context, in ListInput) ([]CorpusText, AfterKey, error)
}

// DetectionWriterPort persists detection batches
type DetectionWriterPort interface {
	// WriteBatch inserts rows, returns the count written after dedup
	WriteBatch(ctx context.Context, xs []DetectionWrite) (int, error)
}

// CorpusWriterPort ingests raw texts into the stored corpus
type CorpusWriterPort interface {
	// InsertText stores one text under id, duplicate ids are rejected
	InsertText(ctx context.Context, id, body string) error
}

// Ports are dependencies injected into the detect module
type Ports struct {
	Classifier ClassifierPort // required
}
