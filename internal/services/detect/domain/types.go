// Package domain defines the core types and interfaces for the detect service
package domain

import (
	"time"

	"deyimci/internal/core/match"
)

// Options configures one detection run
type Options struct {
	// Threshold is the idiomatic decision cutoff, must be in (0,1)
	Threshold float64
	// Mode selects the matching strategy
	Mode match.Mode
	// ClassifyTimeout bounds a single classifier call, 0 means no bound
	ClassifyTimeout time.Duration
}

// ScoredCandidate is a matched span with its classifier probability attached
type ScoredCandidate struct {
	Candidate match.Candidate
	// CharStart and CharEnd are rune offsets into the source text
	CharStart int
	CharEnd   int
	// Probability is the idiomatic usage score in [0,1]
	Probability float64
}

// Detection is the final output unit, immutable once emitted
type Detection struct {
	IdiomID int    `json:"idiom_id"`
	Surface string `json:"surface"`
	// Definition is the lexicon gloss for the idiom, may be empty
	Definition string `json:"definition,omitempty"`
	// TokenStart and TokenEnd are token offsets, half open
	TokenStart int `json:"token_start"`
	TokenEnd   int `json:"token_end"`
	// CharStart and CharEnd are rune offsets into the source text
	CharStart int `json:"char_start"`
	CharEnd   int `json:"char_end"`
	// Matched is the folded token span as it appeared in the text
	Matched []string `json:"matched"`
	// Quality is "exact" or "windowed"
	Quality string `json:"quality"`
	// Gaps is the number of inserted tokens tolerated by a windowed match
	Gaps        int     `json:"gaps,omitempty"`
	Probability float64 `json:"probability"`
	IsIdiomatic bool    `json:"is_idiomatic"`
}

// Input controls a corpus batch run
type Input struct {
	Threshold float64
	Mode      match.Mode
	PageSize  int
	Workers   int
	DryRun    bool
}

// RunStats summarizes a corpus batch run
type RunStats struct {
	RunID      string
	Texts      int
	Detections int
	Idiomatic  int
	// Failures counts texts skipped after a classification failure
	Failures int
	Elapsed  time.Duration
}

// CorpusText is one stored input text
type CorpusText struct {
	ID        string
	Body      string
	CreatedAt time.Time
}

// AfterKey is the keyset cursor for corpus paging
type AfterKey struct {
	ID string
}

// ListInput pages through the corpus in id order
type ListInput struct {
	After AfterKey
	Limit int
}

// DetectionWrite is the persisted form of one detection
type DetectionWrite struct {
	RunID       string
	TextID      string
	IdiomID     int
	CharStart   int
	CharEnd     int
	Probability float64
	IsIdiomatic bool
	Mode        string
	Threshold   float64
	CreatedAt   time.Time
}
