// Package domain defines the evaluation harness types
package domain

import (
	"context"
	"time"

	"deyimci/internal/core/match"
	detectdomain "deyimci/internal/services/detect/domain"
)

// GoldSpan is one annotated idiomatic span in a labeled example
type GoldSpan struct {
	IdiomID int `json:"idiom_id"`
	// CharStart and CharEnd are rune offsets, half open
	CharStart int `json:"char_start"`
	CharEnd   int `json:"char_end"`
}

// LabeledExample pairs a text with its gold idiomatic spans
type LabeledExample struct {
	ID   string     `json:"id"`
	Text string     `json:"text"`
	Gold []GoldSpan `json:"gold"`
}

// Metrics summarizes prediction quality at one threshold
type Metrics struct {
	Threshold float64 `json:"threshold"`
	TP        int     `json:"tp"`
	FP        int     `json:"fp"`
	FN        int     `json:"fn"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Input configures one evaluation pass
type Input struct {
	Thresholds []float64
	Mode       match.Mode
	Workers    int
	// ClassifyTimeout bounds each classifier call, 0 means no bound
	ClassifyTimeout time.Duration
}

// Report is the result of a sweep, one Metrics row per threshold
type Report struct {
	RunID    string
	Examples int
	Rows     []Metrics
	Elapsed  time.Duration
}

// EvaluatorPort runs labeled examples through the detector
type EvaluatorPort interface {
	Sweep(ctx context.Context, examples []LabeledExample, in Input) (Report, error)
}

// ExampleReaderPort loads a labeled example set
type ExampleReaderPort interface {
	List(ctx context.Context, limit int) ([]LabeledExample, error)
}

// MetricsWriterPort records sweep rows for regression tracking
type MetricsWriterPort interface {
	WriteMetrics(ctx context.Context, report Report, mode string) error
}

// Ports are dependencies injected into the eval module
type Ports struct {
	Detector detectdomain.DetectorPort // required
}
