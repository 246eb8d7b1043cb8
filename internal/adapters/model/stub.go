package model

import (
	"context"
	"hash/fnv"

	perr "deyimci/internal/platform/errors"
)

// Stub is a deterministic classifier for offline runs and tests.
// It honors the same span contract as the real classifier and derives a
// stable probability from the span content, so repeated runs agree
type Stub struct {
	// P is returned for every span when > 0, otherwise the score is hashed
	// from the span text into [0.05, 0.95]
	P float64
}

// Score implements the classifier port without touching the model runtime
func (s Stub) Score(_ context.Context, text string, spanStart, spanEnd int) (float64, error) {
	if text == "" {
		return 0, perr.Classificationf("model: empty scoring input")
	}
	if spanStart < 0 || spanStart >= spanEnd {
		return 0, perr.Classificationf("model: invalid span [%d,%d)", spanStart, spanEnd)
	}
	if s.P > 0 {
		return s.P, nil
	}

	runes := []rune(text)
	if spanEnd > len(runes) {
		return 0, perr.Classificationf("model: span [%d,%d) beyond input of %d runes", spanStart, spanEnd, len(runes))
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(string(runes[spanStart:spanEnd])))
	return 0.05 + 0.9*float64(h.Sum32())/float64(^uint32(0)), nil
}
