// Package match finds candidate idiom occurrences in tokenized text
package match

import (
	perr "deyimci/internal/platform/errors"
)

type modeKind uint8

const (
	kindExact modeKind = iota
	kindTokenWindow
)

// Mode selects the matching strategy
// construct with Exact or TokenWindow, the zero value is Exact
type Mode struct {
	kind   modeKind
	maxGap int
}

// Exact matches contiguous runs equal to an idiom's folded form
func Exact() Mode { return Mode{kind: kindExact} }

// TokenWindow matches an idiom's tokens in order with up to maxGap
// extra tokens inserted between them, order is never relaxed
func TokenWindow(maxGap int) Mode {
	if maxGap < 0 {
		maxGap = 0
	}
	return Mode{kind: kindTokenWindow, maxGap: maxGap}
}

// IsWindowed reports whether the mode tolerates gaps
func (m Mode) IsWindowed() bool { return m.kind == kindTokenWindow }

// MaxGap returns the configured gap budget, zero for exact
func (m Mode) MaxGap() int { return m.maxGap }

func (m Mode) String() string {
	if m.kind == kindTokenWindow {
		return "token-window"
	}
	return "exact"
}

// ParseMode maps a mode flag value to a Mode
// maxGap only applies to token-window
func ParseMode(s string, maxGap int) (Mode, error) {
	switch s {
	case "", "exact":
		return Exact(), nil
	case "token-window":
		return TokenWindow(maxGap), nil
	default:
		return Mode{}, perr.InvalidArgf("match: unknown mode %q (want exact or token-window)", s)
	}
}
