package module

import (
	"time"

	"deyimci/internal/platform/config"
)

// Options tune the detect module, zero values defer to config
type Options struct {
	Threshold       float64
	MaxGap          int
	PageSize        int
	Workers         int
	ClassifyTimeout time.Duration
	DryRun          bool
}

// FromConfig reads DETECT_ prefixed settings with defaults
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("DETECT_")
	return Options{
		Threshold:       c.MayFloat("THRESHOLD", 0.6),
		MaxGap:          c.MayInt("MAX_GAP", 3),
		PageSize:        c.MayInt("PAGE_SIZE", 500),
		Workers:         c.MayInt("WORKERS", 4),
		ClassifyTimeout: c.MayDuration("CLASSIFY_TIMEOUT", 30*time.Second),
	}
}
