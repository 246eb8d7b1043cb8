// Package logger wraps zerolog with a lazily built process-wide root and
// small helpers for component and request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"deyimci/internal/platform/config/raw"
	"deyimci/internal/core/version"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project-wide logging type - today it's just a zerolog.Logger, but it can be swapped later
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	// Level is a zerolog level name, unknown values fall back to debug
	Level   string
	Format  string
	Service string
	Writer  io.Writer
	// SampleEvery emits one of every N events when > 1
	SampleEvery int
	WithCaller  bool
}

// FromEnv builds Options using the logging-free raw config view (no cycles)
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:       rc.Get("LEVEL", "debug"),
		Format:      strings.ToLower(rc.Get("FORMAT", "console")),
		Service:     rc.Get("SERVICE", ""),
		SampleEvery: rc.GetInt("SAMPLE_EVERY", 0),
		WithCaller:  rc.GetBool("CALLER", false),
	}
}

var (
	once   sync.Once
	root   atomic.Pointer[zerolog.Logger]
	inited atomic.Bool
)

// Get returns the process-wide root logger, initializing it from the
// environment on first use
func Get() *Logger {
	if !inited.Load() {
		Init(FromEnv())
	}
	return root.Load()
}

// Init builds the root logger, later calls are no-ops
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opt.Level)))
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.DebugLevel
		}

		var w io.Writer = os.Stdout
		if opt.Writer != nil {
			w = opt.Writer
		}
		if opt.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		lctx := zerolog.New(w).Level(lvl).With().
			Timestamp().
			Str("version", version.Info().Version)
		if opt.Service != "" {
			lctx = lctx.Str("service", opt.Service)
		}

		log := lctx.Logger()
		if opt.WithCaller {
			log = log.With().Caller().Logger()
		}
		if opt.SampleEvery > 1 {
			log = log.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
		}

		root.Store(&log)
		inited.Store(true)
	})
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}

// C returns a child logger carrying the chi request id from ctx, if any
func C(ctx context.Context) *Logger {
	if reqID := chimw.GetReqID(ctx); reqID != "" {
		ll := Get().With().Str("request_id", reqID).Logger()
		return &ll
	}
	return Get()
}
