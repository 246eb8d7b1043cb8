// Package store exposes the storage backends behind narrow seams so that
// repos and services never import a driver package directly
package store

import (
	"context"
	"errors"
	"fmt"

	"deyimci/internal/platform/logger"
)

// Row is the single-row scan contract
type Row interface {
	Scan(dest ...any) error
}

// Rows is the result set contract, iteration plus scan
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports the outcome of a write
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repos code against
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner adds transactional execution on top of RowQuerier
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam for batch writes and reads
type Clickhouse interface {
	Insert(ctx context.Context, table string, data any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Pinger is implemented by seams that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Store holds whichever backends cfg enabled, a disabled backend stays nil.
// The zero Store is usable and does nothing
type Store struct {
	// Log feeds the query tracer and subclient logging
	Log logger.Logger

	// PG is nil unless postgres was enabled
	PG TxRunner

	// CH is nil unless clickhouse was enabled
	CH Clickhouse
}

// Open applies opts then dials every backend cfg enables.
// Failure on any backend aborts the whole open
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// a zero logger becomes a usable zerolog instance here so
	// subclients never have to nil check
	s.Log = s.Log.With().Logger()

	if cfg.PG.Enabled {
		pgc, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = pgc
	}
	if cfg.CH.Enabled {
		chc, err := openCH(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s.CH = chc
	}
	return s, nil
}

// Guard pings every configured seam and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}

	seams := []struct {
		name string
		v    any
	}{
		{"pg", s.PG},
		{"ch", s.CH},
	}

	var errs []error
	for _, sm := range seams {
		p, ok := sm.v.(Pinger)
		if !ok || p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sm.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close shuts down each live backend and joins the errors, nil seams are skipped
func (s *Store) Close(ctx context.Context) error {
	var errs []error
	if s.CH != nil {
		if err := s.CH.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
