package store

import (
	"context"
	"fmt"
	"time"

	chx "deyimci/internal/platform/store/ch"
	"deyimci/internal/platform/store/pg"
)

// boot ping policy for postgres
const (
	pgPingAttempts = 20
	pgPingTimeout  = 3 * time.Second
	pgBackoffStart = 150 * time.Millisecond
	pgBackoffCap   = 2 * time.Second
)

// openPG dials postgres, waits for it to answer pings, and wraps the
// healthy pool in the sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer)
	if err != nil {
		return nil, err
	}

	// ping the pool directly so boot checks never show up as traced queries
	backoff := pgBackoffStart
	for attempt := 1; ; attempt++ {
		toCtx, cancel := context.WithTimeout(ctx, pgPingTimeout)
		err = p.Pool.Ping(toCtx)
		cancel()

		if err == nil {
			a := newPGAdapter(p)
			s.PG = a
			return a, nil
		}
		if attempt == pgPingAttempts {
			p.Close()
			return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempt, err)
		}

		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, pgBackoffCap)
	}
}

// openCH dials clickhouse and wraps it in the columnar seam
func openCH(ctx context.Context, cfg Config) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, App: cfg.AppName, Role: cfg.CH.Role})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
