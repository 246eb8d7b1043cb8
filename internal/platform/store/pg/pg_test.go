package pg

import (
	"context"
	"errors"
	"strings"
	"testing"

	"deyimci/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_ParseError(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{URL: "://bad"}, nil)
	if err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestOpen_PoolError(t *testing.T) {
	// rewires a package seam, run serially
	testkit.Serial(t)

	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})

	_, err := Open(context.Background(), Config{URL: "postgres://u:p@h:5432/deyimci?sslmode=disable"}, nil)
	if err == nil || !strings.Contains(err.Error(), "pg: open pool") {
		t.Fatalf("want wrapped pool error, got %v", err)
	}
}

func TestOpen_AppliesConfig(t *testing.T) {
	testkit.Serial(t)

	var gotMax int32
	var gotApp string
	fake := &pgxpool.Pool{} // zero value, never closed
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		gotMax = pc.MaxConns
		gotApp = pc.ConnConfig.RuntimeParams["application_name"]
		return fake, nil
	})

	p, err := Open(context.Background(), Config{
		URL:      "postgres://u:p@h:5432/deyimci?sslmode=disable",
		AppName:  "deyimci-api",
		MaxConns: 4,
		SlowMs:   250,
	}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if gotMax != 4 {
		t.Fatalf("MaxConns not applied: %d", gotMax)
	}
	if gotApp != "deyimci-api" {
		t.Fatalf("application_name not applied: %q", gotApp)
	}
	if p.SlowMs != 250 {
		t.Fatalf("SlowMs mismatch: %d", p.SlowMs)
	}
}

func TestOpen_PoolMutatorRunsAfterConfig(t *testing.T) {
	testkit.Serial(t)

	var gotMin int32
	var gotApp string
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		gotMin = pc.MinConns
		gotApp = pc.ConnConfig.RuntimeParams["application_name"]
		return &pgxpool.Pool{}, nil
	})

	mut := func(pc *pgxpool.Config) {
		pc.MinConns = 2
		pc.ConnConfig.RuntimeParams["application_name"] = "override"
	}

	_, err := Open(context.Background(), Config{
		URL:     "postgres://u:p@h:5432/deyimci?sslmode=disable",
		AppName: "deyimci-api",
	}, nil, mut)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if gotMin != 2 {
		t.Fatalf("mutator not applied: MinConns = %d", gotMin)
	}
	if gotApp != "override" {
		t.Fatalf("mutator must run after Config fields, application_name = %q", gotApp)
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close()

	p = &PG{}
	p.Close()
	p.Close()
}
