package http

import (
	stdctx "context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "deyimci/internal/platform/errors"
	phttp "deyimci/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(stdctx.Context) error { return f.err }

func newServer(d Deps) *httptest.Server {
	r := phttp.AdaptChi(chi.NewMux())
	r.Route("/meta", func(rr phttp.Router) { Register(rr, d) })
	return httptest.NewServer(r.Mux())
}

func get(t *testing.T, srv *httptest.Server, path string) map[string]any {
	t.Helper()
	resp, err := stdhttp.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("get %s: status %d", path, resp.StatusCode)
	}

	var env map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env["data"].(map[string]any)
}

func TestHealth(t *testing.T) {
	srv := newServer(Deps{ServiceName: "deyimci-api", StartedAt: time.Now()})
	defer srv.Close()

	data := get(t, srv, "/meta/healthz")
	if data["ok"] != true || data["service"] != "deyimci-api" {
		t.Fatalf("health payload mismatch: %v", data)
	}
}

func TestReady_AllOK(t *testing.T) {
	srv := newServer(Deps{PG: fakePinger{}, CH: fakePinger{}})
	defer srv.Close()

	data := get(t, srv, "/meta/readyz")
	if data["status"] != "ok" {
		t.Fatalf("status = %v, want ok", data["status"])
	}
}

func TestReady_FailWins(t *testing.T) {
	srv := newServer(Deps{PG: fakePinger{err: perr.DBf("down")}, CH: fakePinger{}})
	defer srv.Close()

	data := get(t, srv, "/meta/readyz")
	if data["status"] != "fail" {
		t.Fatalf("status = %v, want fail", data["status"])
	}
}

func TestReady_SkippedDegrades(t *testing.T) {
	srv := newServer(Deps{PG: fakePinger{}})
	defer srv.Close()

	data := get(t, srv, "/meta/readyz")
	if data["status"] != "degraded" {
		t.Fatalf("status = %v, want degraded", data["status"])
	}
}

func TestVersion(t *testing.T) {
	srv := newServer(Deps{})
	defer srv.Close()

	data := get(t, srv, "/meta/version")
	if data["version"] != "dev" {
		t.Fatalf("version = %v, want dev", data["version"])
	}
}
