package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"deyimci/internal/core/match"
	phttp "deyimci/internal/platform/net/http"
	detectdomain "deyimci/internal/services/detect/domain"

	"github.com/go-chi/chi/v5"

	perr "deyimci/internal/platform/errors"
)

func detectErr() error { return perr.Classificationf("model unavailable") }

// stubDetector records the options it was called with
type stubDetector struct {
	lastOpts detectdomain.Options
	out      []detectdomain.Detection
	err      error
}

func (s *stubDetector) Detect(_ context.Context, _ string, opts detectdomain.Options) ([]detectdomain.Detection, error) {
	s.lastOpts = opts
	return s.out, s.err
}

func (s *stubDetector) ScoreCandidates(context.Context, string, match.Mode, detectdomain.Options) ([]detectdomain.ScoredCandidate, error) {
	return nil, nil
}

func (s *stubDetector) Resolve([]detectdomain.ScoredCandidate, float64) []detectdomain.Detection {
	return nil
}

func newServer(det *stubDetector) *httptest.Server {
	r := phttp.AdaptChi(chi.NewMux())
	r.Route("/detect", func(rr phttp.Router) {
		Register(rr, Deps{
			Detector: det,
			Defaults: Defaults{Threshold: 0.6, MaxGap: 3},
		})
	})
	return httptest.NewServer(r.Mux())
}

func post(t *testing.T, srv *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/detect/", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })

	var env map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp, env
}

func TestDetectEndpoint_Defaults(t *testing.T) {
	det := &stubDetector{out: []detectdomain.Detection{{
		IdiomID: 1, Surface: "eli kulağında", TokenStart: 2, TokenEnd: 4,
		Probability: 0.82, IsIdiomatic: true, Quality: "exact",
	}}}
	srv := newServer(det)
	defer srv.Close()

	resp, env := post(t, srv, `{"text":"Bugün yine eli kulağında oldu."}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", resp.StatusCode, env)
	}
	if det.lastOpts.Threshold != 0.6 {
		t.Fatalf("default threshold not applied: %v", det.lastOpts.Threshold)
	}
	if det.lastOpts.Mode.IsWindowed() {
		t.Fatal("default mode must be exact")
	}

	data := env["data"].(map[string]any)
	if data["mode"] != "exact" || data["count"].(float64) != 1 {
		t.Fatalf("payload mismatch: %v", data)
	}
}

func TestDetectEndpoint_Overrides(t *testing.T) {
	det := &stubDetector{}
	srv := newServer(det)
	defer srv.Close()

	resp, _ := post(t, srv, `{"text":"eli hep kulağında","threshold":0.8,"mode":"token-window","max_gap":1}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if det.lastOpts.Threshold != 0.8 {
		t.Fatalf("threshold override lost: %v", det.lastOpts.Threshold)
	}
	if !det.lastOpts.Mode.IsWindowed() || det.lastOpts.Mode.MaxGap() != 1 {
		t.Fatalf("mode override lost: %v", det.lastOpts.Mode)
	}
}

func TestDetectEndpoint_EmptyResultIsAnArray(t *testing.T) {
	srv := newServer(&stubDetector{})
	defer srv.Close()

	resp, env := post(t, srv, `{"text":"burada deyim yok"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	data := env["data"].(map[string]any)
	if _, ok := data["detections"].([]any); !ok {
		t.Fatalf("detections must serialize as an array, got %v", data["detections"])
	}
}

func TestDetectEndpoint_Validation(t *testing.T) {
	srv := newServer(&stubDetector{})
	defer srv.Close()

	for _, body := range []string{
		`{}`,
		`{"text":"x","threshold":-0.5}`,
		`{"text":"x","threshold":1}`,
		`{"text":"x","mode":"fuzzy"}`,
		`{"text":"x","max_gap":-1}`,
	} {
		resp, env := post(t, srv, body)
		if resp.StatusCode == http.StatusOK {
			t.Fatalf("body %s must be rejected, got %v", body, env)
		}
	}
}

func TestDetectEndpoint_ClassifierFailureMapsToStatus(t *testing.T) {
	det := &stubDetector{err: detectErr()}
	srv := newServer(det)
	defer srv.Close()

	resp, env := post(t, srv, `{"text":"eli kulağında"}`)
	if resp.StatusCode < 500 {
		t.Fatalf("classification failure must map to a 5xx, got %d %v", resp.StatusCode, env)
	}
	if msg, _ := env["error"].(string); msg == "" {
		t.Fatal("missing error message in envelope")
	}
}
