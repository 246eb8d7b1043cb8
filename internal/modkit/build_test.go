package modkit

import (
	"net/http"
	"reflect"
	"testing"

	phttp "deyimci/internal/platform/net/http"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()

	if b.Name != "" || b.Prefix != "" {
		t.Fatalf("defaults should be empty, got name=%q prefix=%q", b.Name, b.Prefix)
	}
	if b.Ports != nil || len(b.Mw) != 0 {
		t.Fatalf("unexpected default state: %+v", b)
	}

	// default Subrouter is identity, default Register is a no-op
	var r phttp.Router
	if got := b.Subrouter(r); got != r {
		t.Fatal("default Subrouter should be identity")
	}
	b.Register(r)
}

func TestBuild_OptionsApply(t *testing.T) {
	t.Parallel()

	fnPtr := func(f func(http.Handler) http.Handler) uintptr {
		return reflect.ValueOf(f).Pointer()
	}

	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }
	mid := []func(http.Handler) http.Handler{mwA, mwB}

	type ports struct{ Threshold float64 }
	p := ports{Threshold: 0.6}

	registered := 0
	b := Build(
		WithName("detect"),
		WithPrefix("/detect"),
		WithMiddlewares(mid...),
		WithPorts(p),
		WithRegister(func(phttp.Router) { registered++ }),
	)

	if b.Name != "detect" || b.Prefix != "/detect" {
		t.Fatalf("name/prefix not applied: %+v", b)
	}
	if got, ok := b.Ports.(ports); !ok || got != p {
		t.Fatal("Ports not carried through Build")
	}
	if len(b.Mw) != 2 {
		t.Fatalf("Mw length = %d, want 2", len(b.Mw))
	}

	// Built.Mw must be a copy of the source slice
	mid[0] = func(next http.Handler) http.Handler { return next }
	if fnPtr(b.Mw[0]) != fnPtr(mwA) || fnPtr(b.Mw[1]) != fnPtr(mwB) {
		t.Fatal("Built.Mw aliased the caller's slice")
	}

	var r phttp.Router
	b.Register(r)
	if registered != 1 {
		t.Fatalf("Register invoked %d times, want 1", registered)
	}
}
