// Package module exposes the embedded lexicon pack as a read-only API module
package module

import (
	"net/http"

	"deyimci/internal/core/lexicon"
	modkit "deyimci/internal/modkit"
	phttp "deyimci/internal/platform/net/http"

	lexhttp "deyimci/internal/services/api/lexicon/http"
)

// Module implements the module interface for lexicon endpoints
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(phttp.Router) phttp.Router
	register  func(phttp.Router)

	lex *lexicon.Lexicon
}

// New constructs the lexicon module over a loaded pack
func New(deps modkit.Deps, lex *lexicon.Lexicon, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("lexicon"),
		modkit.WithPrefix("/lexicon"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		lex:       lex,
	}

	external := b.Register
	m.register = func(r phttp.Router) {
		lexhttp.Register(r, lexhttp.Deps{Lex: lex})
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes mounts the lexicon routes under the module prefix
func (m *Module) MountRoutes(r phttp.Router) {
	r.Route(m.prefix, func(rr phttp.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		m.register(rr)
	})
}

// Name implements the module interface
func (m *Module) Name() string { return m.name }

// Ports exposes the shared lexicon so other modules can resolve entries
func (m *Module) Ports() any { return m.lex }
