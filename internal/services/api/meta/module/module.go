// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "deyimci/internal/modkit"
	phttp "deyimci/internal/platform/net/http"

	metahttp "deyimci/internal/services/api/meta/http"
)

// Module implements the module interface for meta endpoints
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(phttp.Router) phttp.Router
	register  func(phttp.Router)

	startedAt time.Time
}

// Deps carries optional readiness probes alongside the shared module deps
type Deps struct {
	modkit.Deps
	PG any
	CH any
}

// New constructs a meta module with the provided dependencies and options
func New(deps Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		deps:      deps.Deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		startedAt: time.Now(),
	}

	external := b.Register
	m.register = func(r phttp.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: "deyimci-api",
			StartedAt:   m.startedAt,
			PG:          deps.PG,
			CH:          deps.CH,
		})
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes mounts the meta routes under the module prefix
func (m *Module) MountRoutes(r phttp.Router) {
	r.Route(m.prefix, func(rr phttp.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name implements the module interface
func (m *Module) Name() string { return m.name }

// Ports implements the module interface, meta exposes none
func (m *Module) Ports() any { return nil }
