// Package module exposes the detection endpoint as an API module
package module

import (
	"net/http"

	modkit "deyimci/internal/modkit"
	phttp "deyimci/internal/platform/net/http"
	detectdomain "deyimci/internal/services/detect/domain"

	detecthttp "deyimci/internal/services/api/detect/http"
)

// Ports consumed by this module, owned by the worker detect module
type Ports struct {
	Detector detectdomain.DetectorPort
}

// Module implements the module interface for the detect endpoint
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(phttp.Router) phttp.Router
	register  func(phttp.Router)
}

// New constructs the API detect module, the detector port is required
func New(deps modkit.Deps, defaults detecthttp.Defaults, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("detect"),
		modkit.WithPrefix("/detect"),
	}, opts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok || ports.Detector == nil {
		panic("api detect module: expected WithPorts(Ports) with a Detector")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
	}

	external := b.Register
	m.register = func(r phttp.Router) {
		detecthttp.Register(r, detecthttp.Deps{
			Detector: ports.Detector,
			Defaults: defaults,
		})
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes mounts the detect route under the module prefix
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

// Ports implements the module interface
func (m *Module) Ports() any { return nil }
