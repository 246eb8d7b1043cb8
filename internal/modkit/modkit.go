// Package modkit provides module wiring and core deps
package modkit

import (
	"net/http"

	phttp "deyimci/internal/platform/net/http"
)

// Built holds the resolved module settings after options are applied
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	// router hooks, always non-nil after Build
	Subrouter func(phttp.Router) phttp.Router
	Register  func(phttp.Router)
}

// Build resolves opts into a Built with safe defaults
func Build(opts ...Option) Built {
	s := settings{
		subrouter: func(r phttp.Router) phttp.Router { return r },
		register:  func(phttp.Router) {},
	}
	for _, o := range opts {
		o(&s)
	}
	return Built{
		Name:      s.name,
		Prefix:    s.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), s.mw...),
		Ports:     s.ports,
		Subrouter: s.subrouter,
		Register:  s.register,
	}
}
