package modkit

import (
	"net/http"

	phttp "deyimci/internal/platform/net/http"
)

// Option mutates the build settings for a module
type Option func(*settings)

type settings struct {
	name      string
	prefix    string
	mw        []func(http.Handler) http.Handler
	ports     any
	subrouter func(phttp.Router) phttp.Router
	register  func(phttp.Router)
}

// WithName names the module for logs
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithPrefix mounts the module under a path prefix
func WithPrefix(prefix string) Option {
	return func(s *settings) { s.prefix = prefix }
}

// WithMiddlewares appends per module middleware in mount order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(s *settings) { s.mw = append(s.mw, mw...) }
}

// WithPorts hands a module the port set it consumes from another module.
// The concrete type is owned by the consuming module
func WithPorts[T any](p T) Option {
	return func(s *settings) { s.ports = p }
}

// WithSubrouter overrides how the module derives its own router
func WithSubrouter(fn func(phttp.Router) phttp.Router) Option {
	return func(s *settings) { s.subrouter = fn }
}

// WithRegister adds extra endpoint registration on top of the module's own
func WithRegister(fn func(phttp.Router)) Option {
	return func(s *settings) { s.register = fn }
}
