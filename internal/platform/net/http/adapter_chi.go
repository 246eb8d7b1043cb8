package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is the platform handler signature used throughout the routers
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules mount their routes against. Only the verbs the
// api actually serves are exposed, everything else goes through Handle
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Route(pattern string, fn func(Router))
	Mux() http.Handler
}

// chiRouter adapts chi.Router to the platform Router seam.
// *chi.Mux satisfies chi.Router so the same adapter serves the root
// mux and every subrouter
type chiRouter struct{ r chi.Router }

// AdaptChi wraps a *chi.Mux in the platform Router seam
func AdaptChi(m *chi.Mux) Router { return chiRouter{r: m} }

func (c chiRouter) Get(p string, h Handler) {
	c.r.Method(http.MethodGet, p, http.HandlerFunc(h))
}

func (c chiRouter) Post(p string, h Handler) {
	c.r.Method(http.MethodPost, p, http.HandlerFunc(h))
}

func (c chiRouter) Handle(p string, h http.Handler) { c.r.Handle(p, h) }

func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Mux() http.Handler { return c.r }
