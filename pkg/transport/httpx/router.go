// pkg/transport/httpx/router.go
package httpx

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// Router is the minimal HTTP router contract the service depends on.
// NewChi implements it.
type Router interface {
	Handle(method, path string, h http.Handler)
	Get(path string, h http.Handler)
	Post(path string, h http.Handler)
	Put(path string, h http.Handler)
	Delete(path string, h http.Handler)
	Mount(prefix string, h http.Handler)
	NotFound(h http.HandlerFunc)
	MethodNotAllowed(h http.HandlerFunc)
	Mux() http.Handler
	Use(mw ...func(http.Handler) http.Handler)
}

// chiRouter is the default Router backed by github.com/go-chi/chi/v5.
type chiRouter struct{ r *chi.Mux }

// NewChi returns a Chi-backed Router.
func NewChi() Router { return &chiRouter{r: chi.NewRouter()} }

func (c *chiRouter) Handle(method, path string, h http.Handler) { c.r.Method(method, path, h) }
func (c *chiRouter) Get(path string, h http.Handler)            { c.r.Method(http.MethodGet, path, h) }
func (c *chiRouter) Post(path string, h http.Handler)           { c.r.Method(http.MethodPost, path, h) }
func (c *chiRouter) Put(path string, h http.Handler)            { c.r.Method(http.MethodPut, path, h) }
func (c *chiRouter) Delete(path string, h http.Handler)         { c.r.Method(http.MethodDelete, path, h) }
func (c *chiRouter) Mount(prefix string, h http.Handler)        { c.r.Mount(prefix, h) }
func (c *chiRouter) NotFound(h http.HandlerFunc)                { c.r.NotFound(h) }
func (c *chiRouter) MethodNotAllowed(h http.HandlerFunc)        { c.r.MethodNotAllowed(h) }
func (c *chiRouter) Mux() http.Handler                          { return c.r }
func (c *chiRouter) Use(mw ...func(http.Handler) http.Handler)  { c.r.Use(mw...) }

// Param returns the decoded value of a route parameter. chi matches on the
// escaped path when the request carries one, so the value is unescaped here.
func Param(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

// RoutePattern returns the matched chi pattern, or "" when no route matched.
func RoutePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
