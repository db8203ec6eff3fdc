package core

import (
	"net/http"
	"strings"

	chimd "github.com/go-chi/chi/v5/middleware"

	hmetrics "github.com/joeydtaylor/steeze-activities/pkg/middleware/metrics"
)

// StaticPrefix is where the companion static files are mounted.
const StaticPrefix = "/static"

func BuildRouter(d BuildDeps) http.Handler {
	r := d.Router
	r.Use(chimd.RequestID, chimd.RealIP, chimd.Recoverer, chimd.Heartbeat("/ping"))
	if d.LogMW != nil {
		r.Use(d.LogMW.Middleware())
	}
	r.Use(hmetrics.Collect())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	if d.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", d.Metrics)
	}
	if d.StaticDir != "" {
		r.Mount(StaticPrefix, http.StripPrefix(StaticPrefix, http.FileServer(http.Dir(d.StaticDir))))
	}

	for _, rt := range d.Routes {
		h := rt.Handler
		if d.Timeout > 0 {
			h = withTimeout(h, d.Timeout)
		}

		switch strings.ToUpper(rt.Method) {
		case http.MethodGet:
			r.Get(rt.Path, h)
		case http.MethodPost:
			r.Post(rt.Path, h)
		case http.MethodPut:
			r.Put(rt.Path, h)
		case http.MethodDelete:
			r.Delete(rt.Path, h)
		default:
			r.Handle(rt.Method, rt.Path, h)
		}
	}
	return r.Mux()
}
