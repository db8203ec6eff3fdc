package core

import (
	"net/http"
	"time"

	"github.com/joeydtaylor/steeze-activities/pkg/middleware/logger"
	httpx "github.com/joeydtaylor/steeze-activities/pkg/transport/httpx"
)

// Route binds a handler to a method and chi pattern.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

type BuildDeps struct {
	LogMW     *logger.Middleware
	Metrics   http.Handler
	Router    httpx.Router
	Routes    []Route
	StaticDir string        // served under /static when set
	Timeout   time.Duration // per-route request timeout; 0 disables
}
