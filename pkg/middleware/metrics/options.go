package metrics

import (
	"net/http"

	"github.com/joeydtaylor/steeze-activities/pkg/transport/httpx"
)

// unmatchedRoute labels every request that no route pattern claimed, so
// arbitrary 404 paths share one series.
const unmatchedRoute = "unmatched"

var skipPaths = map[string]struct{}{"/metrics": {}, "/ping": {}}

func isSkipPath(r *http.Request) bool {
	_, ok := skipPaths[r.URL.Path]
	return ok
}

// routeLabel is the matched chi pattern, so activity names and emails never
// become label values.
func routeLabel(r *http.Request) string {
	if p := httpx.RoutePattern(r); p != "" {
		return p
	}
	return unmatchedRoute
}
