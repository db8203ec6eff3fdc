package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// ProvideMetrics returns the /metrics exposition handler.
func ProvideMetrics() http.Handler { return promhttp.Handler() }

// Module provides the /metrics handler under the name "metrics".
var Module = fx.Options(
	fx.Provide(fx.Annotate(ProvideMetrics, fx.ResultTags(`name:"metrics"`))),
)
