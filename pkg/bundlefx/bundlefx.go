// bundlefx/bundlefx.go
package bundlefx

import (
	"github.com/joeydtaylor/steeze-activities/pkg/middleware/logger"
	"github.com/joeydtaylor/steeze-activities/pkg/middleware/metrics"
	"go.uber.org/fx"
)

// Module provides the system logger, the access-log middleware and the
// named /metrics handler. logger.Config must be supplied by the caller.
var Module = fx.Options(
	logger.Module,
	metrics.Module,
)
