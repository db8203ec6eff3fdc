package logger

import "go.uber.org/fx"

// Module provides the access-log middleware and the system logger, both
// writing under the configured log directory.
var Module = fx.Options(
	fx.Provide(ProvideLoggerMiddleware, ProvideLogger),
)
