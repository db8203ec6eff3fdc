package logger

import "go.uber.org/zap"

// Config selects where log files are written.
type Config struct {
	Dir string
}

func ProvideLoggerMiddleware(cfg Config) *Middleware {
	return NewMiddleware(NewLog(cfg.Dir, "http-access.log"))
}

func ProvideLogger(cfg Config) *zap.Logger { return NewLog(cfg.Dir, "system.log") }
