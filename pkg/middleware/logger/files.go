package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultDir is used when no log directory is configured.
const DefaultDir = "log"

func ensureLogDir(dir string) string {
	if dir == "" {
		dir = DefaultDir
	}
	_ = os.MkdirAll(dir, 0o755)
	return dir
}

// NewLog builds a JSON logger that tees to stdout and to a rotated file
// named n inside dir.
func NewLog(dir, n string) *zap.Logger {
	dir = ensureLogDir(dir)

	cfg := zap.NewProductionEncoderConfig()
	cfg.MessageKey = zapcore.OmitKey

	console := zapcore.Lock(os.Stdout)

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, n),
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(cfg), w, zap.InfoLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(cfg), console, zap.InfoLevel),
	)
	return zap.New(core)
}
