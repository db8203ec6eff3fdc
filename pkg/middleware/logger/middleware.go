package logger

import (
	"net/http"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/joeydtaylor/steeze-activities/pkg/transport/httpx"
)

// Middleware writes one access log line per request.
type Middleware struct {
	log *zap.Logger
}

// NewMiddleware returns an access logger writing to l. A nil l discards.
func NewMiddleware(l *zap.Logger) *Middleware {
	if l == nil {
		l = zap.NewNop()
	}
	return &Middleware{log: l}
}

func (m *Middleware) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimd.NewWrapResponseWriter(w, r.ProtoMajor)

			scheme := "http"
			if r.TLS != nil {
				scheme = "https"
			}

			start := time.Now()
			defer func() {
				m.log.Info("",
					zap.String("dateTime", start.UTC().Format(time.RFC1123)),
					zap.String("requestId", chimd.GetReqID(r.Context())),
					zap.String("httpScheme", scheme),
					zap.String("httpProto", r.Proto),
					zap.String("httpMethod", r.Method),
					zap.String("remoteAddr", r.RemoteAddr),
					zap.String("uri", r.URL.Path),
					zap.String("route", httpx.RoutePattern(r)),
					zap.Duration("lat", time.Since(start)),
					zap.Int("responseSize", ww.BytesWritten()),
					zap.Int("status", ww.Status()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
