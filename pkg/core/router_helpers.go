package core

import (
	"context"
	"net/http"
	"time"

	"github.com/joeydtaylor/steeze-activities/pkg/codec"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// WriteError sends {"detail": detail} with status.
func WriteError(w http.ResponseWriter, status int, detail string) {
	codec.Write(w, codec.JSON, status, ErrorResponse{Detail: detail})
}

// withTimeout bounds the request context; handlers observe it through r.Context().
func withTimeout(next http.HandlerFunc, d time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}
