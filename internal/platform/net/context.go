// Package net holds transport helpers for request scoped values
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// HeaderRequestID is the header used to propagate request ids
const HeaderRequestID = "X-Request-ID"

// WithRequest stores reqID where chi's RequestID helpers can read it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id on ctx, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// NewRequestID mints a random request id
var NewRequestID = func() string { return uuid.NewString() }

// EnsureRequestID returns ctx carrying a request id, minting one when absent
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id := RequestID(ctx); id != "" {
		return ctx, id
	}
	id := NewRequestID()
	return WithRequest(ctx, id), id
}
