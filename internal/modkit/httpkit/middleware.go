package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"acdat/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	MaxBody     int64
	Timeout     time.Duration
	Slow        time.Duration
}

// CommonStack returns the baseline api middleware slice
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	stack := []func(http.Handler) http.Handler{
		// correlation
		middleware.RealIP(),
		middleware.RequestID(),

		// observability then safety, so panics are logged with their status
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.RecoverJSON,

		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Timeout(o.Timeout),
	}
	if o.MaxBody > 0 {
		stack = append(stack, middleware.BodyLimit(o.MaxBody))
	}
	return stack
}
