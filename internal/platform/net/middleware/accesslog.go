package middleware

import (
	"net/http"
	"time"

	"acdat/internal/platform/logger"

	"github.com/rs/zerolog"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow raises requests taking at least this long to warn. Zero disables it
	Slow time.Duration
}

type countingWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *countingWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *countingWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	cw.bytes += n
	return n, err
}

// AccessLogZerolog writes one line per request through the request scoped logger.
// Scan bodies can be large, so both directions are sized
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := &countingWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(cw, r)

			elapsed := time.Since(start)
			logger.C(r.Context()).WithLevel(accessLevel(cw.status, elapsed, opt.Slow)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", cw.status).
				Dur("elapsed", elapsed).
				Int64("bytes_in", r.ContentLength).
				Int("bytes_out", cw.bytes).
				Msg("request done")
		})
	}
}

// accessLevel: server errors log at error, slow requests at warn, the rest at info
func accessLevel(status int, elapsed, slow time.Duration) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case slow > 0 && elapsed >= slow:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
