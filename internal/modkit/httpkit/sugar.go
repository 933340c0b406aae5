package httpkit

import (
	"net/http"

	phttp "acdat/internal/platform/net/http"
)

// Get registers a no-body handler and uses the envelope adapter.
// h may return a Response to pick its own status
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// Post registers a no-body handler and uses the envelope adapter
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.PostNoBody(r, path, h)
}

// PostJSON mounts a JSON handler under POST; the body is bound and validated first
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}
