// Package http provides http transport for scan
package http

import (
	stdhttp "net/http"

	"acdat/internal/modkit/httpkit"
	"acdat/internal/services/api/scan/domain"
)

// Register mounts scan endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	domain.RegisterTags()
	h := &handlers{svc: s}

	// scan text against the loaded set or inline patterns
	httpkit.PostJSON[domain.ScanRequest](r, "/", h.scan)

	// automaton sizes and build metadata
	httpkit.Get(r, "/stats", h.stats)

	// rebuild from the pattern source
	httpkit.Post(r, "/reload", h.reload)
}

type handlers struct{ svc domain.ServicePort }

func (h *handlers) scan(r *stdhttp.Request, in domain.ScanRequest) (any, error) {
	return h.svc.Scan(r.Context(), in)
}

func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.svc.Stats(r.Context())
}

func (h *handlers) reload(r *stdhttp.Request) (any, error) {
	return h.svc.Reload(r.Context())
}
