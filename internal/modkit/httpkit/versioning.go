package httpkit

import (
	"net/http"

	str "acdat/internal/platform/strings"
)

// MountAPI scopes mount under /api/<version> with mw applied to that scope only,
// so handlers mounted on r itself stay outside the stack
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api"+str.MustPrefix(version), func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}

// MountAPIV1 mounts under /api/v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
