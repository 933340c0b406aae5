// Package api provides the HTTP API for the application
package api

import (
	"acdat/internal/core/detector"
	"acdat/internal/platform/config"
	"acdat/internal/platform/logger"
	phttp "acdat/internal/platform/net/http"
	"acdat/internal/platform/net/middleware"

	"acdat/internal/modkit"
	"acdat/internal/modkit/httpkit"
	"acdat/internal/modkit/module"

	metamod "acdat/internal/services/api/meta/module"
	scanmod "acdat/internal/services/api/scan/module"
)

// Options are the API options
type Options struct {
	Config    config.Conf
	Logger    *logger.Logger
	Detectors *detector.Holder
	Modules   []modkit.Option // applied to the scan module
}

// Mount mounts the API service onto the given router and returns the module
// registry so callers can reach module ports (the scan reloader, for instance)
func Mount(r phttp.Router, opt Options) *module.Registry {
	// shared deps for modules
	deps := modkit.Deps{
		Log:       opt.Logger,
		Cfg:       opt.Config,
		Detectors: opt.Detectors,
	}

	mods := []module.Module{
		metamod.New(deps),
		scanmod.New(deps, opt.Modules...),
	}

	reg := module.NewRegistry()
	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.Config.MayCSV("CORS_ORIGINS", []string{"*"}),
		MaxBody:     int64(opt.Config.MayInt("MAX_BODY_BYTES", 1<<20)),
		Timeout:     opt.Config.MayDuration("REQUEST_TIMEOUT", 0),
		Slow:        opt.Config.MayDuration("SLOW_REQUEST", 0),
	})

	// load balancer heartbeat outside the versioned stack; must precede any route
	r.Use(middleware.Heartbeat(opt.Config.MayString("HEARTBEAT_PATH", "/healthz")))

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module under its own name for cross module lookups
			reg.Add(m)

			// mount module routes under its prefix
			m.MountRoutes(api)
		}
	})

	deps.Logger().Info().Strs("modules", reg.Names()).Msg("api mounted")
	return reg
}
