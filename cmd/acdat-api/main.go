// Command acdat-api serves pattern scans over HTTP
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"acdat/internal/adapters/fsnotify"
	"acdat/internal/core/detector"
	"acdat/internal/modkit"
	"acdat/internal/modkit/module"
	"acdat/internal/platform/config"
	perr "acdat/internal/platform/errors"
	"acdat/internal/platform/logger"
	phttp "acdat/internal/platform/net/http"

	"acdat/internal/services/api"
	scandom "acdat/internal/services/api/scan/domain"
	scanmod "acdat/internal/services/api/scan/module"
	scansvc "acdat/internal/services/api/scan/service"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// detector config lives under ACDAT_*
	scanCfg := scanmod.FromConfig(root)
	d, err := scansvc.Build(scanCfg)
	if err != nil {
		l.Panic().Err(err).Str("file", scanCfg.PatternsFile).Msg("initial pattern set failed to build")
	}
	holder := detector.NewHolder(d)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// http server (reads CORE_API_PORT / CORE_API_SHUTDOWN_TIMEOUT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	reg := api.Mount(
		srv.Router(),
		api.Options{
			Config:    apiCfg,
			Logger:    l,
			Detectors: holder,
			Modules:   []modkit.Option{modkit.WithPorts(scanCfg)},
		},
	)

	// rebuild the detector whenever the pattern file changes
	if scanCfg.PatternsFile != "" && root.Prefix("ACDAT_").MayBool("WATCH", false) {
		rl := module.MustPortsOf[scandom.ReloaderPort](mustModule(reg, "scan"))
		w, err := fsnotify.NewWatcher(root.Prefix("ACDAT_").MayDuration("WATCH_DEBOUNCE", fsnotify.DefaultDebounce))
		if err != nil {
			l.Panic().Err(err).Msg("watcher init failed")
		}
		defer func() {
			if err := w.Stop(); err != nil {
				l.Error().Err(err).Msg("failed to stop watcher")
			}
		}()
		if err := w.Watch(scanCfg.PatternsFile, reloadOnChange(ctx, rl, logger.Named("watcher"))); err != nil {
			l.Panic().Err(err).Str("file", scanCfg.PatternsFile).Msg("watch failed")
		}
	}

	// run until signalled
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("http server stopped")
}

func mustModule(reg *module.Registry, name string) module.Module {
	m, ok := reg.Get(name)
	if !ok {
		logger.Get().Panic().Str("module", name).Msg("module not registered")
	}
	return m
}

// reloadOnChange adapts the scan reloader to a watcher callback. Reload logs its
// own outcome; this only notes what the trigger adds
func reloadOnChange(ctx context.Context, rl scandom.ReloaderPort, log *logger.Logger) func(path string) {
	return func(path string) {
		res, err := rl.Reload(ctx)
		switch {
		case perr.IsCode(err, perr.ErrorCodeNotFound):
			log.Info().Str("file", path).Msg("pattern file gone; waiting for the next write")
		case err == nil && res.Previous != nil:
			log.Debug().Int("from_version", res.Previous.Version).Int("to_version", res.Current.Version).
				Msg("pattern file change applied")
		}
	}
}
