package modkit

import (
	"acdat/internal/core/detector"
	"acdat/internal/platform/config"
	"acdat/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log       *logger.Logger
	Cfg       config.Conf
	Detectors *detector.Holder
}

// Logger returns Log, falling back to the root logger
func (d Deps) Logger() *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Get()
}
