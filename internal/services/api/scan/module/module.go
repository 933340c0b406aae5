// Package module wires scan into the API using modkit
package module

import (
	modkit "acdat/internal/modkit"
	"acdat/internal/modkit/httpkit"
	str "acdat/internal/platform/strings"
	"acdat/internal/services/api/scan/domain"
	scanhttp "acdat/internal/services/api/scan/http"
	scansvc "acdat/internal/services/api/scan/service"
)

// Ports exposed by the scan module
type Ports struct {
	Service  domain.ServicePort
	Reloader domain.ReloaderPort
}

// Module implements the scan module
type Module struct {
	b     modkit.Built
	svc   *scansvc.Svc
	ports Ports
}

// New constructs the scan module. The service config comes from deps.Cfg unless
// WithPorts(service.Config) overrides it
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("scan"), modkit.WithPrefix("/scan")}, opts...)...)

	cfg, ok := b.Ports.(scansvc.Config)
	if !ok {
		cfg = FromConfig(deps.Cfg)
	}
	if deps.Detectors == nil {
		panic("scan module: Deps.Detectors is required")
	}

	svc := scansvc.New(deps.Detectors, cfg)
	return &Module{
		b:     b,
		svc:   svc,
		ports: Ports{Service: svc, Reloader: svc},
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { scanhttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
