package modkit

import (
	"acdat/internal/modkit/httpkit"
	str "acdat/internal/platform/strings"
)

// Built is what a module keeps from its options
type Built struct {
	Name   string
	Prefix string
	Ports  any
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{Name: c.name, Prefix: c.prefix, Ports: c.ports}
}

// Mount routes register under the module prefix. Panics on an empty prefix
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), register)
}
