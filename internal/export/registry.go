package export

import (
	"fmt"

	"wikihistories/internal/ports"
)

// Registry keeps a mapping from format names to exporter implementations.
type Registry struct {
	exporters map[string]ports.Exporter
}

// NewRegistry builds a registry with the built-in formats registered.
func NewRegistry() *Registry {
	r := &Registry{exporters: map[string]ports.Exporter{}}
	r.Register(NewCSVExporter())
	r.Register(NewTableExporter())
	return r
}

// Register adds or replaces an exporter implementation.
func (r *Registry) Register(exporter ports.Exporter) {
	if r.exporters == nil {
		r.exporters = map[string]ports.Exporter{}
	}
	r.exporters[exporter.Name()] = exporter
}

// Resolve returns an exporter by format name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.Exporter, error) {
	if exporter, ok := r.exporters[name]; ok {
		return exporter, nil
	}
	return nil, fmt.Errorf("output format %s is not registered", name)
}
