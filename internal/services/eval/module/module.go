// Package module wires the eval service, readers, and the metrics sink
package module

import (
	"deyimci/internal/modkit"
	"deyimci/internal/modkit/repokit"
	phttp "deyimci/internal/platform/net/http"
	"deyimci/internal/services/eval/domain"
	"deyimci/internal/services/eval/repo"
	"deyimci/internal/services/eval/service"
)

// Ports exposed by the eval module
type Ports struct {
	Evaluator domain.EvaluatorPort
	Examples  domain.ExampleReaderPort
	Metrics   domain.MetricsWriterPort
}

// Module implements modkit module wiring for eval
type Module struct {
	deps  modkit.Deps
	ports Ports
	built modkit.Built
}

// New constructs the eval module, the detector port is required.
// The example reader needs PG and the metrics sink needs CH, both optional
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("eval"),
	}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("eval module: expected WithPorts(eval/domain.Ports)")
	}
	if ports.Detector == nil {
		panic("eval module: Ports missing Detector")
	}

	m := &Module{deps: deps, built: b}
	m.ports = Ports{Evaluator: service.New(ports.Detector)}

	if deps.PG != nil {
		m.ports.Examples = repokit.MustBind[repo.Storage](repo.NewPG(), deps.PG)
	}
	if deps.CH != nil {
		m.ports.Metrics = repo.NewCHWriter(deps.CH)
	}

	return m
}

// Name implements modkit module naming
func (m *Module) Name() string { return "eval" }

// Ports returns the module port set
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op, evaluation runs through the CLI
func (m *Module) MountRoutes(phttp.Router) {}
