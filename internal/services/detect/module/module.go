// Package module wires the detect service, repo, and runner
package module

import (
	"deyimci/internal/core/lexicon"
	"deyimci/internal/modkit"
	"deyimci/internal/modkit/repokit"
	phttp "deyimci/internal/platform/net/http"
	"deyimci/internal/services/detect/domain"
	"deyimci/internal/services/detect/repo"
	"deyimci/internal/services/detect/service"
)

// Ports exposed by the detect module
type Ports struct {
	Detector domain.DetectorPort
	Runner   domain.RunnerPort
	Corpus   domain.CorpusWriterPort
}

// Module implements modkit module wiring for detect
type Module struct {
	deps  modkit.Deps
	ports Ports
	built modkit.Built
}

// New constructs the detect module
// the classifier port is required, the runner is wired only when PG is present
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("detect"),
	}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("detect module: expected WithPorts(detect/domain.Ports)")
	}
	if ports.Classifier == nil {
		panic("detect module: Ports missing Classifier")
	}

	cfg := FromConfig(deps.Cfg)
	if overrides.Threshold != 0 {
		cfg.Threshold = overrides.Threshold
	}
	if overrides.MaxGap != 0 {
		cfg.MaxGap = overrides.MaxGap
	}
	if overrides.PageSize != 0 {
		cfg.PageSize = overrides.PageSize
	}
	if overrides.Workers != 0 {
		cfg.Workers = overrides.Workers
	}
	if overrides.ClassifyTimeout != 0 {
		cfg.ClassifyTimeout = overrides.ClassifyTimeout
	}
	cfg.DryRun = overrides.DryRun

	lex, err := lexicon.Load()
	if err != nil {
		panic(err)
	}
	deps.Log.Info().
		Int("entries", lex.Size()).
		Int("longest_tokens", lex.MaxLen()).
		Msg("lexicon loaded")

	det := service.New(lex, ports.Classifier, service.Config{MaxGap: cfg.MaxGap})

	m := &Module{deps: deps, built: b}
	m.ports = Ports{Detector: det}

	if deps.PG != nil {
		// repo.Storage satisfies the corpus reader, corpus writer, and
		// detection writer ports
		storage := repokit.MustBind[repo.Storage](repo.NewPG(), deps.PG)
		m.ports.Runner = service.NewRunner(det, storage, storage, deps.Log)
		m.ports.Corpus = storage
	}

	return m
}

// Name implements modkit module naming
func (m *Module) Name() string { return "detect" }

// Ports returns the module port set
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op, the api service mounts detect endpoints
func (m *Module) MountRoutes(phttp.Router) {}
