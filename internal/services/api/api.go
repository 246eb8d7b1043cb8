// Package api provides the HTTP API for the application
package api

import (
	"deyimci/internal/platform/config"
	"deyimci/internal/platform/logger"
	phttp "deyimci/internal/platform/net/http"
	"deyimci/internal/platform/net/middleware"
	"deyimci/internal/platform/store"

	"deyimci/internal/core/lexicon"
	"deyimci/internal/modkit"
	"deyimci/internal/modkit/module"
	"deyimci/internal/modkit/swaggerkit"

	apidetect "deyimci/internal/services/api/detect/module"
	detecthttp "deyimci/internal/services/api/detect/http"
	lexmod "deyimci/internal/services/api/lexicon/module"
	metamod "deyimci/internal/services/api/meta/module"

	detectdomain "deyimci/internal/services/detect/domain"
	workerdetect "deyimci/internal/services/detect/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	Classifier    detectdomain.ClassifierPort
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// the worker module owns the detector, the API module borrows its port
	worker := workerdetect.New(deps, workerdetect.Options{},
		modkit.WithPorts(detectdomain.Ports{Classifier: opt.Classifier}),
	)
	det := module.MustPortsOf[workerdetect.Ports](worker).Detector

	cfg := workerdetect.FromConfig(deps.Cfg)
	lex, err := lexicon.Load()
	if err != nil {
		panic(err)
	}

	mods := []module.Module{
		metamod.New(metamod.Deps{Deps: deps, PG: opt.Store.PG, CH: opt.Store.CH}),
		lexmod.New(deps, lex),
		apidetect.New(deps,
			detecthttp.Defaults{Threshold: cfg.Threshold, MaxGap: cfg.MaxGap},
			modkit.WithPorts(apidetect.Ports{Detector: det}),
		),
	}

	r.Route("/api/v1", func(api phttp.Router) {
		api.Use(middleware.Defaults()...)
		api.Use(middleware.RecoverJSON)
		api.Use(middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 0}))
		api.Use(middleware.CORS(middleware.CORSOptions{}))

		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
}
