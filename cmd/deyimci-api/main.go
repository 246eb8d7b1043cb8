// @title         Deyimci API
// @version       0.1.0
// @description   Turkish idiom detection endpoints

package main

import (
	"context"
	"os/signal"
	"syscall"

	"deyimci/internal/platform/config"
	"deyimci/internal/platform/logger"
	phttp "deyimci/internal/platform/net/http"
	"deyimci/internal/platform/store"

	"deyimci/internal/adapters/model"
	"deyimci/internal/services/api"
	detectdomain "deyimci/internal/services/detect/domain"
)

func main() {
	// service-scoped config for HTTP etc (API_*)
	root := config.New()
	apiCfg := root.Prefix("API_")

	pgCfg := root.Prefix("PGSQL_")
	chCfg := root.Prefix("CLICKHOUSE_")
	modelCfg := root.Prefix("MODEL_")

	// bring up logging early
	l := logger.Get()

	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "deyimci-api",
			PG: store.PGConfig{
				Enabled:     pgCfg.MayBool("ENABLED", false),
				URL:         pgCfg.MayString("DBURL", ""),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled: chCfg.MayBool("ENABLED", false),
				URL:     chCfg.MayString("DBURL", ""),
				Role:    "api",
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	classifier := buildClassifier(modelCfg, *l)

	// http server (reads API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:        root,
			Store:         st,
			Logger:        l,
			Classifier:    classifier,
			EnableSwagger: apiCfg.MayBool("SWAGGER", true),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

// buildClassifier opens the ONNX session when model files are configured
// and falls back to the deterministic stub otherwise
func buildClassifier(cfg config.Conf, l logger.Logger) detectdomain.ClassifierPort {
	modelPath := cfg.MayString("PATH", "")
	if modelPath == "" {
		l.Warn().Msg("MODEL_PATH not set, scoring with the stub classifier")
		return model.Stub{}
	}

	c, err := model.New(model.Config{
		OrtLib:        cfg.MayString("ORT_LIB", ""),
		ModelPath:     modelPath,
		TokenizerPath: cfg.MustString("TOKENIZER_PATH"),
		MaxSeqLen:     cfg.MayInt("MAX_SEQ_LEN", 128),
	}, l)
	if err != nil {
		l.Panic().Err(err).Msg("model load failed")
	}
	return c
}
