package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	"deyimci/internal/modkit"
	"deyimci/internal/platform/config"
	"deyimci/internal/platform/logger"
	"deyimci/internal/platform/store"

	"deyimci/internal/adapters/model"
	"deyimci/internal/core/match"
	detectdomain "deyimci/internal/services/detect/domain"
	detectmod "deyimci/internal/services/detect/module"
	"deyimci/internal/services/detect/service"
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("PGSQL_")
	modelCfg := root.Prefix("MODEL_")
	l := logger.Get()

	var (
		threshold = flag.Float64("threshold", 0.6, "idiomatic decision cutoff in (0,1)")
		modeStr   = flag.String("mode", "exact", "matching mode: exact | token-window")
		maxGap    = flag.Int("max-gap", 3, "gap budget for token-window mode")
		workers   = flag.Int("workers", 4, "concurrency (>=1)")
		page      = flag.Int("page", 500, "page size (rows)")
		dryRun    = flag.Bool("dry-run", false, "detect but do not write rows")
		stub      = flag.Bool("stub", false, "score with the stub classifier")
		seed      = flag.String("seed", "", "insert one corpus text per line of this file before running")
	)
	flag.Parse()

	mode, err := match.ParseMode(*modeStr, *maxGap)
	if err != nil {
		l.Fatal().Err(err).Msg("bad -mode")
	}

	st, err := store.Open(context.Background(), store.Config{
		AppName: "deyimci-detect",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var classifier detectdomain.ClassifierPort
	if *stub {
		classifier = model.Stub{}
	} else {
		c, err := model.New(model.Config{
			OrtLib:        modelCfg.MayString("ORT_LIB", ""),
			ModelPath:     modelCfg.MustString("PATH"),
			TokenizerPath: modelCfg.MustString("TOKENIZER_PATH"),
			MaxSeqLen:     modelCfg.MayInt("MAX_SEQ_LEN", 128),
		}, *l)
		if err != nil {
			l.Fatal().Err(err).Msg("model load failed")
		}
		defer func() { _ = c.Close() }()
		classifier = c
	}

	// pass CLI flags into DETECT_* so the module reads its own config
	mustSetEnv("DETECT_WORKERS", strconv.Itoa(*workers))
	mustSetEnv("DETECT_PAGE_SIZE", strconv.Itoa(*page))

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	dm := detectmod.New(
		deps,
		detectmod.Options{
			Threshold: *threshold,
			MaxGap:    *maxGap,
			Workers:   *workers,
			PageSize:  *page,
			DryRun:    *dryRun,
		},
		modkit.WithPorts(detectdomain.Ports{Classifier: classifier}),
	)
	ports := dm.Ports().(detectmod.Ports)

	if *seed != "" {
		f, err := os.Open(*seed)
		if err != nil {
			l.Fatal().Err(err).Msg("open seed file")
		}
		n, err := service.SeedCorpus(context.Background(), ports.Corpus, f)
		_ = f.Close()
		if err != nil {
			l.Fatal().Err(err).Int("inserted", n).Msg("corpus seed failed")
		}
		l.Info().Int("inserted", n).Msg("corpus seeded")
	}

	stats, err := ports.Runner.RunAll(context.Background(), detectdomain.Input{
		Threshold: *threshold,
		Mode:      mode,
		PageSize:  *page,
		Workers:   *workers,
		DryRun:    *dryRun,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("corpus run failed")
	}
	if stats.Failures > 0 {
		l.Error().Int("failures", stats.Failures).Msg("run finished with skipped texts")
		os.Exit(1)
	}
}
