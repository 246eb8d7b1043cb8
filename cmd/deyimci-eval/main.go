package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"deyimci/internal/modkit"
	"deyimci/internal/platform/config"
	"deyimci/internal/platform/logger"
	"deyimci/internal/platform/store"

	"deyimci/internal/adapters/model"
	"deyimci/internal/core/match"
	detectdomain "deyimci/internal/services/detect/domain"
	detectmod "deyimci/internal/services/detect/module"
	evaldomain "deyimci/internal/services/eval/domain"
	evalmod "deyimci/internal/services/eval/module"
	evalrepo "deyimci/internal/services/eval/repo"
)

func parseThresholds(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("bad threshold %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func main() {
	root := config.New()
	chCfg := root.Prefix("CLICKHOUSE_")
	modelCfg := root.Prefix("MODEL_")
	l := logger.Get()

	var (
		labels     = flag.String("labels", "", "path to a JSONL labeled example set")
		thresholds = flag.String("thresholds", "0.4,0.5,0.6,0.7,0.8", "comma separated sweep values")
		modeStr    = flag.String("mode", "exact", "matching mode: exact | token-window")
		maxGap     = flag.Int("max-gap", 3, "gap budget for token-window mode")
		workers    = flag.Int("workers", 4, "concurrency (>=1)")
		stub       = flag.Bool("stub", false, "score with the stub classifier")
		record     = flag.Bool("record", false, "write metrics rows to clickhouse")
		timeout    = flag.Duration("timeout", 30*time.Second, "per span scoring bound")
	)
	flag.Parse()

	if *labels == "" {
		l.Fatal().Msg("-labels is required")
	}
	ths, err := parseThresholds(*thresholds)
	if err != nil {
		l.Fatal().Err(err).Msg("bad -thresholds")
	}
	mode, err := match.ParseMode(*modeStr, *maxGap)
	if err != nil {
		l.Fatal().Err(err).Msg("bad -mode")
	}

	f, err := os.Open(*labels)
	if err != nil {
		l.Fatal().Err(err).Msg("open labeled set")
	}
	examples, err := evalrepo.ReadJSONL(f)
	_ = f.Close()
	if err != nil {
		l.Fatal().Err(err).Msg("parse labeled set")
	}

	var st *store.Store
	if *record {
		st, err = store.Open(context.Background(), store.Config{
			AppName: "deyimci-eval",
			CH: store.CHConfig{
				Enabled: true,
				URL:     chCfg.MustString("DBURL"),
				Role:    "eval",
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
	}

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

	deps := modkit.Deps{Cfg: root, Log: *l}
	if st != nil {
		deps.CH = st.CH
	}

	dm := detectmod.New(deps, detectmod.Options{MaxGap: *maxGap},
		modkit.WithPorts(detectdomain.Ports{Classifier: classifier}))
	em := evalmod.New(deps,
		modkit.WithPorts(evaldomain.Ports{
			Detector: dm.Ports().(detectmod.Ports).Detector,
		}))
	ports := em.Ports().(evalmod.Ports)
	report, err := ports.Evaluator.Sweep(context.Background(), examples, evaldomain.Input{
		Thresholds:      ths,
		Mode:            mode,
		Workers:         *workers,
		ClassifyTimeout: *timeout,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("sweep failed")
	}

	fmt.Printf("run %s, %d examples, mode %s\n", report.RunID, report.Examples, mode)
	fmt.Println("threshold  precision  recall     f1         tp    fp    fn")
	for _, m := range report.Rows {
		fmt.Printf("%-9.2f  %-9.4f  %-9.4f  %-9.4f  %-4d  %-4d  %-4d\n",
			m.Threshold, m.Precision, m.Recall, m.F1, m.TP, m.FP, m.FN)
	}

	if *record {
		if ports.Metrics == nil {
			l.Fatal().Msg("-record set but clickhouse is not wired")
		}
		if err := ports.Metrics.WriteMetrics(context.Background(), report, mode.String()); err != nil {
			l.Fatal().Err(err).Msg("metrics write failed")
		}
		l.Info().Str("run_id", report.RunID).Int("rows", len(report.Rows)).Msg("metrics recorded")
	}
}
