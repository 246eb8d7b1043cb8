package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"deyimci/internal/platform/config"
	"deyimci/internal/platform/logger"

	"deyimci/internal/adapters/model"
	"deyimci/internal/core/lexicon"
	"deyimci/internal/core/match"
	detectdomain "deyimci/internal/services/detect/domain"
	detectservice "deyimci/internal/services/detect/service"
)

func main() {
	root := config.New()
	modelCfg := root.Prefix("MODEL_")
	l := logger.Get()

	var (
		text      = flag.String("text", "", "text to scan, reads stdin when empty")
		threshold = flag.Float64("threshold", 0.6, "idiomatic decision cutoff in (0,1)")
		modeStr   = flag.String("mode", "exact", "matching mode: exact | token-window")
		maxGap    = flag.Int("max-gap", 3, "gap budget for token-window mode")
		stub      = flag.Bool("stub", false, "score with the stub classifier")
		stubP     = flag.Float64("stub-p", 0, "fixed stub probability, 0 hashes the span")
		timeout   = flag.Duration("timeout", 30*time.Second, "per span scoring bound")
	)
	flag.Parse()

	mode, err := match.ParseMode(*modeStr, *maxGap)
	if err != nil {
		l.Fatal().Err(err).Msg("bad -mode")
	}

	input := *text
	if input == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			l.Fatal().Err(err).Msg("read stdin")
		}
		input = strings.TrimSpace(string(raw))
	}

	lex, err := lexicon.Load()
	if err != nil {
		l.Fatal().Err(err).Msg("lexicon load failed")
	}

	var classifier detectdomain.ClassifierPort
	if *stub {
		classifier = model.Stub{P: *stubP}
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

	svc := detectservice.New(lex, classifier, detectservice.Config{MaxGap: *maxGap})
	dets, err := svc.Detect(context.Background(), input, detectdomain.Options{
		Threshold:       *threshold,
		Mode:            mode,
		ClassifyTimeout: *timeout,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("detect failed")
	}
	if dets == nil {
		dets = []detectdomain.Detection{}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(dets); err != nil {
		l.Fatal().Err(err).Msg("encode output")
	}
}
