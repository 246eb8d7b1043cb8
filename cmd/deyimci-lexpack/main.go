package main

import (
	"flag"
	"os"

	"deyimci/internal/core/lexicon"
	"deyimci/internal/platform/logger"
)

func main() {
	l := logger.Get()

	var (
		in   = flag.String("in", "", "tabular source (csv, semicolon, or tab delimited)")
		out  = flag.String("out", "lexicon.json", "pack output path")
		name = flag.String("source", "", "source label recorded in pack meta")
	)
	flag.Parse()

	if *in == "" {
		l.Fatal().Msg("-in is required")
	}

	f, err := os.Open(*in)
	if err != nil {
		l.Fatal().Err(err).Msg("open source")
	}
	entries, err := lexicon.FromTabular(f)
	_ = f.Close()
	if err != nil {
		l.Fatal().Err(err).Msg("parse source")
	}

	var meta map[string]any
	if *name != "" {
		meta = map[string]any{"source": *name}
	}

	dst, err := os.Create(*out)
	if err != nil {
		l.Fatal().Err(err).Msg("create pack")
	}
	if err := lexicon.WritePack(dst, entries, meta); err != nil {
		_ = dst.Close()
		l.Fatal().Err(err).Msg("write pack")
	}
	if err := dst.Close(); err != nil {
		l.Fatal().Err(err).Msg("close pack")
	}

	l.Info().Str("in", *in).Str("out", *out).Int("entries", len(entries)).Msg("pack written")
}
