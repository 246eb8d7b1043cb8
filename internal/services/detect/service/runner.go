package service

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	perr "deyimci/internal/platform/errors"
	"deyimci/internal/platform/logger"
	"deyimci/internal/services/detect/domain"

	"github.com/google/uuid"
)

// Runner implements domain.RunnerPort over a stored corpus
type Runner struct {
	Det    *Service
	Corpus domain.CorpusReaderPort
	Writer domain.DetectionWriterPort
	Log    logger.Logger
}

// NewRunner wires the batch runner
func NewRunner(det *Service, corpus domain.CorpusReaderPort, writer domain.DetectionWriterPort, log logger.Logger) *Runner {
	return &Runner{Det: det, Corpus: corpus, Writer: writer, Log: log}
}

// RunAll pages through the corpus and detects idioms in every text.
// Texts whose classification fails are skipped and counted, storage
// errors abort the run
func (r *Runner) RunAll(ctx context.Context, in domain.Input) (domain.RunStats, error) {
	if in.PageSize <= 0 {
		in.PageSize = 500
	}
	if in.Workers <= 0 {
		in.Workers = 4
	}

	stats := domain.RunStats{RunID: uuid.NewString()}
	started := time.Now()

	var texts, detections, idiomatic, failures atomic.Int64

	after := domain.AfterKey{}
	for {
		rows, next, err := r.Corpus.List(ctx, domain.ListInput{After: after, Limit: in.PageSize})
		if err != nil {
			return stats, perr.Wrapf(err, perr.ErrorCodeDB, "detect: list corpus page")
		}
		if len(rows) == 0 {
			break
		}

		writes := make([][]domain.DetectionWrite, len(rows))

		sem := make(chan struct{}, in.Workers)
		wg := sync.WaitGroup{}
		for i := range rows {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer func() { <-sem; wg.Done() }()
				row := rows[i]
				texts.Add(1)

				dets, err := r.Det.Detect(ctx, row.Body, domain.Options{
					Threshold: in.Threshold,
					Mode:      in.Mode,
				})
				if err != nil {
					failures.Add(1)
					r.Log.Warn().
						Str("text_id", row.ID).
						Err(err).
						Msg("text skipped after classification failure")
					return
				}

				buf := make([]domain.DetectionWrite, 0, len(dets))
				for _, d := range dets {
					detections.Add(1)
					if d.IsIdiomatic {
						idiomatic.Add(1)
					}
					buf = append(buf, domain.DetectionWrite{
						RunID:       stats.RunID,
						TextID:      row.ID,
						IdiomID:     d.IdiomID,
						CharStart:   d.CharStart,
						CharEnd:     d.CharEnd,
						Probability: d.Probability,
						IsIdiomatic: d.IsIdiomatic,
						Mode:        in.Mode.String(),
						Threshold:   in.Threshold,
						CreatedAt:   started.UTC(),
					})
				}
				writes[i] = buf
			}(i)
		}
		wg.Wait()

		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		if !in.DryRun {
			flat := make([]domain.DetectionWrite, 0, 256)
			for i := range writes {
				flat = append(flat, writes[i]...)
			}
			if len(flat) > 0 {
				if _, err := r.Writer.WriteBatch(ctx, flat); err != nil {
					return stats, perr.Wrapf(err, perr.ErrorCodeDB, "detect: write detections")
				}
			}
		}

		after = next
	}

	stats.Texts = int(texts.Load())
	stats.Detections = int(detections.Load())
	stats.Idiomatic = int(idiomatic.Load())
	stats.Failures = int(failures.Load())
	stats.Elapsed = time.Since(started)

	r.Log.Info().
		Str("run_id", stats.RunID).
		Int("texts", stats.Texts).
		Int("detections", stats.Detections).
		Int("idiomatic", stats.Idiomatic).
		Int("failures", stats.Failures).
		Dur("elapsed", stats.Elapsed).
		Bool("dry_run", in.DryRun).
		Msg("corpus run done")

	return stats, nil
}

// SeedCorpus inserts one corpus row per non-blank line of src, each
// under a fresh uuid. Returns the number of rows written, the first
// insert failure aborts
func SeedCorpus(ctx context.Context, w domain.CorpusWriterPort, src io.Reader) (int, error) {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	n := 0
	for sc.Scan() {
		body := strings.TrimSpace(sc.Text())
		if body == "" {
			continue
		}
		if err := w.InsertText(ctx, uuid.NewString(), body); err != nil {
			return n, err
		}
		n++
	}
	return n, sc.Err()
}
