// Package repo provides the labeled example reader and the metrics sink
package repo

import (
	"context"
	"time"

	"deyimci/internal/modkit/repokit"
	perr "deyimci/internal/platform/errors"
	"deyimci/internal/platform/store"
	"deyimci/internal/services/eval/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage reads the labeled example set
type Storage interface {
	List(ctx context.Context, limit int) ([]domain.LabeledExample, error)
}

// List loads labeled examples with their gold spans in example order
func (s *pg) List(ctx context.Context, limit int) ([]domain.LabeledExample, error) {
	rows, err := s.q.Query(ctx, `
		SELECT e.id::text, e.body, g.idiom_id, g.char_start, g.char_end
		FROM eval_examples e
		LEFT JOIN eval_gold g ON g.example_id = e.id
		ORDER BY e.id, g.idiom_id, g.char_start
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, perr.FromPG(err, "eval.examples.list")
	}
	defer rows.Close()

	var out []domain.LabeledExample
	idx := map[string]int{}
	for rows.Next() {
		var (
			id, body string
			idiomID  *int
			cs, ce   *int
		)
		if err := rows.Scan(&id, &body, &idiomID, &cs, &ce); err != nil {
			return nil, perr.FromPG(err, "eval.examples.scan")
		}
		i, ok := idx[id]
		if !ok {
			i = len(out)
			idx[id] = i
			out = append(out, domain.LabeledExample{ID: id, Text: body})
		}
		if idiomID != nil {
			out[i].Gold = append(out[i].Gold, domain.GoldSpan{
				IdiomID:   *idiomID,
				CharStart: *cs,
				CharEnd:   *ce,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPG(err, "eval.examples.rows")
	}
	return out, nil
}

// CHWriter records sweep metrics rows into ClickHouse
type CHWriter struct {
	CH store.Clickhouse
}

// NewCHWriter wires the metrics sink, a nil seam turns writes into no-ops
func NewCHWriter(ch store.Clickhouse) *CHWriter { return &CHWriter{CH: ch} }

// WriteMetrics appends one row per swept threshold
func (w *CHWriter) WriteMetrics(ctx context.Context, report domain.Report, mode string) error {
	if w == nil || w.CH == nil || len(report.Rows) == 0 {
		return nil
	}

	data := make([][]any, 0, len(report.Rows))
	now := time.Now().UTC()
	for _, m := range report.Rows {
		data = append(data, []any{
			report.RunID,
			mode,
			m.Threshold,
			uint32(report.Examples),
			uint32(m.TP), uint32(m.FP), uint32(m.FN),
			m.Precision, m.Recall, m.F1,
			now,
		})
	}

	err := w.CH.Insert(ctx, `eval_metrics
		(run_id, mode, threshold, examples, tp, fp, fn, precision, recall, f1, created_at)`, data)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "eval.metrics.write")
	}
	return nil
}
