// Package repo provides the corpus and detections repositories
package repo

import (
	"context"
	"fmt"
	"strings"

	"deyimci/internal/modkit/repokit"
	perr "deyimci/internal/platform/errors"
	"deyimci/internal/services/detect/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the detect repositories
type Storage interface {
	List(ctx context.Context, in domain.ListInput) ([]domain.CorpusText, domain.AfterKey, error)
	WriteBatch(ctx context.Context, xs []domain.DetectionWrite) (int, error)
	InsertText(ctx context.Context, id, body string) error
}

// List pages corpus texts in id order using a keyset cursor
func (s *pg) List(ctx context.Context, in domain.ListInput) ([]domain.CorpusText, domain.AfterKey, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT t.id::text, t.body, t.created_at
		FROM corpus_texts t
	`)
	if in.After.ID != "" {
		sb.WriteString("WHERE t.id > " + arg(in.After.ID) + "::uuid\n")
	}
	sb.WriteString("ORDER BY t.id\nLIMIT " + arg(in.Limit))

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, domain.AfterKey{}, perr.FromPG(err, "corpus.list")
	}
	defer rows.Close()

	out := make([]domain.CorpusText, 0, in.Limit)
	var last domain.AfterKey
	for rows.Next() {
		var t domain.CorpusText
		if err := rows.Scan(&t.ID, &t.Body, &t.CreatedAt); err != nil {
			return nil, domain.AfterKey{}, perr.FromPG(err, "corpus.list.scan")
		}
		out = append(out, t)
		last.ID = t.ID
	}
	if err := rows.Err(); err != nil {
		return nil, domain.AfterKey{}, perr.FromPG(err, "corpus.list.rows")
	}
	return out, last, nil
}

// WriteBatch inserts detection rows, duplicate spans for the same run are dropped
func (s *pg) WriteBatch(ctx context.Context, xs []domain.DetectionWrite) (int, error) {
	if len(xs) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO detections
		(run_id, text_id, idiom_id, char_start, char_end,
		probability, is_idiomatic, mode, threshold, created_at) VALUES `)

	args := make([]any, 0, len(xs)*10)
	for i, d := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*10 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4,
			base+5, base+6, base+7, base+8, base+9)

		args = append(args,
			d.RunID, d.TextID, d.IdiomID, d.CharStart, d.CharEnd,
			d.Probability, d.IsIdiomatic, d.Mode, d.Threshold, d.CreatedAt,
		)
	}
	sb.WriteString(` ON CONFLICT (run_id, text_id, idiom_id, char_start, char_end) DO NOTHING`)

	tag, err := s.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, perr.FromPG(err, "detections.write")
	}
	return int(tag.RowsAffected()), nil
}

// InsertText stores one corpus text, duplicate ids are rejected
func (s *pg) InsertText(ctx context.Context, id, body string) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO corpus_texts (id, body) VALUES ($1::uuid, $2)`, id, body)
	if err != nil {
		return perr.FromPG(err, "corpus.insert")
	}
	return nil
}
