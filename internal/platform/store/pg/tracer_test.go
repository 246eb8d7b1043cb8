package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"select 1", "select 1"},
		{"  select   1  ", "select 1"},
		{"SELECT\t*\nFROM\r\tidioms WHERE  id =  $1", "SELECT * FROM idioms WHERE id = $1"},
		{"", ""},
	}
	for i, c := range cases {
		if got := compact(c.in); got != c.want {
			t.Fatalf("case %d: compact(%q) = %q, want %q", i, c.in, got, c.want)
		}
	}
}

func TestTracer_InfoAndWarnLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf))

	type logLine struct {
		Level     string  `json:"level"`
		ElapsedMS float64 `json:"elapsed_ms"`
		Slow      bool    `json:"slow"`
		SQL       string  `json:"sql"`
		Error     string  `json:"error"`
		Message   string  `json:"message"`
		Component string  `json:"component"`
	}

	ev := QueryEvent{
		SQL:     "SELECT  * \n FROM  corpus_texts\tWHERE id = $1",
		Args:    []any{"a1"},
		Elapsed: 2500 * time.Microsecond,
		Err:     errors.New("boom"),
	}
	tr.OnQuery(context.Background(), ev)

	var line logLine
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("unmarshal info log: %v\nraw=%s", err, buf.String())
	}
	if line.Level != "info" {
		t.Fatalf("expected level=info, got %q", line.Level)
	}
	if line.SQL != "SELECT * FROM corpus_texts WHERE id = $1" {
		t.Fatalf("sql not compacted: %q", line.SQL)
	}
	if line.Error != "boom" || line.Message != "pg query" || line.Component != "pg" {
		t.Fatalf("unexpected fields: %+v", line)
	}
	if line.ElapsedMS != 2.5 {
		t.Fatalf("elapsed_ms = %v, want 2.5", line.ElapsedMS)
	}

	buf.Reset()
	ev.Slow = true
	tr.OnQuery(context.Background(), ev)

	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("unmarshal warn log: %v\nraw=%s", err, buf.String())
	}
	if line.Level != "warn" || !line.Slow {
		t.Fatalf("expected warn slow line, got %+v", line)
	}
}
