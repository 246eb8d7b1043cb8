package repo

import (
	"strings"
	"testing"

	perr "deyimci/internal/platform/errors"
)

func TestReadJSONL(t *testing.T) {
	t.Parallel()

	in := strings.TrimSpace(`
{"id":"ex-1","text":"eli kulağında","gold":[{"idiom_id":1,"char_start":0,"char_end":13}]}

{"text":"burada deyim yok"}
`)
	got, err := ReadJSONL(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSONL: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 examples, got %d", len(got))
	}
	if got[0].ID != "ex-1" || len(got[0].Gold) != 1 || got[0].Gold[0].IdiomID != 1 {
		t.Fatalf("first example mismatch: %+v", got[0])
	}
	if got[1].ID != "3" {
		t.Fatalf("missing ids fall back to the line number, got %q", got[1].ID)
	}
	if len(got[1].Gold) != 0 {
		t.Fatalf("negative example must carry no gold spans: %+v", got[1])
	}
}

func TestReadJSONL_BadLine(t *testing.T) {
	t.Parallel()

	_, err := ReadJSONL(strings.NewReader(`{"text":`))
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want json error, got %v", err)
	}
}

func TestReadJSONL_MissingText(t *testing.T) {
	t.Parallel()

	_, err := ReadJSONL(strings.NewReader(`{"id":"x","gold":[]}`))
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}

func TestReadJSONL_Empty(t *testing.T) {
	t.Parallel()

	got, err := ReadJSONL(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadJSONL: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want no examples, got %d", len(got))
	}
}
