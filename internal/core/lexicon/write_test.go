package lexicon

import (
	"bytes"
	"strings"
	"testing"

	perr "deyimci/internal/platform/errors"
)

func TestWritePack_RoundTrip(t *testing.T) {
	t.Parallel()

	src := strings.NewReader("deyim;anlam\neli kulağında;çok yaklaşmış olmak\ngöz kulak olmak;korumak\n")
	entries, err := FromTabular(src)
	if err != nil {
		t.Fatalf("FromTabular: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePack(&buf, entries, map[string]any{"source": "test"}); err != nil {
		t.Fatalf("WritePack: %v", err)
	}

	lex, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lex.Size() != 2 {
		t.Fatalf("size = %d, want 2", lex.Size())
	}
	e, ok := lex.ByID(1)
	if !ok || e.Surface != "eli kulağında" {
		t.Fatalf("entry 1 = %+v", e)
	}
}

func TestWritePack_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	entries := []*Entry{
		{ID: 1, Surface: "eli kulağında", Tokens: []string{"eli", "kulağında"}},
		{ID: 2, Surface: "Eli Kulağında", Tokens: []string{"eli", "kulağında"}},
	}
	var buf bytes.Buffer
	err := WritePack(&buf, entries, nil)
	if !perr.IsCode(err, perr.ErrorCodeDuplicateEntry) {
		t.Fatalf("want duplicate entry error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatal("nothing must be written on validation failure")
	}
}
