package lexicon

import (
	"strings"
	"testing"

	perr "deyimci/internal/platform/errors"
)

func TestLoad_EmbeddedPack(t *testing.T) {
	t.Parallel()

	lex, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lex.Size() == 0 {
		t.Fatal("embedded pack is empty")
	}

	e, ok := lex.ByID(1)
	if !ok {
		t.Fatal("entry 1 missing")
	}
	if e.Surface != "eli kulağında" {
		t.Fatalf("unexpected surface for id 1: %q", e.Surface)
	}
	if len(e.Tokens) != 2 || e.Tokens[0] != "eli" || e.Tokens[1] != "kulağında" {
		t.Fatalf("unexpected tokens: %#v", e.Tokens)
	}
}

func TestLoad_IndexesAreConsistent(t *testing.T) {
	t.Parallel()

	lex, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, e := range lex.All() {
		bucket := lex.LookupByFirstToken(e.Tokens[0])
		found := false
		for _, b := range bucket {
			if b.ID == e.ID {
				found = true
			}
		}
		if !found {
			t.Fatalf("entry %d missing from first token bucket %q", e.ID, e.Tokens[0])
		}

		byLen := lex.EntriesOfLength(e.Len())
		found = false
		for _, b := range byLen {
			if b.ID == e.ID {
				found = true
			}
		}
		if !found {
			t.Fatalf("entry %d missing from length bucket %d", e.ID, e.Len())
		}
	}
}

func TestNew_DuplicateCanonicalFormRejected(t *testing.T) {
	t.Parallel()

	entries := []*Entry{
		{ID: 1, Surface: "göz boyamak", Tokens: []string{"göz", "boyamak"}},
		{ID: 2, Surface: "Göz Boyamak", Tokens: []string{"göz", "boyamak"}},
	}
	_, err := New(entries)
	if err == nil {
		t.Fatal("expected DuplicateEntry error")
	}
	if !perr.IsCode(err, perr.ErrorCodeDuplicateEntry) {
		t.Fatalf("wrong error code: %v", err)
	}
}

func TestNew_DuplicateIDRejected(t *testing.T) {
	t.Parallel()

	entries := []*Entry{
		{ID: 1, Surface: "göz boyamak", Tokens: []string{"göz", "boyamak"}},
		{ID: 1, Surface: "kafa yormak", Tokens: []string{"kafa", "yormak"}},
	}
	_, err := New(entries)
	if err == nil {
		t.Fatal("expected DuplicateEntry error for duplicate id")
	}
	if !perr.IsCode(err, perr.ErrorCodeDuplicateEntry) {
		t.Fatalf("wrong error code: %v", err)
	}
}

func TestNew_EmptyEntryRejected(t *testing.T) {
	t.Parallel()

	_, err := New([]*Entry{{ID: 1, Surface: "", Tokens: nil}})
	if err == nil {
		t.Fatal("expected error for empty entry")
	}
}

func TestNew_BucketsSortedByID(t *testing.T) {
	t.Parallel()

	entries := []*Entry{
		{ID: 9, Surface: "göz boyamak", Tokens: []string{"göz", "boyamak"}},
		{ID: 3, Surface: "göz göze gelmek", Tokens: []string{"göz", "göze", "gelmek"}},
		{ID: 5, Surface: "göz atmak", Tokens: []string{"göz", "atmak"}},
	}
	lex, err := New(entries)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	bucket := lex.LookupByFirstToken("göz")
	if len(bucket) != 3 {
		t.Fatalf("bucket size = %d, want 3", len(bucket))
	}
	for i := 1; i < len(bucket); i++ {
		if bucket[i-1].ID >= bucket[i].ID {
			t.Fatalf("bucket not sorted by id: %d before %d", bucket[i-1].ID, bucket[i].ID)
		}
	}
}

func TestParse_BadVersion(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{"version": 99, "idioms": []}`))
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected version error, got %v", err)
	}
}
