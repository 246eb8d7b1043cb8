package normalize

import (
	"reflect"
	"testing"
)

func TestFold_TurkishCasing(t *testing.T) {
	t.Parallel()

	n := New()
	cases := []struct {
		in   string
		want string
	}{
		{"ELİ", "eli"},
		{"KULAĞINDA", "kulağında"},
		{"İstanbul", "istanbul"},
		{"IŞIK", "ışık"},
		{"Irmak", "ırmak"},
		{"", ""},
	}
	for _, c := range cases {
		if got := n.Fold(c.in); got != c.want {
			t.Fatalf("Fold(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFold_StripsFormatChars(t *testing.T) {
	t.Parallel()

	n := New()
	// zero width joiner inside a word must not survive folding
	in := "ka‍fa"
	if got := n.Fold(in); got != "kafa" {
		t.Fatalf("Fold(%q) = %q, want %q", in, got, "kafa")
	}
}

func TestFold_InvalidUTF8Dropped(t *testing.T) {
	t.Parallel()

	n := New()
	in := "abc\xff\xfedef"
	if got := n.Fold(in); got != "abcdef" {
		t.Fatalf("Fold dropped bytes wrong: %q", got)
	}
}

func TestTokenize_OffsetsAndNorms(t *testing.T) {
	t.Parallel()

	n := New()
	toks := n.Tokenize("Bugün yine eli kulağında oldu.")

	want := []Token{
		{Text: "Bugün", Norm: "bugün", Start: 0, End: 5},
		{Text: "yine", Norm: "yine", Start: 6, End: 10},
		{Text: "eli", Norm: "eli", Start: 11, End: 14},
		{Text: "kulağında", Norm: "kulağında", Start: 15, End: 24},
		{Text: "oldu", Norm: "oldu", Start: 25, End: 29},
	}
	if !reflect.DeepEqual(toks, want) {
		t.Fatalf("tokens mismatch\ngot  %#v\nwant %#v", toks, want)
	}
}

func TestTokenize_EmptyAndPunctOnly(t *testing.T) {
	t.Parallel()

	n := New()
	if got := n.Tokenize(""); got != nil {
		t.Fatalf("empty text should yield nil, got %#v", got)
	}
	if got := n.Tokenize("... !? --"); len(got) != 0 {
		t.Fatalf("punctuation only should yield no tokens, got %#v", got)
	}
}

func TestFoldTokens(t *testing.T) {
	t.Parallel()

	n := New()
	got := n.FoldTokens("  Eli   KULAĞINDA ")
	want := []string{"eli", "kulağında"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FoldTokens = %#v, want %#v", got, want)
	}
}

func TestNorms(t *testing.T) {
	t.Parallel()

	n := New()
	toks := n.Tokenize("Eli kulağında")
	got := Norms(toks)
	want := []string{"eli", "kulağında"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Norms = %#v, want %#v", got, want)
	}
}
