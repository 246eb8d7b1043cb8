package lexicon

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"deyimci/internal/core/normalize"
)

// column headers recognized during inference, folded forms
var (
	surfaceHeaders    = []string{"deyim", "atasözü", "atasozu", "ifade", "surface", "idiom", "text"}
	definitionHeaders = []string{"anlam", "anlamı", "açıklama", "aciklama", "definition", "meaning"}
	kindHeaders       = []string{"tür", "tur", "kind", "type"}
)

// FromTabular reads a delimited idiom table and returns entries in file order
// The delimiter (comma, semicolon, or tab) and the column layout are inferred
// from the first line. Without a recognizable header the first column is the
// surface form and the second, when present, the definition
func FromTabular(r io.Reader) ([]*Entry, error) {
	br := bufio.NewReader(r)

	first, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("lexicon: read table: %w", err)
	}
	delim := sniffDelim(string(first))

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("lexicon: parse table: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	n := normalize.New()
	surfaceCol, defCol, kindCol, hasHeader := inferColumns(n, records[0])

	rows := records
	if hasHeader {
		rows = records[1:]
	}

	entries := make([]*Entry, 0, len(rows))
	id := 0
	for _, rec := range rows {
		if surfaceCol >= len(rec) {
			continue
		}
		surface := strings.TrimSpace(rec[surfaceCol])
		if surface == "" {
			continue
		}
		id++
		e := &Entry{
			ID:      id,
			Surface: surface,
			Tokens:  n.FoldTokens(surface),
			Kind:    "idiom",
		}
		if defCol >= 0 && defCol < len(rec) {
			e.Definition = strings.TrimSpace(rec[defCol])
		}
		if kindCol >= 0 && kindCol < len(rec) {
			if k := strings.TrimSpace(rec[kindCol]); k != "" {
				e.Kind = foldKind(n, k)
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// sniffDelim picks the delimiter with the most occurrences on the first line
func sniffDelim(sample string) rune {
	if i := strings.IndexByte(sample, '\n'); i >= 0 {
		sample = sample[:i]
	}
	best, bestCount := ',', strings.Count(sample, ",")
	if c := strings.Count(sample, ";"); c > bestCount {
		best, bestCount = ';', c
	}
	if c := strings.Count(sample, "\t"); c > bestCount {
		best = '\t'
	}
	return best
}

// inferColumns matches the first record against known header names
func inferColumns(n *normalize.Normalizer, header []string) (surface, def, kind int, hasHeader bool) {
	surface, def, kind = 0, -1, -1

	match := func(cell string, names []string) bool {
		folded := n.Fold(strings.TrimSpace(cell))
		for _, name := range names {
			if folded == name {
				return true
			}
		}
		return false
	}

	for i, cell := range header {
		switch {
		case match(cell, surfaceHeaders):
			surface = i
			hasHeader = true
		case match(cell, definitionHeaders):
			def = i
			hasHeader = true
		case match(cell, kindHeaders):
			kind = i
			hasHeader = true
		}
	}
	if !hasHeader {
		// positional fallback: surface then definition
		surface = 0
		if len(header) > 1 {
			def = 1
		}
	}
	return surface, def, kind, hasHeader
}

func foldKind(n *normalize.Normalizer, k string) string {
	switch n.Fold(k) {
	case "atasözü", "atasozu", "proverb":
		return "proverb"
	default:
		return "idiom"
	}
}
