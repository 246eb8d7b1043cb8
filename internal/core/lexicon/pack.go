// Package lexicon loads and indexes the embedded Turkish idiom pack.
// It builds the first token and length indexes the matcher scans against
package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"deyimci/internal/core/normalize"
	perr "deyimci/internal/platform/errors"
)

//go:embed lexicon.json
var embedded []byte

type rawEntry struct {
	ID         int    `json:"id"`
	Surface    string `json:"surface"`
	Definition string `json:"definition,omitempty"`
	Kind       string `json:"kind,omitempty"`
}

type rawPack struct {
	Version int            `json:"version"`
	Meta    map[string]any `json:"meta,omitempty"`
	Idioms  []rawEntry     `json:"idioms"`
}

// Entry is one idiom or proverb, immutable after load
type Entry struct {
	// ID is the stable identifier used in detections and gold labels
	ID int
	// Surface is the canonical surface form as written
	Surface string
	// Tokens is the folded token sequence of the canonical form
	Tokens []string
	// Definition is the gloss, may be empty
	Definition string
	// Kind is "idiom" or "proverb"
	Kind string
}

// Len returns the canonical token count
func (e *Entry) Len() int { return len(e.Tokens) }

// Key returns the folded canonical form used for duplicate detection
func (e *Entry) Key() string { return strings.Join(e.Tokens, " ") }

// Lexicon is an immutable indexed idiom dictionary
// safe for concurrent readers after New returns
type Lexicon struct {
	entries []*Entry
	byKey   map[string]*Entry
	byID    map[int]*Entry
	byFirst map[string][]*Entry
	byLen   map[int][]*Entry
	maxLen  int
}

// Load builds the lexicon from the embedded pack
func Load() (*Lexicon, error) {
	return Parse(embedded)
}

// Parse builds the lexicon from pack JSON bytes
func Parse(data []byte) (*Lexicon, error) {
	var rp rawPack
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, fmt.Errorf("lexicon: parse pack: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("lexicon: unsupported pack version %d (want 1)", rp.Version)
	}

	n := normalize.New()
	entries := make([]*Entry, 0, len(rp.Idioms))
	for i, r := range rp.Idioms {
		id := r.ID
		if id == 0 {
			id = i + 1
		}
		kind := r.Kind
		if kind == "" {
			kind = "idiom"
		}
		entries = append(entries, &Entry{
			ID:         id,
			Surface:    r.Surface,
			Tokens:     n.FoldTokens(r.Surface),
			Definition: r.Definition,
			Kind:       kind,
		})
	}
	return New(entries)
}

// New indexes entries into an immutable Lexicon
// duplicate canonical forms are rejected, silent merges would corrupt
// idiom identity used downstream for evaluation labels
func New(entries []*Entry) (*Lexicon, error) {
	lex := &Lexicon{
		byKey:   make(map[string]*Entry, len(entries)),
		byID:    make(map[int]*Entry, len(entries)),
		byFirst: make(map[string][]*Entry, len(entries)),
		byLen:   make(map[int][]*Entry, 8),
	}

	for _, e := range entries {
		if len(e.Tokens) == 0 {
			return nil, perr.InvalidArgf("lexicon: entry %d (%q) has no tokens", e.ID, e.Surface)
		}
		key := e.Key()
		if prev, dup := lex.byKey[key]; dup {
			return nil, perr.DuplicateEntryf(
				"lexicon: duplicate canonical form %q (ids %d and %d)", key, prev.ID, e.ID)
		}
		if prev, dup := lex.byID[e.ID]; dup {
			return nil, perr.DuplicateEntryf(
				"lexicon: duplicate id %d (%q and %q)", e.ID, prev.Surface, e.Surface)
		}
		lex.byKey[key] = e
		lex.byID[e.ID] = e
		lex.entries = append(lex.entries, e)
		lex.byFirst[e.Tokens[0]] = append(lex.byFirst[e.Tokens[0]], e)
		lex.byLen[e.Len()] = append(lex.byLen[e.Len()], e)
		if e.Len() > lex.maxLen {
			lex.maxLen = e.Len()
		}
	}

	// stable bucket order keeps downstream candidate order deterministic
	sort.Slice(lex.entries, func(i, j int) bool { return lex.entries[i].ID < lex.entries[j].ID })
	for _, bucket := range lex.byFirst {
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].ID < bucket[j].ID })
	}
	for _, bucket := range lex.byLen {
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].ID < bucket[j].ID })
	}

	return lex, nil
}

// LookupByFirstToken returns entries whose canonical form starts with tok
// the returned slice is shared and must not be mutated
func (l *Lexicon) LookupByFirstToken(tok string) []*Entry {
	return l.byFirst[tok]
}

// EntriesOfLength returns entries whose canonical form has n tokens
func (l *Lexicon) EntriesOfLength(n int) []*Entry {
	return l.byLen[n]
}

// ByID returns the entry with the given id
func (l *Lexicon) ByID(id int) (*Entry, bool) {
	e, ok := l.byID[id]
	return e, ok
}

// All returns every entry ordered by id
func (l *Lexicon) All() []*Entry { return l.entries }

// Size returns the number of entries
func (l *Lexicon) Size() int { return len(l.entries) }

// MaxLen returns the longest canonical token count
func (l *Lexicon) MaxLen() int { return l.maxLen }
