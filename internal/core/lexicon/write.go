package lexicon

import (
	"encoding/json"
	"io"

	perr "deyimci/internal/platform/errors"
)

// WritePack serializes entries as a version 1 pack.
// Entries are validated through New first so a written pack always loads
func WritePack(w io.Writer, entries []*Entry, meta map[string]any) error {
	if _, err := New(entries); err != nil {
		return err
	}

	rp := rawPack{Version: 1, Meta: meta, Idioms: make([]rawEntry, 0, len(entries))}
	for _, e := range entries {
		rp.Idioms = append(rp.Idioms, rawEntry{
			ID:         e.ID,
			Surface:    e.Surface,
			Definition: e.Definition,
			Kind:       e.Kind,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rp); err != nil {
		return perr.JSONErrf("lexicon: write pack: %v", err)
	}
	return nil
}
