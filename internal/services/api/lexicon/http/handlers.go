// Package http provides read-only lexicon endpoints
package http

import (
	stdhttp "net/http"
	"strconv"

	"deyimci/internal/core/lexicon"
	perr "deyimci/internal/platform/errors"
	phttp "deyimci/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

// Deps are the handler dependencies
type Deps struct {
	Lex *lexicon.Lexicon
}

// Register mounts the lexicon routes
func Register(r phttp.Router, d Deps) {
	h := &handlers{lex: d.Lex}
	phttp.GetJSON(r, "/", h.list)
	phttp.GetJSON(r, "/{id}", h.get)
}

type handlers struct{ lex *lexicon.Lexicon }

// EntryResponse is one lexicon entry on the wire
type EntryResponse struct {
	ID         int      `json:"id"         example:"1"`
	Surface    string   `json:"surface"    example:"eli kulağında"`
	Tokens     []string `json:"tokens"`
	Definition string   `json:"definition,omitempty"`
	Kind       string   `json:"kind,omitempty" example:"idiom"`
}

// ListResponse carries the full entry set
type ListResponse struct {
	Count   int             `json:"count" example:"40"`
	Entries []EntryResponse `json:"entries"`
}

func toResponse(e *lexicon.Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Surface:    e.Surface,
		Tokens:     e.Tokens,
		Definition: e.Definition,
		Kind:       e.Kind,
	}
}

// @Summary List lexicon entries
// @Tags Lexicon
// @Produce json
// @Param kind query string false "filter by kind (idiom | proverb)"
// @Param len query int false "filter by canonical token count"
// @Success 200 {object} ListResponse "ok"
// @Router /lexicon [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	kind := r.URL.Query().Get("kind")

	pool := h.lex.All()
	if rawLen := r.URL.Query().Get("len"); rawLen != "" {
		n, err := strconv.Atoi(rawLen)
		if err != nil || n < 1 {
			return nil, perr.InvalidArgf("lexicon: bad len %q", rawLen)
		}
		pool = h.lex.EntriesOfLength(n)
	}

	out := make([]EntryResponse, 0, len(pool))
	for _, e := range pool {
		if kind != "" && e.Kind != kind {
			continue
		}
		out = append(out, toResponse(e))
	}
	return ListResponse{Count: len(out), Entries: out}, nil
}

// @Summary Fetch one lexicon entry by id
// @Tags Lexicon
// @Produce json
// @Param id path int true "entry id"
// @Success 200 {object} EntryResponse "ok"
// @Router /lexicon/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, perr.InvalidArgf("lexicon: bad id %q", raw)
	}
	e, ok := h.lex.ByID(id)
	if !ok {
		return nil, perr.NotFoundf("lexicon: entry %d", id)
	}
	return toResponse(e), nil
}
