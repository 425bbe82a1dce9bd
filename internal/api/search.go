package api

import (
	"errors"
	"net/http"

	"github.com/keepsake-io/keepsake/internal/search"
)

func (h *Handler) searchMemories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := search.Params{
		Query:         q.Get("q"),
		ElderID:       queryInt64(r, "elder_id"),
		Category:      q.Get("category"),
		Era:           q.Get("era"),
		Decade:        q.Get("decade"),
		EmotionalTone: q.Get("emotional_tone"),
		Location:      q.Get("location"),
		DateFrom:      q.Get("date_from"),
		DateTo:        q.Get("date_to"),
		Page:          queryInt(r, "page", 1),
		PageSize:      queryInt(r, "page_size", 20),
		Sort:          search.Order(q.Get("sort")),
	}

	memories, err := h.store.ListAll(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	resp, err := search.Search(memories, params)
	if err != nil {
		if errors.Is(err, search.ErrQueryTooShort) || errors.Is(err, search.ErrInvalidDateRange) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) suggestTitles(w http.ResponseWriter, r *http.Request) {
	memories, err := h.store.ListAll(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	suggestions, err := search.Suggest(memories, r.URL.Query().Get("q"), queryInt64(r, "elder_id"), queryInt(r, "limit", 10))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"suggestions": suggestions})
}
