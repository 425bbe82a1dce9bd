package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/keepsake-io/keepsake/internal/record"
)

func (h *Handler) createElder(w http.ResponseWriter, r *http.Request) {
	var e record.ElderProfile
	if err := decodeBody(r, &e); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if e.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	id, err := h.store.CreateElder(r.Context(), &e)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	created, err := h.store.GetElder(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	h.logger.Info("Elder created", zap.Int64("id", id), zap.String("name", e.Name))
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) listElders(w http.ResponseWriter, r *http.Request) {
	elders, err := h.store.ListElders(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if elders == nil {
		elders = []record.ElderProfile{}
	}
	writeJSON(w, http.StatusOK, elders)
}

func (h *Handler) getElder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "elderID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	elder, err := h.store.GetElder(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, elder)
}

func (h *Handler) updateElder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "elderID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var e record.ElderProfile
	if err := decodeBody(r, &e); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	e.ID = id
	if err := h.store.UpdateElder(r.Context(), &e); err != nil {
		writeStoreError(w, err)
		return
	}
	h.invalidate(r, id)
	updated, err := h.store.GetElder(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteElder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "elderID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.store.DeleteElder(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	h.invalidate(r, id)
	h.logger.Info("Elder deleted", zap.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// invalidate drops the elder's cached analytics after a write. Cache
// trouble is logged, never surfaced.
func (h *Handler) invalidate(r *http.Request, elderID int64) {
	if h.cache == nil {
		return
	}
	if err := h.cache.InvalidateElder(r.Context(), elderID); err != nil {
		h.logger.Warn("cache invalidation failed", zap.Int64("elder_id", elderID), zap.Error(err))
	}
}
