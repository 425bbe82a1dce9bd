package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/keepsake-io/keepsake/internal/record"
	"github.com/keepsake-io/keepsake/internal/store"
)

// memoryPage is the paginated list response for memories.
type memoryPage struct {
	Total    int                   `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
	Memories []record.MemoryRecord `json:"memories"`
}

func (h *Handler) createMemory(w http.ResponseWriter, r *http.Request) {
	var m record.MemoryRecord
	if err := decodeBody(r, &m); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if m.ElderID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "elder_id is required"})
		return
	}
	// The owning elder must exist and be live.
	if _, err := h.store.GetElder(r.Context(), m.ElderID); err != nil {
		writeStoreError(w, err)
		return
	}

	id, err := h.store.CreateMemory(r.Context(), &m)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	created, err := h.store.GetMemory(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	h.invalidate(r, m.ElderID)
	h.logger.Info("Memory created", zap.Int64("id", id), zap.Int64("elder_id", m.ElderID))
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) listMemories(w http.ResponseWriter, r *http.Request) {
	f := store.MemoryFilter{
		ElderID:  queryInt64(r, "elder_id"),
		Category: r.URL.Query().Get("category"),
		Era:      r.URL.Query().Get("era"),
		Search:   r.URL.Query().Get("search"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 20),
	}
	memories, total, err := h.store.ListMemories(r.Context(), f)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if memories == nil {
		memories = []record.MemoryRecord{}
	}
	writeJSON(w, http.StatusOK, memoryPage{
		Total:    total,
		Page:     f.Page,
		PageSize: f.PageSize,
		Memories: memories,
	})
}

func (h *Handler) getMemory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	m, err := h.store.GetMemory(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) updateMemory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var m record.MemoryRecord
	if err := decodeBody(r, &m); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	m.ID = id
	if err := h.store.UpdateMemory(r.Context(), &m); err != nil {
		writeStoreError(w, err)
		return
	}
	if m.ElderID != 0 {
		h.invalidate(r, m.ElderID)
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": "updated"})
}

func (h *Handler) deleteMemory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.store.DeleteMemory(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	h.logger.Info("Memory deleted", zap.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) shareMemory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	count, err := h.store.RecordShare(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "share_count": count})
}
