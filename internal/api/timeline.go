package api

import (
	"errors"
	"net/http"

	"github.com/keepsake-io/keepsake/internal/timeline"
)

// timelineResponse wraps the grouped buckets with their owner context.
type timelineResponse struct {
	ElderID       int64             `json:"elder_id"`
	ElderName     string            `json:"elder_name"`
	GroupBy       timeline.Strategy `json:"group_by"`
	TotalMemories int               `json:"total_memories"`
	Timeline      []timeline.Bucket `json:"timeline"`
}

func (h *Handler) elderTimeline(w http.ResponseWriter, r *http.Request) {
	elderID, err := pathID(r, "elderID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	strategy := timeline.Strategy(r.URL.Query().Get("group_by"))
	if strategy == "" {
		strategy = timeline.GroupByDecade
	}

	elder, err := h.store.GetElder(r.Context(), elderID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	memories, err := h.store.ListByElder(r.Context(), elderID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	buckets, err := timeline.Group(memories, strategy)
	if err != nil {
		if errors.Is(err, timeline.ErrInvalidGroupBy) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, timelineResponse{
		ElderID:       elderID,
		ElderName:     elder.Name,
		GroupBy:       strategy,
		TotalMemories: len(memories),
		Timeline:      buckets,
	})
}

func (h *Handler) timelineStats(w http.ResponseWriter, r *http.Request) {
	elderID, err := pathID(r, "elderID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if _, err := h.store.GetElder(r.Context(), elderID); err != nil {
		writeStoreError(w, err)
		return
	}
	memories, err := h.store.ListByElder(r.Context(), elderID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, timeline.ComputeStats(memories))
}
