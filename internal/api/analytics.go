package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/keepsake-io/keepsake/internal/analytics"
	"github.com/keepsake-io/keepsake/internal/cache"
)

// elderAnalyticsResponse is the combined dashboard payload for one elder.
type elderAnalyticsResponse struct {
	ElderID           int64                       `json:"elder_id"`
	ElderName         string                      `json:"elder_name"`
	Overview          analytics.OverviewStats     `json:"overview"`
	TimelineAnalysis  analytics.TimelineAnalysis  `json:"timeline_analysis"`
	ContentAnalysis   analytics.ContentAnalysis   `json:"content_analysis"`
	EmotionalInsights analytics.EmotionalInsights `json:"emotional_insights"`
	EngagementMetrics analytics.EngagementMetrics `json:"engagement_metrics"`
	QualityMetrics    analytics.QualityMetrics    `json:"quality_metrics"`
}

func (h *Handler) elderAnalytics(w http.ResponseWriter, r *http.Request) {
	elderID, err := pathID(r, "elderID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if payload, ok := h.cached(r, elderID, "analytics"); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
		return
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

	resp := elderAnalyticsResponse{
		ElderID:           elderID,
		ElderName:         elder.Name,
		Overview:          analytics.Overview(memories),
		TimelineAnalysis:  analytics.AnalyzeTimeline(memories),
		ContentAnalysis:   analytics.AnalyzeContent(memories),
		EmotionalInsights: analytics.AnalyzeEmotions(memories),
		EngagementMetrics: analytics.Engagement(memories),
		QualityMetrics:    analytics.Quality(memories),
	}
	h.remember(r, elderID, "analytics", resp)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) recentActivity(w http.ResponseWriter, r *http.Request) {
	elderID, err := pathID(r, "elderID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	days := queryInt(r, "days", 30)
	if days < 1 || days > 365 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "days must be between 1 and 365"})
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
	writeJSON(w, http.StatusOK, analytics.AnalyzeRecentActivity(memories, h.now(), days))
}

func (h *Handler) globalStats(w http.ResponseWriter, r *http.Request) {
	elders, err := h.store.ListElders(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	memories, err := h.store.ListAll(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.Global(elders, memories))
}

// cached returns a previously rendered payload for the elder's view.
func (h *Handler) cached(r *http.Request, elderID int64, view string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	payload, err := h.cache.Get(r.Context(), cache.Key(elderID, view))
	if err != nil {
		return nil, false
	}
	return payload, true
}

// remember stores a rendered payload under the elder's view key.
func (h *Handler) remember(r *http.Request, elderID int64, view string, v any) {
	if h.cache == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := h.cache.Set(r.Context(), cache.Key(elderID, view), payload); err != nil {
		h.logger.Warn("cache store failed", zap.Int64("elder_id", elderID), zap.Error(err))
	}
}
