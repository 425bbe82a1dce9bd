// Package api exposes the HTTP surface of the service: elder and memory
// CRUD, analytics, timeline, search and export endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/keepsake-io/keepsake/internal/cache"
	"github.com/keepsake-io/keepsake/internal/record"
	"github.com/keepsake-io/keepsake/internal/store"
)

// Storage is the persistence surface the handlers need. *store.Store
// satisfies it; tests swap in an in-memory fake.
type Storage interface {
	CreateElder(ctx context.Context, e *record.ElderProfile) (int64, error)
	GetElder(ctx context.Context, id int64) (*record.ElderProfile, error)
	ListElders(ctx context.Context) ([]record.ElderProfile, error)
	UpdateElder(ctx context.Context, e *record.ElderProfile) error
	DeleteElder(ctx context.Context, id int64) error

	CreateMemory(ctx context.Context, m *record.MemoryRecord) (int64, error)
	GetMemory(ctx context.Context, id int64) (*record.MemoryRecord, error)
	ListMemories(ctx context.Context, f store.MemoryFilter) ([]record.MemoryRecord, int, error)
	UpdateMemory(ctx context.Context, m *record.MemoryRecord) error
	DeleteMemory(ctx context.Context, id int64) error
	RecordShare(ctx context.Context, id int64) (int, error)
	ListByElder(ctx context.Context, elderID int64) ([]record.MemoryRecord, error)
	ListAll(ctx context.Context) ([]record.MemoryRecord, error)
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	store  Storage
	cache  *cache.Cache // nil disables caching
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a new API handler. The cache may be nil.
func NewHandler(storage Storage, c *cache.Cache, logger *zap.Logger) *Handler {
	return &Handler{store: storage, cache: c, logger: logger, now: time.Now}
}

// Router builds the chi router with all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.healthCheck)

		r.Get("/elders", h.listElders)
		r.Post("/elders", h.createElder)
		r.Get("/elders/{elderID}", h.getElder)
		r.Put("/elders/{elderID}", h.updateElder)
		r.Delete("/elders/{elderID}", h.deleteElder)

		r.Get("/memories", h.listMemories)
		r.Post("/memories", h.createMemory)
		r.Get("/memories/{id}", h.getMemory)
		r.Put("/memories/{id}", h.updateMemory)
		r.Delete("/memories/{id}", h.deleteMemory)
		r.Post("/memories/{id}/share", h.shareMemory)

		// Analytics routes
		r.Get("/elders/{elderID}/analytics", h.elderAnalytics)
		r.Get("/elders/{elderID}/analytics/recent-activity", h.recentActivity)
		r.Get("/analytics/global", h.globalStats)

		// Timeline routes
		r.Get("/elders/{elderID}/timeline", h.elderTimeline)
		r.Get("/elders/{elderID}/timeline/stats", h.timelineStats)

		// Search routes
		r.Get("/search", h.searchMemories)
		r.Get("/search/suggestions", h.suggestTitles)

		// Export routes
		r.Get("/elders/{elderID}/export/json", h.exportJSON)
		r.Get("/elders/{elderID}/export/csv", h.exportCSV)
		r.Get("/elders/{elderID}/export/markdown", h.exportMarkdown)
		r.Get("/elders/{elderID}/export/audio-compilation", h.exportAudioCompilation)
	})

	return r
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "keepsake"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeStoreError maps store.ErrNotFound to 404 and everything else to 500.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func queryInt64(r *http.Request, name string) int64 {
	n, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
