package api

import (
	"fmt"
	"net/http"

	"github.com/keepsake-io/keepsake/internal/export"
	"github.com/keepsake-io/keepsake/internal/record"
)

func (h *Handler) exportJSON(w http.ResponseWriter, r *http.Request) {
	elder, memories, opts, ok := h.exportInput(w, r)
	if !ok {
		return
	}
	data, err := export.JSON(elder, memories, opts, h.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	serveDownload(w, data, "application/json", export.Filename(elder, "json", h.now()))
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	elder, memories, opts, ok := h.exportInput(w, r)
	if !ok {
		return
	}
	data, err := export.CSV(elder, memories, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	serveDownload(w, data, "text/csv", export.Filename(elder, "csv", h.now()))
}

func (h *Handler) exportMarkdown(w http.ResponseWriter, r *http.Request) {
	elder, memories, opts, ok := h.exportInput(w, r)
	if !ok {
		return
	}
	data := export.Markdown(elder, memories, opts, h.now())
	serveDownload(w, data, "text/markdown", export.Filename(elder, "md", h.now()))
}

func (h *Handler) exportAudioCompilation(w http.ResponseWriter, r *http.Request) {
	elder, memories, opts, ok := h.exportInput(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, export.CompileAudio(elder, memories, opts.Category))
}

// exportInput loads the elder and their collection and reads the shared
// export query parameters. The include flags default to on.
func (h *Handler) exportInput(w http.ResponseWriter, r *http.Request) (*record.ElderProfile, []record.MemoryRecord, export.Options, bool) {
	elderID, err := pathID(r, "elderID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, nil, export.Options{}, false
	}
	elder, err := h.store.GetElder(r.Context(), elderID)
	if err != nil {
		writeStoreError(w, err)
		return nil, nil, export.Options{}, false
	}
	memories, err := h.store.ListByElder(r.Context(), elderID)
	if err != nil {
		writeStoreError(w, err)
		return nil, nil, export.Options{}, false
	}

	q := r.URL.Query()
	opts := export.Options{
		Category:              q.Get("category"),
		IncludeAudioURLs:      q.Get("include_audio_urls") != "false",
		IncludeTranscriptions: q.Get("include_transcriptions") != "false",
	}
	return elder, memories, opts, true
}

func serveDownload(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
