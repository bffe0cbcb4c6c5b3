package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/higexxp/issuedash/internal/github"
	"github.com/higexxp/issuedash/internal/service"
)

type syncRequest struct {
	Repositories []string `json:"repositories"`
}

func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Repositories) == 0 {
		h.badRequest(w, "repositories is required and must be a non-empty array")
		return
	}

	g, err := h.sync.Sync(r.Context(), req.Repositories)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, service.ErrNoClient):
			status = http.StatusServiceUnavailable
		case github.IsNotFoundError(err):
			status = http.StatusNotFound
		case github.IsRateLimitError(err):
			status = http.StatusTooManyRequests
		}
		h.logger.Error("sync failed", "error", err)
		h.writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"graph":    g,
		"metadata": graphMetadata(g),
	})
}

// handleEvents streams change notifications as server-sent events.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if h.broadcaster == nil {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "events not available"})
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch, cancel := h.broadcaster.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-ch:
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("failed to marshal event", "error", err)
				continue
			}
			if _, err := w.Write([]byte("data: " + string(data) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
