// Package server exposes the dashboard core over HTTP. Handlers validate
// request shape before any core algorithm runs; the core itself never
// fails for well-typed input.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/higexxp/issuedash/internal/deps"
	"github.com/higexxp/issuedash/internal/notify"
	"github.com/higexxp/issuedash/internal/service"
)

// Handler handles dashboard HTTP requests.
type Handler struct {
	deps        service.DependencyServiceInterface
	time        service.TimeServiceInterface
	sync        service.SyncServiceInterface
	broadcaster *notify.Broadcaster
	logger      *slog.Logger
}

// HandlerConfig holds the dependencies for creating a Handler.
type HandlerConfig struct {
	Dependencies service.DependencyServiceInterface
	Time         service.TimeServiceInterface
	Sync         service.SyncServiceInterface
	Broadcaster  *notify.Broadcaster
	Logger       *slog.Logger
}

// NewHandler creates a Handler with injected dependencies.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		deps:        cfg.Dependencies,
		time:        cfg.Time,
		sync:        cfg.Sync,
		broadcaster: cfg.Broadcaster,
		logger:      logger,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/dependencies/parse", h.handleParse)
	mux.HandleFunc("POST /api/dependencies/graph", h.handleGraph)
	mux.HandleFunc("POST /api/dependencies/validate", h.handleValidate)
	mux.HandleFunc("POST /api/dependencies/markdown", h.handleMarkdown)

	mux.HandleFunc("POST /api/time/start", h.handleStart)
	mux.HandleFunc("POST /api/time/pause", h.handlePause)
	mux.HandleFunc("POST /api/time/resume", h.handleResume)
	mux.HandleFunc("POST /api/time/stop", h.handleStop)
	mux.HandleFunc("POST /api/time/entries", h.handleAddEntry)
	mux.HandleFunc("GET /api/time/report", h.handleReport)

	mux.HandleFunc("POST /api/sync", h.handleSync)
	mux.HandleFunc("GET /api/events", h.handleEvents)
	mux.HandleFunc("GET /api/health", h.handleHealth)
}

// --- Dependency endpoints ---

type parseRequest struct {
	Body        *string `json:"body"`
	Repository  string  `json:"repository"`
	IssueNumber int     `json:"issueNumber"`
}

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Body == nil {
		h.badRequest(w, "body is required and must be a string")
		return
	}

	res := h.deps.Parse(*req.Body, req.Repository, req.IssueNumber)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"dependencies": emptyIfNil(res.Dependencies),
		"validation":   res.Validation,
		"parsedFrom":   "body",
	})
}

type graphRequest struct {
	Issues []graphIssue `json:"issues"`
}

type graphIssue struct {
	IssueNumber  *int                    `json:"issueNumber"`
	Repository   *string                 `json:"repository"`
	Title        string                  `json:"title"`
	State        string                  `json:"state"`
	Dependencies *[]deps.IssueDependency `json:"dependencies"`
}

func (h *Handler) handleGraph(w http.ResponseWriter, r *http.Request) {
	var req graphRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Issues == nil {
		h.badRequest(w, "issues is required and must be an array")
		return
	}

	inputs := make([]deps.IssueInput, 0, len(req.Issues))
	for i, in := range req.Issues {
		switch {
		case in.IssueNumber == nil:
			h.badRequest(w, fmt.Sprintf("issues[%d]: issueNumber is required", i))
			return
		case in.Repository == nil:
			h.badRequest(w, fmt.Sprintf("issues[%d]: repository is required", i))
			return
		case in.Dependencies == nil:
			h.badRequest(w, fmt.Sprintf("issues[%d]: dependencies is required", i))
			return
		}
		inputs = append(inputs, deps.IssueInput{
			IssueNumber:  *in.IssueNumber,
			Repository:   *in.Repository,
			Title:        in.Title,
			State:        in.State,
			Dependencies: *in.Dependencies,
		})
	}

	g := h.deps.BuildGraph(inputs)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"graph":    g,
		"metadata": graphMetadata(g),
	})
}

func graphMetadata(g *deps.Graph) map[string]any {
	return map[string]any{
		"totalNodes":     len(g.Nodes),
		"totalEdges":     len(g.Edges),
		"cyclesDetected": len(g.Cycles),
		"maxLevel":       g.MaxLevel(),
	}
}

type validateRequest struct {
	Dependencies *[]deps.IssueDependency `json:"dependencies"`
	IssueNumber  int                     `json:"issueNumber"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Dependencies == nil {
		h.badRequest(w, "dependencies is required and must be an array")
		return
	}
	for i, d := range *req.Dependencies {
		if d.Type != deps.DependsOn && d.Type != deps.Blocks {
			h.badRequest(w, fmt.Sprintf("dependencies[%d]: type must be depends_on or blocks", i))
			return
		}
		if d.IssueNumber == 0 {
			h.badRequest(w, fmt.Sprintf("dependencies[%d]: issueNumber is required", i))
			return
		}
	}

	v := h.deps.Validate(*req.Dependencies, req.IssueNumber)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"validation":   v,
		"dependencies": *req.Dependencies,
	})
}

func (h *Handler) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Dependencies == nil {
		h.badRequest(w, "dependencies is required and must be an array")
		return
	}

	md := h.deps.Markdown(*req.Dependencies)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"markdown":     md,
		"dependencies": *req.Dependencies,
	})
}

// --- Helpers ---

// decode parses the JSON request body. A malformed shape is a client
// error and never reaches the core.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		h.badRequest(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func emptyIfNil(d []deps.IssueDependency) []deps.IssueDependency {
	if d == nil {
		return []deps.IssueDependency{}
	}
	return d
}

// --- Health ---

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
