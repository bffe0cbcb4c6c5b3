package server

import (
	"net/http"
	"time"
)

type sessionRequest struct {
	IssueNumber *int    `json:"issueNumber"`
	Repository  string  `json:"repository"`
	UserID      *string `json:"userId"`
	Description string  `json:"description"`
}

// validate checks the fields every session operation needs.
func (req *sessionRequest) validate(h *Handler, w http.ResponseWriter) bool {
	if req.IssueNumber == nil {
		h.badRequest(w, "issueNumber is required")
		return false
	}
	if req.UserID == nil || *req.UserID == "" {
		h.badRequest(w, "userId is required")
		return false
	}
	return true
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !h.decode(w, r, &req) || !req.validate(h, w) {
		return
	}

	sess, err := h.time.StartSession(*req.IssueNumber, req.Repository, *req.UserID, req.Description)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"session": sess})
}

func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !h.decode(w, r, &req) || !req.validate(h, w) {
		return
	}

	// A missing session is an expected steady state, not an error.
	sess := h.time.PauseSession(*req.IssueNumber, req.Repository, *req.UserID)
	h.writeJSON(w, http.StatusOK, map[string]any{"session": sess})
}

func (h *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !h.decode(w, r, &req) || !req.validate(h, w) {
		return
	}

	sess := h.time.ResumeSession(*req.IssueNumber, req.Repository, *req.UserID)
	h.writeJSON(w, http.StatusOK, map[string]any{"session": sess})
}

func (h *Handler) handleStop(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !h.decode(w, r, &req) || !req.validate(h, w) {
		return
	}

	entry, err := h.time.StopSession(*req.IssueNumber, req.Repository, *req.UserID)
	if err != nil {
		h.logger.Error("failed to stop session", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

type entryRequest struct {
	IssueNumber     *int      `json:"issueNumber"`
	Repository      string    `json:"repository"`
	UserID          *string   `json:"userId"`
	DurationMinutes *int      `json:"durationMinutes"`
	Description     string    `json:"description"`
	StartTime       time.Time `json:"startTime"`
	Tags            []string  `json:"tags"`
}

func (h *Handler) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if !h.decode(w, r, &req) {
		return
	}
	switch {
	case req.IssueNumber == nil:
		h.badRequest(w, "issueNumber is required")
		return
	case req.UserID == nil || *req.UserID == "":
		h.badRequest(w, "userId is required")
		return
	case req.DurationMinutes == nil:
		h.badRequest(w, "durationMinutes is required")
		return
	}

	entry, err := h.time.AddEntry(*req.IssueNumber, req.Repository, *req.UserID,
		*req.DurationMinutes, req.Description, req.StartTime, req.Tags)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("user")

	end := time.Now()
	start := end.AddDate(0, 0, -7)
	if v := q.Get("from"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			h.badRequest(w, "invalid from: "+err.Error())
			return
		}
		start = t
	}
	if v := q.Get("to"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			h.badRequest(w, "invalid to: "+err.Error())
			return
		}
		end = t
	}

	rep, err := h.time.Report(userID, start, end)
	if err != nil {
		h.logger.Error("failed to build report", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"report": rep})
}

// parseTimeParam accepts RFC3339 timestamps or bare dates.
func parseTimeParam(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
