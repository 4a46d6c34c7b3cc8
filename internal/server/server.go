// Package server exposes the HTTP API for starting runs and fetching their
// results. It is a thin layer over the launcher: all validation and
// orchestration semantics live below it.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ahrav/go-newsdesk/internal/domain"
	"github.com/ahrav/go-newsdesk/internal/launcher"
	"github.com/ahrav/go-newsdesk/internal/presentation"
)

// resultPollTimeout bounds how long a result request waits for a still
// running workflow before reporting it as in progress.
const resultPollTimeout = 2 * time.Second

// Server handles the run HTTP API.
type Server struct {
	launcher *launcher.Launcher
	logger   *slog.Logger
}

// New creates a server over the given launcher.
func New(l *launcher.Launcher) *Server {
	return &Server{
		launcher: l,
		logger:   slog.Default().With("component", "server"),
	}
}

// Router builds the chi router with all run routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Post("/runs", s.handleStartRun)
	r.Get("/runs/{id}", s.handleGetRun)
	r.Get("/runs/{id}/articles/{site}", s.handleGetArticle)
	r.Get("/runs/{id}/variants/{style}/drafts/{round}", s.handleGetDraft)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// startRunRequest is the POST /runs payload.
type startRunRequest struct {
	SourceText  string   `json:"source_text"`
	SourceURL   string   `json:"source_url,omitempty"`
	StyleIDs    []string `json:"style_ids,omitempty"`
	RequestedBy string   `json:"requested_by,omitempty"`
}

// handleStartRun starts a run asynchronously and returns its identifier.
func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	var body startRunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	principal := domain.Principal{Type: domain.PrincipalUser, ID: body.RequestedBy}
	if body.RequestedBy == "" {
		principal = domain.Principal{Type: domain.PrincipalService, ID: "api"}
	}

	req, _, err := s.launcher.StartRun(r.Context(), body.SourceText, body.SourceURL, body.StyleIDs, principal)
	if err != nil {
		if domain.IsUnknownStyle(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if errors.Is(err, domain.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("failed to start run", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to start run")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"run_id": req.ID,
		"status": "running",
	})
}

// handleGetRun returns the aggregated run result, or a running status while
// the workflow is still in flight.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")

	result, ok := s.pollResult(w, r, runID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetArticle returns one variant's final article export by site label.
func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	site := chi.URLParam(r, "site")

	result, ok := s.pollResult(w, r, runID)
	if !ok {
		return
	}

	for i := range result.Variants {
		v := &result.Variants[i]
		if v.Style.Site != site && v.Style.ID != site {
			continue
		}
		draft := v.FinalDraft()
		if draft == nil {
			writeError(w, http.StatusConflict, "variant failed, no article available")
			return
		}
		w.Header().Set("Content-Disposition",
			"attachment; filename="+presentation.ArticleFileName(v.Style.Site, "json"))
		writeJSON(w, http.StatusOK, map[string]any{
			"site":    v.Style.Site,
			"draft":   draft,
			"report":  v.FinalReport(),
			"revised": v.Revised(),
		})
		return
	}

	writeError(w, http.StatusNotFound, "no such variant in run")
}

// handleGetDraft downloads one draft by style and round. Round 1 is the
// original draft, round 2 the revised one when the variant took that branch.
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	styleID := chi.URLParam(r, "style")

	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil || !domain.IsValidRound(domain.Round(round)) {
		writeError(w, http.StatusBadRequest, "round must be 1 or 2")
		return
	}

	result, ok := s.pollResult(w, r, runID)
	if !ok {
		return
	}

	v := result.Variant(styleID)
	if v == nil {
		writeError(w, http.StatusNotFound, "no such variant in run")
		return
	}

	draft := v.Draft1
	if domain.Round(round) == domain.RoundRevised {
		draft = v.Draft2
	}
	if draft == nil {
		writeError(w, http.StatusNotFound, "no draft for that round")
		return
	}

	w.Header().Set("Content-Disposition",
		"attachment; filename="+presentation.ArticleFileName(v.Style.Site, "json"))
	writeJSON(w, http.StatusOK, draft)
}

// pollResult fetches a run result with a bounded wait. Returns false after
// writing a response when the result is not available yet or fetching failed.
func (s *Server) pollResult(w http.ResponseWriter, r *http.Request, runID string) (*domain.RunResult, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), resultPollTimeout)
	defer cancel()

	result, err := s.launcher.Result(ctx, runID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			writeJSON(w, http.StatusAccepted, map[string]string{
				"run_id": runID,
				"status": "running",
			})
			return nil, false
		}
		s.logger.Error("failed to fetch run result", "run_id", runID, "error", err)
		writeError(w, http.StatusNotFound, "run not found or failed")
		return nil, false
	}
	return result, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
