package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/murder-house/internal/session"
	"github.com/jwebster45206/murder-house/internal/storage"
	"github.com/jwebster45206/murder-house/pkg/api"
	"github.com/jwebster45206/murder-house/pkg/house"
)

// SessionService is implemented by *session.Manager.
type SessionService interface {
	StartSession(ctx context.Context, theme, playerName string) (uuid.UUID, string, error)
	SendAction(ctx context.Context, id uuid.UUID, code string, params []string) (*api.ActionResponse, error)
	View(ctx context.Context, id uuid.UUID) (*api.ViewResponse, error)
	End(ctx context.Context, id uuid.UUID) error
}

var _ SessionService = (*session.Manager)(nil)

type SessionHandler struct {
	sessions SessionService
	logger   *slog.Logger
}

func NewSessionHandler(sessions SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// ServeHTTP handles HTTP requests for game sessions
// Routes:
// POST   /v1/sessions              - Start a new session
// GET    /v1/sessions/{id}         - View a session
// POST   /v1/sessions/{id}/actions - Play one turn
// DELETE /v1/sessions/{id}         - End a session
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleStart(w, r)
		return
	}

	idStr, sub, _ := strings.Cut(path, "/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", idStr, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	switch {
	case sub == "actions" && r.Method == http.MethodPost:
		h.handleAction(w, r, id)
	case sub == "" && r.Method == http.MethodGet:
		h.handleView(w, r, id)
	case sub == "" && r.Method == http.MethodDelete:
		h.handleEnd(w, r, id)
	case sub == "actions":
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
	case sub == "":
		w.Header().Set("Allow", "GET, DELETE")
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found")
	}
}

func (h *SessionHandler) handleStart(w http.ResponseWriter, r *http.Request) {
	var req api.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	id, intro, err := h.sessions.StartSession(r.Context(), req.Theme, req.PlayerName)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, api.StartSessionResponse{
		SessionID: id,
		Intro:     intro,
	})
}

func (h *SessionHandler) handleAction(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req api.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err, "session_id", id)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	resp, err := h.sessions.SendAction(r.Context(), id, req.Action, req.Params)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

func (h *SessionHandler) handleView(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	resp, err := h.sessions.View(r.Context(), id)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

func (h *SessionHandler) handleEnd(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.sessions.End(r.Context(), id); err != nil {
		h.writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
	case errors.Is(err, session.ErrSessionBusy):
		writeError(w, h.logger, http.StatusConflict, "Session is busy, try again")
	case errors.Is(err, house.ErrGraphConstruction):
		h.logger.Error("Failed to build house", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to build the house")
	default:
		h.logger.Error("Session request failed", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
	}
}
