package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/votabien/votabien-engine/pkg/services"
)

// SessionHandler serves /sessions.
type SessionHandler struct {
	sessionService services.SessionService
	logger         *zap.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessionService services.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, logger: logger}
}

// RegisterRoutes registers the session routes on r.
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/attendances", h.GetAttendances)
	})
}

// List handles GET /sessions?page=&size=
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeServiceError(w, h.logger, err, sessionResource, "list sessions")
		return
	}

	result, err := h.sessionService.ListSessions(r.Context(), page)
	if err != nil {
		writeServiceError(w, h.logger, err, sessionResource, "list sessions")
		return
	}
	writeResponse(w, h.logger, result)
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, sessionResource, h.logger)
	if !ok {
		return
	}

	session, err := h.sessionService.GetSession(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, sessionResource, "get session", zap.Int64("session_id", id))
		return
	}
	writeResponse(w, h.logger, session)
}

// GetAttendances handles GET /sessions/{id}/attendances
func (h *SessionHandler) GetAttendances(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, sessionResource, h.logger)
	if !ok {
		return
	}

	result, err := h.sessionService.GetSessionAttendances(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, sessionResource, "get session attendances", zap.Int64("session_id", id))
		return
	}
	writeResponse(w, h.logger, result)
}
