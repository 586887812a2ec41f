package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/votabien/votabien-engine/pkg/services"
)

// PartyHandler serves /parties.
type PartyHandler struct {
	partyService services.PartyService
	logger       *zap.Logger
}

// NewPartyHandler creates a new party handler.
func NewPartyHandler(partyService services.PartyService, logger *zap.Logger) *PartyHandler {
	return &PartyHandler{partyService: partyService, logger: logger}
}

// RegisterRoutes registers the party routes on r.
func (h *PartyHandler) RegisterRoutes(r chi.Router) {
	r.Route("/parties", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/members", h.GetMembers)
	})
}

// List handles GET /parties[?include=members]
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	if includes(r, "members") {
		parties, err := h.partyService.ListPartiesWithMembers(r.Context())
		if err != nil {
			writeServiceError(w, h.logger, err, partyResource, "list parties with members")
			return
		}
		writeResponse(w, h.logger, parties)
		return
	}

	parties, err := h.partyService.ListParties(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, partyResource, "list parties")
		return
	}
	writeResponse(w, h.logger, parties)
}

// Get handles GET /parties/{id}
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, partyResource, h.logger)
	if !ok {
		return
	}

	party, err := h.partyService.GetPartyWithMembers(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, partyResource, "get party", zap.Int64("party_id", id))
		return
	}
	writeResponse(w, h.logger, party)
}

// GetMembers handles GET /parties/{id}/members
func (h *PartyHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, partyResource, h.logger)
	if !ok {
		return
	}

	members, err := h.partyService.GetPartyMembers(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, partyResource, "get party members", zap.Int64("party_id", id))
		return
	}
	writeResponse(w, h.logger, members)
}
