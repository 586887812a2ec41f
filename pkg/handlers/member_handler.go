package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/votabien/votabien-engine/pkg/models"
	"github.com/votabien/votabien-engine/pkg/services"
)

// MemberHandler serves /parliament.
type MemberHandler struct {
	memberService services.MemberService
	logger        *zap.Logger
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(memberService services.MemberService, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{memberService: memberService, logger: logger}
}

// RegisterRoutes registers the member routes on r.
func (h *MemberHandler) RegisterRoutes(r chi.Router) {
	r.Route("/parliament", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/party", h.GetCurrentParty)
		r.Get("/{id}/parties", h.GetParties)
		r.Get("/{id}/attendances", h.GetAttendance)
		r.Get("/{id}/votes", h.GetVotes)
	})
}

// List handles GET /parliament?q=&party_id=&region=&gender=&role=&page=&size=
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeServiceError(w, h.logger, err, memberResource, "list members")
		return
	}
	partyID, err := optionalInt64(r, "party_id")
	if err != nil {
		writeServiceError(w, h.logger, err, memberResource, "list members")
		return
	}

	filter := models.MemberFilter{
		Query:   trimmedQuery(r, "q"),
		PartyID: partyID,
		Region:  trimmedQuery(r, "region"),
		Gender:  trimmedQuery(r, "gender"),
		Role:    trimmedQuery(r, "role"),
	}

	result, err := h.memberService.ListMembers(r.Context(), filter, page)
	if err != nil {
		writeServiceError(w, h.logger, err, memberResource, "list members")
		return
	}
	writeResponse(w, h.logger, result)
}

// Get handles GET /parliament/{id}
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, memberResource, h.logger)
	if !ok {
		return
	}

	member, err := h.memberService.GetMember(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, memberResource, "get member", zap.Int64("member_id", id))
		return
	}
	writeResponse(w, h.logger, member)
}

// GetCurrentParty handles GET /parliament/{id}/party
func (h *MemberHandler) GetCurrentParty(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, memberResource, h.logger)
	if !ok {
		return
	}

	result, err := h.memberService.GetMemberWithCurrentParty(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, memberResource, "get current party", zap.Int64("member_id", id))
		return
	}
	writeResponse(w, h.logger, result)
}

// GetParties handles GET /parliament/{id}/parties
func (h *MemberHandler) GetParties(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, memberResource, h.logger)
	if !ok {
		return
	}

	result, err := h.memberService.GetMemberWithParties(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, memberResource, "get party history", zap.Int64("member_id", id))
		return
	}
	writeResponse(w, h.logger, result)
}

// GetAttendance handles GET /parliament/{id}/attendances
func (h *MemberHandler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, memberResource, h.logger)
	if !ok {
		return
	}

	result, err := h.memberService.GetMemberAttendance(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, memberResource, "get attendance", zap.Int64("member_id", id))
		return
	}
	writeResponse(w, h.logger, result)
}

// GetVotes handles GET /parliament/{id}/votes?page=&size=
func (h *MemberHandler) GetVotes(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, memberResource, h.logger)
	if !ok {
		return
	}
	page, err := parsePage(r)
	if err != nil {
		writeServiceError(w, h.logger, err, memberResource, "list member votes")
		return
	}

	result, err := h.memberService.GetMemberVotes(r.Context(), id, page)
	if err != nil {
		writeServiceError(w, h.logger, err, memberResource, "list member votes", zap.Int64("member_id", id))
		return
	}
	writeResponse(w, h.logger, result)
}
