package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/votabien/votabien-engine/pkg/models"
	"github.com/votabien/votabien-engine/pkg/services"
)

// LawHandler serves /laws.
type LawHandler struct {
	lawService services.LawService
	logger     *zap.Logger
}

// NewLawHandler creates a new law project handler.
func NewLawHandler(lawService services.LawService, logger *zap.Logger) *LawHandler {
	return &LawHandler{lawService: lawService, logger: logger}
}

// RegisterRoutes registers the law project routes on r.
func (h *LawHandler) RegisterRoutes(r chi.Router) {
	r.Route("/laws", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/detail", h.GetDetail)
	})
}

// List handles GET /laws?q=&status=&initiative_type=&origin_chamber=&admissible=&page=&size=
func (h *LawHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeServiceError(w, h.logger, err, lawResource, "list law projects")
		return
	}
	admissible, err := optionalBool(r, "admissible")
	if err != nil {
		writeServiceError(w, h.logger, err, lawResource, "list law projects")
		return
	}

	filter := models.LawProjectFilter{
		Query:          trimmedQuery(r, "q"),
		Status:         trimmedQuery(r, "status"),
		InitiativeType: trimmedQuery(r, "initiative_type"),
		OriginChamber:  trimmedQuery(r, "origin_chamber"),
		Admissible:     admissible,
	}

	result, err := h.lawService.ListLawProjects(r.Context(), filter, page)
	if err != nil {
		writeServiceError(w, h.logger, err, lawResource, "list law projects")
		return
	}
	writeResponse(w, h.logger, result)
}

// Get handles GET /laws/{id}
func (h *LawHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, lawResource, h.logger)
	if !ok {
		return
	}

	result, err := h.lawService.GetLawProject(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, lawResource, "get law project", zap.Int64("law_project_id", id))
		return
	}
	writeResponse(w, h.logger, result)
}

// GetDetail handles GET /laws/{id}/detail
func (h *LawHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, lawResource, h.logger)
	if !ok {
		return
	}

	result, err := h.lawService.GetLawProjectDetail(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, lawResource, "get law project detail", zap.Int64("law_project_id", id))
		return
	}
	writeResponse(w, h.logger, result)
}
