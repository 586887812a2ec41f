package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/votabien/votabien-engine/pkg/services"
)

// TerritoryHandler serves /territory.
type TerritoryHandler struct {
	territoryService services.TerritoryService
	logger           *zap.Logger
}

// NewTerritoryHandler creates a new territory handler.
func NewTerritoryHandler(territoryService services.TerritoryService, logger *zap.Logger) *TerritoryHandler {
	return &TerritoryHandler{territoryService: territoryService, logger: logger}
}

// RegisterRoutes registers the territory routes on r.
func (h *TerritoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/territory", func(r chi.Router) {
		r.Get("/districts", h.ListDistricts)
		r.Get("/districts/{id}", h.GetDistrict)
		r.Get("/communes", h.ListCommunes)
	})
}

// ListDistricts handles GET /territory/districts[?include=members]
func (h *TerritoryHandler) ListDistricts(w http.ResponseWriter, r *http.Request) {
	if includes(r, "members") {
		districts, err := h.territoryService.ListDistrictsWithMembers(r.Context())
		if err != nil {
			writeServiceError(w, h.logger, err, districtResource, "list districts with members")
			return
		}
		writeResponse(w, h.logger, districts)
		return
	}

	districts, err := h.territoryService.ListDistricts(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, districtResource, "list districts")
		return
	}
	writeResponse(w, h.logger, districts)
}

// GetDistrict handles GET /territory/districts/{id}
func (h *TerritoryHandler) GetDistrict(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, districtResource, h.logger)
	if !ok {
		return
	}

	district, err := h.territoryService.GetDistrict(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, districtResource, "get district", zap.Int64("district_id", id))
		return
	}
	writeResponse(w, h.logger, district)
}

// ListCommunes handles GET /territory/communes
func (h *TerritoryHandler) ListCommunes(w http.ResponseWriter, r *http.Request) {
	communes, err := h.territoryService.ListCommunes(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, districtResource, "list communes")
		return
	}
	writeResponse(w, h.logger, communes)
}
