package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/votabien/votabien-engine/pkg/apperrors"
	"github.com/votabien/votabien-engine/pkg/logging"
)

// resource names an entity in error codes and messages.
type resource struct {
	code  string // member → member_not_found, invalid_member_id
	label string
}

var (
	memberResource   = resource{code: "member", label: "Member"}
	partyResource    = resource{code: "party", label: "Party"}
	sessionResource  = resource{code: "session", label: "Session"}
	districtResource = resource{code: "district", label: "District"}
	lawResource      = resource{code: "law_project", label: "Law project"}
)

// writeServiceError maps a service error onto the HTTP error taxonomy:
// not found 404, validation 400, persistence 503, anything else 500.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, res resource, action string, fields ...zap.Field) {
	var status int
	var code, message string

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, code, message = http.StatusNotFound, res.code+"_not_found", res.label+" not found"
	case errors.Is(err, apperrors.ErrValidation):
		status, code, message = http.StatusBadRequest, "validation_error", err.Error()
	case errors.Is(err, apperrors.ErrDependencyFailure):
		logger.Error("Failed to "+action,
			append(fields, zap.String("error", logging.SanitizeError(err)))...)
		status, code, message = http.StatusServiceUnavailable, "dependency_failure", "Database unavailable"
	default:
		logger.Error("Failed to "+action,
			append(fields, zap.String("error", logging.SanitizeError(err)))...)
		status, code, message = http.StatusInternalServerError, "internal_error", "Internal server error"
	}

	if err := ErrorResponse(w, status, code, message); err != nil {
		logger.Error("Failed to write error response", zap.Error(err))
	}
}

// writeResponse writes a 200 JSON body, logging encoding failures.
func writeResponse(w http.ResponseWriter, logger *zap.Logger, data any) {
	if err := WriteJSON(w, http.StatusOK, data); err != nil {
		logger.Error("Failed to write response", zap.Error(err))
	}
}
