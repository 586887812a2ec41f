package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/votabien/votabien-engine/pkg/apperrors"
	"github.com/votabien/votabien-engine/pkg/services"
)

// parseID extracts a positive integer id from the {id} path parameter.
// On failure it writes 400 invalid_<resource>_id and returns false.
func parseID(w http.ResponseWriter, r *http.Request, res resource, logger *zap.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_"+res.code+"_id", "Invalid "+strings.ToLower(res.label)+" ID format"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return 0, false
	}
	return id, true
}

// parsePage reads page and size, defaulting to the first page of 20.
// Range checks happen in the service.
func parsePage(r *http.Request) (services.PageRequest, error) {
	req := services.DefaultPage()
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("%w: page must be an integer", apperrors.ErrValidation)
		}
		req.Page = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("%w: size must be an integer", apperrors.ErrValidation)
		}
		req.Size = n
	}
	return req, nil
}

// optionalInt64 parses an optional integer query parameter.
func optionalInt64(r *http.Request, name string) (*int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", apperrors.ErrValidation, name)
	}
	return &n, nil
}

// optionalBool parses an optional boolean query parameter.
func optionalBool(r *http.Request, name string) (*bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", apperrors.ErrValidation, name)
	}
	return &b, nil
}

// includes reports whether the comma-separated include parameter names rel.
func includes(r *http.Request, rel string) bool {
	for _, v := range strings.Split(r.URL.Query().Get("include"), ",") {
		if strings.TrimSpace(v) == rel {
			return true
		}
	}
	return false
}

// trimmedQuery returns a query parameter without surrounding whitespace.
func trimmedQuery(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
