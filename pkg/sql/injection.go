// Package sql screens free-text request values before they reach a query.
package sql

import (
	"fmt"

	libinjection "github.com/corazawaf/libinjection-go"

	"github.com/votabien/votabien-engine/pkg/apperrors"
)

// InjectionCheckResult describes a value libinjection classified as SQL.
type InjectionCheckResult struct {
	ParamName   string
	Fingerprint string
}

// CheckSearchTerm runs libinjection over a free-text filter value.
// Returns nil for clean values.
//
// Search terms are always bound as query parameters; the check exists to
// reject probing traffic early and log it.
func CheckSearchTerm(paramName, value string) *InjectionCheckResult {
	if value == "" {
		return nil
	}
	if isSQLi, fingerprint := libinjection.IsSQLi(value); isSQLi {
		return &InjectionCheckResult{
			ParamName:   paramName,
			Fingerprint: string(fingerprint),
		}
	}
	return nil
}

// CheckSearchTerms checks every named value and returns the first hit as an
// apperrors.ErrValidation error, or nil.
func CheckSearchTerms(values map[string]string) (*InjectionCheckResult, error) {
	for name, value := range values {
		if result := CheckSearchTerm(name, value); result != nil {
			return result, fmt.Errorf("%w: %s contains a disallowed pattern", apperrors.ErrValidation, name)
		}
	}
	return nil, nil
}
