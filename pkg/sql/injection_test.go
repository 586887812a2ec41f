package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votabien/votabien-engine/pkg/apperrors"
)

func TestCheckSearchTerm(t *testing.T) {
	tests := []struct {
		name            string
		value           string
		expectInjection bool
	}{
		{name: "empty", value: ""},
		{name: "member name", value: "Ana Gómez"},
		{name: "apostrophe surname", value: "O'Brien"},
		{name: "bulletin number", value: "12345-07"},
		{name: "law name", value: "Modifica el Código del Trabajo"},
		{name: "tautology", value: "' OR '1'='1", expectInjection: true},
		{name: "stacked drop", value: "'; DROP TABLE users--", expectInjection: true},
		{name: "union select", value: "1 UNION SELECT * FROM passwords", expectInjection: true},
		{name: "comment truncation", value: "admin'--", expectInjection: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckSearchTerm("q", tt.value)
			if !tt.expectInjection {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.Equal(t, "q", result.ParamName)
			assert.NotEmpty(t, result.Fingerprint)
		})
	}
}

func TestCheckSearchTerms(t *testing.T) {
	result, err := CheckSearchTerms(map[string]string{"q": "Boric", "status": ""})
	assert.NoError(t, err)
	assert.Nil(t, result)

	result, err = CheckSearchTerms(map[string]string{"q": "' OR 1=1--"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	require.NotNil(t, result)
	assert.Equal(t, "q", result.ParamName)
}
