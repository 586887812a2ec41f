package models

import "strings"

// Member is the canonical parliament member representation.
// Stored in parliament_member table.
type Member struct {
	ID             int64   `json:"id"`
	ParlID         int64   `json:"parlid"` // External parliamentary id
	Role           string  `json:"role"`
	FirstName      string  `json:"first_name"`
	MiddleName     *string `json:"middle_name"`
	LastName       string  `json:"last_name"`
	SecondLastName *string `json:"second_last_name"`
	BirthDate      *Date   `json:"birth_date"`
	Gender         string  `json:"gender"`
	Region         *string `json:"region"`
	Constituency   *string `json:"constituency"` // Matches district number as a string
	PartyID        *int64  `json:"party_id"`     // Legacy column; current party comes from memberships
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Curriculum     *string `json:"curriculum"`
}

// DisplayName composes the member's name parts into one display string.
func (m *Member) DisplayName() string {
	return ComposeName(m.FirstName, deref(m.MiddleName), m.LastName, deref(m.SecondLastName))
}

// ComposeName joins name parts with single spaces, skipping empty parts and
// collapsing any whitespace inside a part.
func ComposeName(parts ...string) string {
	var words []string
	for _, p := range parts {
		words = append(words, strings.Fields(p)...)
	}
	return strings.Join(words, " ")
}

// MemberFilter narrows GET /parliament.
type MemberFilter struct {
	// Case-insensitive match against the composed name
	Query string `query:"q" validate:"max=200"`
	// Only members with an open membership in this party
	PartyID *int64 `query:"party_id" validate:"omitnil,min=1"`

	Region string `query:"region" validate:"max=100"`
	Gender string `query:"gender" validate:"max=10"`
	Role   string `query:"role" validate:"max=10"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
