package models

import (
	"strings"
	"time"
)

// Party is the canonical party representation.
// Stored in party table.
type Party struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Abbreviation *string   `json:"abbreviation"`
	ImgURL       *string   `json:"img_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Label returns the abbreviation, falling back to the full name when the
// abbreviation is missing or blank.
func (p *Party) Label() string {
	if p.Abbreviation != nil {
		if abbr := strings.TrimSpace(*p.Abbreviation); abbr != "" {
			return abbr
		}
	}
	return p.Name
}

// PartyWithMembers for GET /parties/{id} and GET /parties?include=members.
type PartyWithMembers struct {
	Party
	Members []MemberWithMembership `json:"members"`
}
