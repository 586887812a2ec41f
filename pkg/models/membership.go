package models

import "time"

// Membership links one member to one party over [StartDate, EndDate).
// A nil EndDate means the membership is open-ended.
// Stored in party_membership table.
type Membership struct {
	ID        int64      `json:"id"`
	MemberID  int64      `json:"parliament_member_id"`
	PartyID   int64      `json:"party_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// IsOpenAt reports whether the membership is active at now.
// An EndDate exactly equal to now counts as closed.
func (m *Membership) IsOpenAt(now time.Time) bool {
	return m.EndDate == nil || m.EndDate.After(now)
}

// Period returns the membership's time range for embedding in responses.
func (m *Membership) Period() *MembershipPeriod {
	return &MembershipPeriod{StartDate: m.StartDate, EndDate: m.EndDate}
}

// MembershipPeriod is the time range attached to a nested party or member.
type MembershipPeriod struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// PartyWithMembership is a party as seen from one member.
type PartyWithMembership struct {
	Party
	Membership *MembershipPeriod `json:"membership"`
}

// MemberWithMembership is a member as seen from one party.
type MemberWithMembership struct {
	Member
	Membership *MembershipPeriod `json:"membership"`
}

// MembershipRow is a membership joined with its party.
type MembershipRow struct {
	Membership Membership
	Party      Party
}

// PartyMemberRow is a membership joined with its member.
type PartyMemberRow struct {
	Membership Membership
	Member     Member
}

// MemberWithCurrentParty for GET /parliament/{id}/party.
type MemberWithCurrentParty struct {
	Member Member               `json:"member"`
	Party  *PartyWithMembership `json:"party"`
}

// MemberWithParties for GET /parliament/{id}/parties.
type MemberWithParties struct {
	Member  Member                `json:"member"`
	Parties []PartyWithMembership `json:"parties"`
}
