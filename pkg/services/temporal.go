package services

import "github.com/votabien/votabien-engine/pkg/models"

// ResolveCurrent picks the current association among time-ranged rows:
// the open row (nil end date) with the latest start, otherwise the row with
// the latest start overall. Equal starts fall back to the higher row id so
// the choice never depends on input order. ok is false when rows is empty.
func ResolveCurrent[T any](rows []T, membership func(T) models.Membership) (current T, ok bool) {
	var best models.Membership
	for _, row := range rows {
		m := membership(row)
		if !ok || preferMembership(m, best) {
			current, best, ok = row, m, true
		}
	}
	return current, ok
}

// preferMembership reports whether a should replace b as the current row.
func preferMembership(a, b models.Membership) bool {
	aOpen, bOpen := a.EndDate == nil, b.EndDate == nil
	if aOpen != bOpen {
		return aOpen
	}
	if !a.StartDate.Equal(b.StartDate) {
		return a.StartDate.After(b.StartDate)
	}
	return a.ID > b.ID
}

// countOpen returns how many rows have a nil end date. More than one is a
// data anomaly, tolerated by ResolveCurrent.
func countOpen[T any](rows []T, membership func(T) models.Membership) int {
	n := 0
	for _, row := range rows {
		if membership(row).EndDate == nil {
			n++
		}
	}
	return n
}

func membershipOf(r models.MembershipRow) models.Membership { return r.Membership }
func partyMembershipOf(r models.PartyMemberRow) models.Membership { return r.Membership }
