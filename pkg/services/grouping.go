package services

import (
	"time"

	"github.com/votabien/votabien-engine/pkg/models"
)

// UnknownMemberName is shown for vote details whose member is missing.
const UnknownMemberName = "Desconocido"

// GroupBy maps each key to its items, keeping input order within a group.
// Keys with no items are absent; read groups through Lookup.
func GroupBy[K comparable, V any](items []V, key func(V) K) map[K][]V {
	groups := make(map[K][]V)
	for _, item := range items {
		k := key(item)
		groups[k] = append(groups[k], item)
	}
	return groups
}

// Lookup returns the group for k, or an empty non-nil slice.
func Lookup[K comparable, V any](groups map[K][]V, k K) []V {
	if items, ok := groups[k]; ok {
		return items
	}
	return []V{}
}

// orderedKeys returns the distinct keys of items in first-seen order.
func orderedKeys[K comparable, V any](items []V, key func(V) K) []K {
	seen := make(map[K]struct{})
	var keys []K
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// IndexByID maps members by id.
func IndexByID(members []models.Member) map[int64]models.Member {
	index := make(map[int64]models.Member, len(members))
	for _, m := range members {
		index[m.ID] = m
	}
	return index
}

// EnrichVoteDetails attaches each voter's display name and current party
// label. Details keep their input order.
func EnrichVoteDetails(details []models.VoteDetail, members map[int64]models.Member, parties map[int64]models.Party) []models.VoteDetailView {
	views := make([]models.VoteDetailView, 0, len(details))
	for _, d := range details {
		view := models.VoteDetailView{VoteDetail: d, MemberName: UnknownMemberName}
		if d.MemberID != nil {
			if m, ok := members[*d.MemberID]; ok {
				if name := m.DisplayName(); name != "" {
					view.MemberName = name
				}
			}
			if p, ok := parties[*d.MemberID]; ok {
				label := p.Label()
				view.Party = &label
			}
		}
		views = append(views, view)
	}
	return views
}

// currentPartiesByMember resolves each member's current party from their
// membership rows.
func currentPartiesByMember(rows []models.MembershipRow) map[int64]models.Party {
	byMember := GroupBy(rows, func(r models.MembershipRow) int64 { return r.Membership.MemberID })
	parties := make(map[int64]models.Party, len(byMember))
	for memberID, memberRows := range byMember {
		if current, ok := ResolveCurrent(memberRows, membershipOf); ok {
			parties[memberID] = current.Party
		}
	}
	return parties
}

// currentMembers keeps, for each member in rows, the best-matching
// membership and includes the member only when that membership is open at
// now. Members keep the order of their first row.
func currentMembers(rows []models.PartyMemberRow, now time.Time) []models.MemberWithMembership {
	memberID := func(r models.PartyMemberRow) int64 { return r.Member.ID }
	byMember := GroupBy(rows, memberID)

	members := []models.MemberWithMembership{}
	for _, id := range orderedKeys(rows, memberID) {
		current, ok := ResolveCurrent(byMember[id], partyMembershipOf)
		if !ok || !current.Membership.IsOpenAt(now) {
			continue
		}
		members = append(members, models.MemberWithMembership{
			Member:     current.Member,
			Membership: current.Membership.Period(),
		})
	}
	return members
}
