package repositories

import (
	"context"

	"github.com/votabien/votabien-engine/pkg/models"
)

// MembershipRepository reads party_membership rows joined with their party
// or member. Picking the current row is left to the caller.
type MembershipRepository interface {
	// ListByMember returns a member's memberships, oldest first.
	ListByMember(ctx context.Context, memberID int64) ([]models.MembershipRow, error)
	// ListByMembers returns the memberships of every given member, oldest first.
	ListByMembers(ctx context.Context, memberIDs []int64) ([]models.MembershipRow, error)
	// ListByParty returns every membership in a party joined with its member.
	ListByParty(ctx context.Context, partyID int64) ([]models.PartyMemberRow, error)
	// ListAllWithMembers returns every membership joined with its member.
	ListAllWithMembers(ctx context.Context) ([]models.PartyMemberRow, error)
}

type membershipRepository struct{}

// NewMembershipRepository creates a new MembershipRepository.
func NewMembershipRepository() MembershipRepository {
	return &membershipRepository{}
}

var _ MembershipRepository = (*membershipRepository)(nil)

const membershipColumns = `pm.id, pm.parliament_member_id, pm.party_id, pm.start_date, pm.end_date`

func (r *membershipRepository) ListByMember(ctx context.Context, memberID int64) ([]models.MembershipRow, error) {
	query := `
		SELECT ` + membershipColumns + `, ` + partyColumns + `
		FROM party_membership pm
		JOIN party p ON p.id = pm.party_id
		WHERE pm.parliament_member_id = $1
		ORDER BY pm.start_date ASC, pm.id ASC`
	return collect(ctx, "list member memberships", query, scanMembershipRow, memberID)
}

func (r *membershipRepository) ListByMembers(ctx context.Context, memberIDs []int64) ([]models.MembershipRow, error) {
	if len(memberIDs) == 0 {
		return []models.MembershipRow{}, nil
	}
	query := `
		SELECT ` + membershipColumns + `, ` + partyColumns + `
		FROM party_membership pm
		JOIN party p ON p.id = pm.party_id
		WHERE pm.parliament_member_id = ANY($1)
		ORDER BY pm.start_date ASC, pm.id ASC`
	return collect(ctx, "list memberships by members", query, scanMembershipRow, memberIDs)
}

func (r *membershipRepository) ListByParty(ctx context.Context, partyID int64) ([]models.PartyMemberRow, error) {
	query := `
		SELECT ` + membershipColumns + `, ` + memberColumns + `
		FROM party_membership pm
		JOIN parliament_member m ON m.id = pm.parliament_member_id
		WHERE pm.party_id = $1
		ORDER BY m.last_name ASC, m.first_name ASC, m.id ASC, pm.start_date ASC`
	return collect(ctx, "list party memberships", query, scanPartyMemberRow, partyID)
}

func (r *membershipRepository) ListAllWithMembers(ctx context.Context) ([]models.PartyMemberRow, error) {
	query := `
		SELECT ` + membershipColumns + `, ` + memberColumns + `
		FROM party_membership pm
		JOIN parliament_member m ON m.id = pm.parliament_member_id
		ORDER BY m.last_name ASC, m.first_name ASC, m.id ASC, pm.start_date ASC`
	return collect(ctx, "list all memberships", query, scanPartyMemberRow)
}

func scanMembershipRow(row rowScanner) (models.MembershipRow, error) {
	var r models.MembershipRow
	pm, p := &r.Membership, &r.Party
	err := row.Scan(
		&pm.ID, &pm.MemberID, &pm.PartyID, &pm.StartDate, &pm.EndDate,
		&p.ID, &p.Name, &p.Abbreviation, &p.ImgURL, &p.CreatedAt, &p.UpdatedAt,
	)
	return r, err
}

func scanPartyMemberRow(row rowScanner) (models.PartyMemberRow, error) {
	var r models.PartyMemberRow
	pm := &r.Membership
	member, err := scanMember(prefixScanner{row: row, prefix: []any{
		&pm.ID, &pm.MemberID, &pm.PartyID, &pm.StartDate, &pm.EndDate,
	}})
	if err != nil {
		return models.PartyMemberRow{}, err
	}
	r.Member = member
	return r, nil
}

// prefixScanner lets a column-set scanner (scanMember) run after extra
// leading columns that belong to another struct.
type prefixScanner struct {
	row    rowScanner
	prefix []any
}

func (s prefixScanner) Scan(dest ...any) error {
	return s.row.Scan(append(s.prefix, dest...)...)
}
