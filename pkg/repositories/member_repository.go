package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/votabien/votabien-engine/pkg/models"
)

// MemberRepository provides data access for parliament members.
type MemberRepository interface {
	List(ctx context.Context, filter models.MemberFilter, now time.Time, limit, offset int) ([]models.Member, error)
	Count(ctx context.Context, filter models.MemberFilter, now time.Time) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Member, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.Member, error)
	ListByConstituencies(ctx context.Context, codes []string) ([]models.Member, error)
}

type memberRepository struct{}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository() MemberRepository {
	return &memberRepository{}
}

var _ MemberRepository = (*memberRepository)(nil)

const memberColumns = `
	m.id, m.parlid, m.role, m.first_name, m.middle_name, m.last_name,
	m.second_last_name, m.birth_date, m.gender, m.region, m.constituency,
	m.party_id, m.phone, m.email, m.curriculum`

// memberFilterWhere builds the WHERE clause for GET /parliament filters.
func memberFilterWhere(filter models.MemberFilter, now time.Time) *whereClause {
	w := &whereClause{}
	if filter.Query != "" {
		w.add(`concat_ws(' ', m.first_name, m.middle_name, m.last_name, m.second_last_name) ILIKE ?`,
			containsPattern(filter.Query))
	}
	if filter.Region != "" {
		w.add(`m.region = ?`, filter.Region)
	}
	if filter.Gender != "" {
		w.add(`m.gender = ?`, filter.Gender)
	}
	if filter.Role != "" {
		w.add(`m.role = ?`, filter.Role)
	}
	if filter.PartyID != nil {
		// Only the member's best row in the party counts, ranked the same
		// way as services.ResolveCurrent.
		w.add(`EXISTS (
			SELECT 1 FROM (
				SELECT pm.end_date FROM party_membership pm
				WHERE pm.parliament_member_id = m.id
				  AND pm.party_id = ?
				ORDER BY (pm.end_date IS NULL) DESC, pm.start_date DESC, pm.id DESC
				LIMIT 1) best
			WHERE best.end_date IS NULL OR best.end_date > ?)`, *filter.PartyID, now)
	}
	return w
}

func (r *memberRepository) List(ctx context.Context, filter models.MemberFilter, now time.Time, limit, offset int) ([]models.Member, error) {
	w := memberFilterWhere(filter, now)
	limitArg := w.next(limit)
	offsetArg := w.next(offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM parliament_member m
		%s
		ORDER BY m.last_name, m.first_name, m.id
		LIMIT %s OFFSET %s`, memberColumns, w.String(), limitArg, offsetArg)

	return collect(ctx, "list members", query, scanMember, w.args...)
}

func (r *memberRepository) Count(ctx context.Context, filter models.MemberFilter, now time.Time) (int64, error) {
	w := memberFilterWhere(filter, now)
	query := fmt.Sprintf(`SELECT count(*) FROM parliament_member m %s`, w.String())
	return count(ctx, "count members", query, w.args...)
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	q, err := querier(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + memberColumns + ` FROM parliament_member m WHERE m.id = $1`
	member, err := scanMember(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr("get member", err)
	}
	return &member, nil
}

func (r *memberRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Member, error) {
	if len(ids) == 0 {
		return []models.Member{}, nil
	}
	query := `SELECT ` + memberColumns + ` FROM parliament_member m WHERE m.id = ANY($1) ORDER BY m.id`
	return collect(ctx, "get members by id", query, scanMember, ids)
}

func (r *memberRepository) ListByConstituencies(ctx context.Context, codes []string) ([]models.Member, error) {
	if len(codes) == 0 {
		return []models.Member{}, nil
	}
	query := `
		SELECT ` + memberColumns + `
		FROM parliament_member m
		WHERE m.constituency = ANY($1)
		ORDER BY m.last_name, m.first_name, m.id`
	return collect(ctx, "list members by constituency", query, scanMember, codes)
}

func scanMember(row rowScanner) (models.Member, error) {
	var m models.Member
	var birthDate *time.Time
	err := row.Scan(
		&m.ID, &m.ParlID, &m.Role, &m.FirstName, &m.MiddleName, &m.LastName,
		&m.SecondLastName, &birthDate, &m.Gender, &m.Region, &m.Constituency,
		&m.PartyID, &m.Phone, &m.Email, &m.Curriculum,
	)
	if err != nil {
		return models.Member{}, err
	}
	m.BirthDate = models.NewDate(birthDate)
	return m, nil
}
