package repositories

import (
	"context"

	"github.com/votabien/votabien-engine/pkg/models"
)

// SessionRepository provides data access for legislative sessions.
type SessionRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.LegislativeSession, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.LegislativeSession, error)
}

type sessionRepository struct{}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

var _ SessionRepository = (*sessionRepository)(nil)

const sessionColumns = `s.id, s.session_number, s.start_date, s.end_date, s.session_type, s.session_status`

func (r *sessionRepository) List(ctx context.Context, limit, offset int) ([]models.LegislativeSession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM legislative_session s
		ORDER BY s.start_date DESC, s.id DESC
		LIMIT $1 OFFSET $2`
	return collect(ctx, "list sessions", query, scanSession, limit, offset)
}

func (r *sessionRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, "count sessions", `SELECT count(*) FROM legislative_session`)
}

func (r *sessionRepository) GetByID(ctx context.Context, id int64) (*models.LegislativeSession, error) {
	q, err := querier(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + sessionColumns + ` FROM legislative_session s WHERE s.id = $1`
	session, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr("get session", err)
	}
	return &session, nil
}

func scanSession(row rowScanner) (models.LegislativeSession, error) {
	var s models.LegislativeSession
	err := row.Scan(&s.ID, &s.SessionNumber, &s.StartDate, &s.EndDate, &s.SessionType, &s.SessionStatus)
	return s, err
}
