package repositories

import (
	"context"

	"github.com/votabien/votabien-engine/pkg/models"
)

// PartyRepository provides data access for parties.
type PartyRepository interface {
	List(ctx context.Context) ([]models.Party, error)
	GetByID(ctx context.Context, id int64) (*models.Party, error)
}

type partyRepository struct{}

// NewPartyRepository creates a new PartyRepository.
func NewPartyRepository() PartyRepository {
	return &partyRepository{}
}

var _ PartyRepository = (*partyRepository)(nil)

const partyColumns = `p.id, p.name, p.abbreviation, p.img_url, p.created_at, p.updated_at`

func (r *partyRepository) List(ctx context.Context) ([]models.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM party p ORDER BY p.name, p.id`
	return collect(ctx, "list parties", query, scanParty)
}

func (r *partyRepository) GetByID(ctx context.Context, id int64) (*models.Party, error) {
	q, err := querier(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + partyColumns + ` FROM party p WHERE p.id = $1`
	party, err := scanParty(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr("get party", err)
	}
	return &party, nil
}

func scanParty(row rowScanner) (models.Party, error) {
	var p models.Party
	err := row.Scan(&p.ID, &p.Name, &p.Abbreviation, &p.ImgURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
