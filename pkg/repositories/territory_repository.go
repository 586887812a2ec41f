package repositories

import (
	"context"

	"github.com/votabien/votabien-engine/pkg/models"
)

// TerritoryRepository provides data access for districts and communes.
type TerritoryRepository interface {
	ListDistricts(ctx context.Context) ([]models.District, error)
	GetDistrict(ctx context.Context, id int64) (*models.District, error)
	ListCommunes(ctx context.Context) ([]models.Commune, error)
	// ListDistrictCommunes returns district/commune links for the given
	// districts, or for every district when districtIDs is nil.
	ListDistrictCommunes(ctx context.Context, districtIDs []int64) ([]models.DistrictCommuneRow, error)
}

type territoryRepository struct{}

// NewTerritoryRepository creates a new TerritoryRepository.
func NewTerritoryRepository() TerritoryRepository {
	return &territoryRepository{}
}

var _ TerritoryRepository = (*territoryRepository)(nil)

func (r *territoryRepository) ListDistricts(ctx context.Context) ([]models.District, error) {
	query := `SELECT d.id, d.number FROM district d ORDER BY d.number ASC, d.id ASC`
	return collect(ctx, "list districts", query, scanDistrict)
}

func (r *territoryRepository) GetDistrict(ctx context.Context, id int64) (*models.District, error) {
	q, err := querier(ctx)
	if err != nil {
		return nil, err
	}

	district, err := scanDistrict(q.QueryRow(ctx, `SELECT d.id, d.number FROM district d WHERE d.id = $1`, id))
	if err != nil {
		return nil, notFoundOr("get district", err)
	}
	return &district, nil
}

func (r *territoryRepository) ListCommunes(ctx context.Context) ([]models.Commune, error) {
	query := `SELECT c.id, c.name FROM commune c ORDER BY c.id ASC`
	return collect(ctx, "list communes", query, scanCommune)
}

func (r *territoryRepository) ListDistrictCommunes(ctx context.Context, districtIDs []int64) ([]models.DistrictCommuneRow, error) {
	if districtIDs == nil {
		query := `
			SELECT dc.district_id, c.id, c.name
			FROM district_commune dc
			JOIN commune c ON c.id = dc.commune_id
			ORDER BY c.name ASC, c.id ASC`
		return collect(ctx, "list district communes", query, scanDistrictCommune)
	}
	if len(districtIDs) == 0 {
		return []models.DistrictCommuneRow{}, nil
	}
	query := `
		SELECT dc.district_id, c.id, c.name
		FROM district_commune dc
		JOIN commune c ON c.id = dc.commune_id
		WHERE dc.district_id = ANY($1)
		ORDER BY c.name ASC, c.id ASC`
	return collect(ctx, "list district communes", query, scanDistrictCommune, districtIDs)
}

func scanDistrict(row rowScanner) (models.District, error) {
	var d models.District
	err := row.Scan(&d.ID, &d.Number)
	return d, err
}

func scanCommune(row rowScanner) (models.Commune, error) {
	var c models.Commune
	err := row.Scan(&c.ID, &c.Name)
	return c, err
}

func scanDistrictCommune(row rowScanner) (models.DistrictCommuneRow, error) {
	var dc models.DistrictCommuneRow
	err := row.Scan(&dc.DistrictID, &dc.Commune.ID, &dc.Commune.Name)
	return dc, err
}
