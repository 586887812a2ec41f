package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/votabien/votabien-engine/pkg/models"
	"github.com/votabien/votabien-engine/pkg/repositories"
)

// TerritoryService answers the district and commune endpoints.
// Members belong to the district whose number equals their constituency code.
type TerritoryService interface {
	ListDistricts(ctx context.Context) ([]models.DistrictWithCommunes, error)
	ListDistrictsWithMembers(ctx context.Context) ([]models.DistrictWithMembers, error)
	GetDistrict(ctx context.Context, id int64) (*models.DistrictWithMembers, error)
	ListCommunes(ctx context.Context) ([]models.Commune, error)
}

type territoryService struct {
	territoryRepo repositories.TerritoryRepository
	memberRepo    repositories.MemberRepository
	logger        *zap.Logger
}

// NewTerritoryService creates a new TerritoryService.
func NewTerritoryService(
	territoryRepo repositories.TerritoryRepository,
	memberRepo repositories.MemberRepository,
	logger *zap.Logger,
) TerritoryService {
	return &territoryService{
		territoryRepo: territoryRepo,
		memberRepo:    memberRepo,
		logger:        logger.Named("territory"),
	}
}

var _ TerritoryService = (*territoryService)(nil)

func (s *territoryService) ListDistricts(ctx context.Context) ([]models.DistrictWithCommunes, error) {
	districts, err := s.territoryRepo.ListDistricts(ctx)
	if err != nil {
		return nil, err
	}
	return s.withCommunes(ctx, districts, nil)
}

func (s *territoryService) ListDistrictsWithMembers(ctx context.Context) ([]models.DistrictWithMembers, error) {
	districts, err := s.territoryRepo.ListDistricts(ctx)
	if err != nil {
		return nil, err
	}
	return s.withMembers(ctx, districts, nil)
}

func (s *territoryService) GetDistrict(ctx context.Context, id int64) (*models.DistrictWithMembers, error) {
	district, err := s.territoryRepo.GetDistrict(ctx, id)
	if err != nil {
		return nil, err
	}
	result, err := s.withMembers(ctx, []models.District{*district}, []int64{district.ID})
	if err != nil {
		return nil, err
	}
	return &result[0], nil
}

func (s *territoryService) ListCommunes(ctx context.Context) ([]models.Commune, error) {
	return s.territoryRepo.ListCommunes(ctx)
}

// withCommunes attaches communes to districts. A nil ids loads the links of
// every district.
func (s *territoryService) withCommunes(ctx context.Context, districts []models.District, ids []int64) ([]models.DistrictWithCommunes, error) {
	links, err := s.territoryRepo.ListDistrictCommunes(ctx, ids)
	if err != nil {
		return nil, err
	}
	byDistrict := GroupBy(links, func(l models.DistrictCommuneRow) int64 { return l.DistrictID })

	result := make([]models.DistrictWithCommunes, 0, len(districts))
	for _, d := range districts {
		communes := []models.Commune{}
		for _, l := range Lookup(byDistrict, d.ID) {
			communes = append(communes, l.Commune)
		}
		result = append(result, models.DistrictWithCommunes{District: d, Communes: communes})
	}
	return result, nil
}

func (s *territoryService) withMembers(ctx context.Context, districts []models.District, ids []int64) ([]models.DistrictWithMembers, error) {
	withCommunes, err := s.withCommunes(ctx, districts, ids)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(districts))
	for i := range districts {
		codes = append(codes, districts[i].ConstituencyCode())
	}
	members, err := s.memberRepo.ListByConstituencies(ctx, codes)
	if err != nil {
		return nil, err
	}
	byCode := GroupBy(members, func(m models.Member) string { return derefString(m.Constituency) })

	result := make([]models.DistrictWithMembers, 0, len(withCommunes))
	for _, d := range withCommunes {
		result = append(result, models.DistrictWithMembers{
			DistrictWithCommunes: d,
			Members:              Lookup(byCode, d.District.ConstituencyCode()),
		})
	}
	return result, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
