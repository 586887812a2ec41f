package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/votabien/votabien-engine/pkg/models"
	"github.com/votabien/votabien-engine/pkg/repositories"
)

// PartyService answers the party endpoints.
type PartyService interface {
	// ListParties returns every party ordered by name.
	ListParties(ctx context.Context) ([]models.Party, error)
	// ListPartiesWithMembers returns every party with its current members.
	ListPartiesWithMembers(ctx context.Context) ([]models.PartyWithMembers, error)
	// GetPartyWithMembers returns a party with its current members or apperrors.ErrNotFound.
	GetPartyWithMembers(ctx context.Context, id int64) (*models.PartyWithMembers, error)
	// GetPartyMembers returns a party's current members or apperrors.ErrNotFound.
	GetPartyMembers(ctx context.Context, id int64) ([]models.MemberWithMembership, error)
}

type partyService struct {
	partyRepo      repositories.PartyRepository
	membershipRepo repositories.MembershipRepository
	clock          Clock
	logger         *zap.Logger
}

// NewPartyService creates a new PartyService. A nil clock uses time.Now.
func NewPartyService(
	partyRepo repositories.PartyRepository,
	membershipRepo repositories.MembershipRepository,
	clock Clock,
	logger *zap.Logger,
) PartyService {
	return &partyService{
		partyRepo:      partyRepo,
		membershipRepo: membershipRepo,
		clock:          clock,
		logger:         logger.Named("parties"),
	}
}

var _ PartyService = (*partyService)(nil)

func (s *partyService) ListParties(ctx context.Context) ([]models.Party, error) {
	return s.partyRepo.List(ctx)
}

func (s *partyService) ListPartiesWithMembers(ctx context.Context) ([]models.PartyWithMembers, error) {
	parties, err := s.partyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.membershipRepo.ListAllWithMembers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.now()
	byParty := GroupBy(rows, func(r models.PartyMemberRow) int64 { return r.Membership.PartyID })

	result := make([]models.PartyWithMembers, 0, len(parties))
	for _, p := range parties {
		result = append(result, models.PartyWithMembers{
			Party:   p,
			Members: currentMembers(Lookup(byParty, p.ID), now),
		})
	}
	return result, nil
}

func (s *partyService) GetPartyWithMembers(ctx context.Context, id int64) (*models.PartyWithMembers, error) {
	party, err := s.partyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := s.currentMembersOf(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.PartyWithMembers{Party: *party, Members: members}, nil
}

func (s *partyService) GetPartyMembers(ctx context.Context, id int64) ([]models.MemberWithMembership, error) {
	if _, err := s.partyRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.currentMembersOf(ctx, id)
}

func (s *partyService) currentMembersOf(ctx context.Context, partyID int64) ([]models.MemberWithMembership, error) {
	rows, err := s.membershipRepo.ListByParty(ctx, partyID)
	if err != nil {
		return nil, err
	}
	members := currentMembers(rows, s.clock.now())
	s.logger.Debug("Resolved current party members",
		zap.Int64("party_id", partyID),
		zap.Int("memberships", len(rows)),
		zap.Int("current_members", len(members)))
	return members, nil
}
