package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/votabien/votabien-engine/pkg/models"
	"github.com/votabien/votabien-engine/pkg/repositories"
	"github.com/votabien/votabien-engine/pkg/sql"
	"github.com/votabien/votabien-engine/pkg/validation"
)

// MemberService answers the parliament member endpoints.
type MemberService interface {
	// ListMembers returns one page of members matching filter.
	ListMembers(ctx context.Context, filter models.MemberFilter, page PageRequest) (*models.Page[models.Member], error)

	// GetMember returns a member or apperrors.ErrNotFound.
	GetMember(ctx context.Context, id int64) (*models.Member, error)

	// GetMemberWithCurrentParty returns a member and the party of their
	// current membership; Party is nil when they have none.
	GetMemberWithCurrentParty(ctx context.Context, id int64) (*models.MemberWithCurrentParty, error)

	// GetMemberWithParties returns a member and every party they belonged to, oldest first.
	GetMemberWithParties(ctx context.Context, id int64) (*models.MemberWithParties, error)

	// GetMemberAttendance returns a member, their attendance summary and every attendance row.
	GetMemberAttendance(ctx context.Context, id int64) (*models.MemberAttendance, error)

	// GetMemberVotes returns one page of the member's vote choices, newest first.
	GetMemberVotes(ctx context.Context, id int64, page PageRequest) (*models.Page[models.MemberVote], error)
}

type memberService struct {
	memberRepo     repositories.MemberRepository
	membershipRepo repositories.MembershipRepository
	attendanceRepo repositories.AttendanceRepository
	lawRepo        repositories.LawRepository
	clock          Clock
	logger         *zap.Logger
}

// NewMemberService creates a new MemberService. A nil clock uses time.Now.
func NewMemberService(
	memberRepo repositories.MemberRepository,
	membershipRepo repositories.MembershipRepository,
	attendanceRepo repositories.AttendanceRepository,
	lawRepo repositories.LawRepository,
	clock Clock,
	logger *zap.Logger,
) MemberService {
	return &memberService{
		memberRepo:     memberRepo,
		membershipRepo: membershipRepo,
		attendanceRepo: attendanceRepo,
		lawRepo:        lawRepo,
		clock:          clock,
		logger:         logger.Named("members"),
	}
}

var _ MemberService = (*memberService)(nil)

func (s *memberService) ListMembers(ctx context.Context, filter models.MemberFilter, page PageRequest) (*models.Page[models.Member], error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(&filter); err != nil {
		return nil, err
	}
	if err := screenSearch(s.logger, filter.Query); err != nil {
		return nil, err
	}

	now := s.clock.now()
	total, err := s.memberRepo.Count(ctx, filter, now)
	if err != nil {
		return nil, err
	}
	items, err := s.memberRepo.List(ctx, filter, now, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	return NewPage(items, total, page), nil
}

func (s *memberService) GetMember(ctx context.Context, id int64) (*models.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

func (s *memberService) GetMemberWithCurrentParty(ctx context.Context, id int64) (*models.MemberWithCurrentParty, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.membershipRepo.ListByMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if open := countOpen(rows, membershipOf); open > 1 {
		s.logger.Warn("Member has more than one open membership",
			zap.Int64("member_id", id),
			zap.Int("open_memberships", open))
	}

	result := &models.MemberWithCurrentParty{Member: *member}
	if current, ok := ResolveCurrent(rows, membershipOf); ok {
		result.Party = &models.PartyWithMembership{
			Party:      current.Party,
			Membership: current.Membership.Period(),
		}
	}
	return result, nil
}

func (s *memberService) GetMemberWithParties(ctx context.Context, id int64) (*models.MemberWithParties, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.membershipRepo.ListByMember(ctx, id)
	if err != nil {
		return nil, err
	}

	parties := make([]models.PartyWithMembership, 0, len(rows))
	for _, r := range rows {
		parties = append(parties, models.PartyWithMembership{
			Party:      r.Party,
			Membership: r.Membership.Period(),
		})
	}
	return &models.MemberWithParties{Member: *member, Parties: parties}, nil
}

func (s *memberService) GetMemberAttendance(ctx context.Context, id int64) (*models.MemberAttendance, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.attendanceRepo.ListByMember(ctx, id)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.Attendance{}
	}
	return &models.MemberAttendance{
		Member: *member,
		Resume: SummarizeAttendance(rows),
		Detail: rows,
	}, nil
}

func (s *memberService) GetMemberVotes(ctx context.Context, id int64, page PageRequest) (*models.Page[models.MemberVote], error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.memberRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	total, err := s.lawRepo.CountMemberVotes(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.lawRepo.ListMemberVotes(ctx, id, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	return NewPage(items, total, page), nil
}

// screenSearch rejects free-text filters that libinjection classifies as SQL.
func screenSearch(logger *zap.Logger, query string) error {
	result, err := sql.CheckSearchTerms(map[string]string{"q": query})
	if err != nil {
		logger.Warn("Rejected search filter",
			zap.String("param", result.ParamName),
			zap.String("fingerprint", result.Fingerprint))
		return err
	}
	return nil
}
