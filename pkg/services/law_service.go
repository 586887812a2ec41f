package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/votabien/votabien-engine/pkg/models"
	"github.com/votabien/votabien-engine/pkg/repositories"
	"github.com/votabien/votabien-engine/pkg/validation"
)

// LawService answers the law project endpoints.
type LawService interface {
	ListLawProjects(ctx context.Context, filter models.LawProjectFilter, page PageRequest) (*models.Page[models.LawProject], error)
	// GetLawProject returns a project with its votes, oldest first.
	GetLawProject(ctx context.Context, id int64) (*models.LawProjectWithVotes, error)
	// GetLawProjectDetail returns a project with its latest vote and that
	// vote's per-member details, plus authors, matters and ministries.
	GetLawProjectDetail(ctx context.Context, id int64) (*models.LawProjectDetail, error)
}

type lawService struct {
	lawRepo        repositories.LawRepository
	memberRepo     repositories.MemberRepository
	membershipRepo repositories.MembershipRepository
	logger         *zap.Logger
}

// NewLawService creates a new LawService.
func NewLawService(
	lawRepo repositories.LawRepository,
	memberRepo repositories.MemberRepository,
	membershipRepo repositories.MembershipRepository,
	logger *zap.Logger,
) LawService {
	return &lawService{
		lawRepo:        lawRepo,
		memberRepo:     memberRepo,
		membershipRepo: membershipRepo,
		logger:         logger.Named("laws"),
	}
}

var _ LawService = (*lawService)(nil)

func (s *lawService) ListLawProjects(ctx context.Context, filter models.LawProjectFilter, page PageRequest) (*models.Page[models.LawProject], error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(&filter); err != nil {
		return nil, err
	}
	if err := screenSearch(s.logger, filter.Query); err != nil {
		return nil, err
	}

	total, err := s.lawRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.lawRepo.List(ctx, filter, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	return NewPage(items, total, page), nil
}

func (s *lawService) GetLawProject(ctx context.Context, id int64) (*models.LawProjectWithVotes, error) {
	project, err := s.lawRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	votes, err := s.lawRepo.ListVotes(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.LawProjectWithVotes{Project: *project, Votes: votes}, nil
}

func (s *lawService) GetLawProjectDetail(ctx context.Context, id int64) (*models.LawProjectDetail, error) {
	project, err := s.lawRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	votes, err := s.lawRepo.ListVotes(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.LawProjectDetail{
		Project:     *project,
		LatestVote:  LatestVote(votes),
		VoteDetails: []models.VoteDetailView{},
		Votes:       votes,
	}
	if detail.LatestVote != nil {
		if detail.VoteDetails, err = s.voteDetails(ctx, detail.LatestVote.ID); err != nil {
			return nil, err
		}
	}
	if detail.Authors, err = s.lawRepo.ListAuthors(ctx, id); err != nil {
		return nil, err
	}
	if detail.Matters, err = s.lawRepo.ListMatters(ctx, id); err != nil {
		return nil, err
	}
	if detail.Ministries, err = s.lawRepo.ListMinistries(ctx, id); err != nil {
		return nil, err
	}
	normalizeLists(detail)
	return detail, nil
}

// normalizeLists replaces nil lists so they encode as [] rather than null.
func normalizeLists(detail *models.LawProjectDetail) {
	if detail.Votes == nil {
		detail.Votes = []models.Vote{}
	}
	if detail.Authors == nil {
		detail.Authors = []models.Author{}
	}
	if detail.Matters == nil {
		detail.Matters = []models.Matter{}
	}
	if detail.Ministries == nil {
		detail.Ministries = []models.Ministry{}
	}
}

// voteDetails loads one vote's details enriched with voter name and
// current party label.
func (s *lawService) voteDetails(ctx context.Context, voteID int64) ([]models.VoteDetailView, error) {
	details, err := s.lawRepo.ListVoteDetails(ctx, []int64{voteID})
	if err != nil {
		return nil, err
	}

	var memberIDs []int64
	for _, d := range details {
		if d.MemberID != nil {
			memberIDs = append(memberIDs, *d.MemberID)
		}
	}
	members, err := s.memberRepo.GetByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	memberships, err := s.membershipRepo.ListByMembers(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	return EnrichVoteDetails(details, IndexByID(members), currentPartiesByMember(memberships)), nil
}

// LatestVote returns the vote with the latest date, breaking ties by the
// higher id. Undated votes sort before dated ones. Returns nil for no votes.
func LatestVote(votes []models.Vote) *models.Vote {
	var latest *models.Vote
	for i := range votes {
		v := &votes[i]
		if latest == nil || voteAfter(v, latest) {
			latest = v
		}
	}
	if latest == nil {
		return nil
	}
	out := *latest
	return &out
}

func voteAfter(a, b *models.Vote) bool {
	switch {
	case a.VoteDate == nil && b.VoteDate == nil:
		return a.ID > b.ID
	case a.VoteDate == nil:
		return false
	case b.VoteDate == nil:
		return true
	case !a.VoteDate.Equal(*b.VoteDate):
		return a.VoteDate.After(*b.VoteDate)
	default:
		return a.ID > b.ID
	}
}
