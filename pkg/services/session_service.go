package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/votabien/votabien-engine/pkg/models"
	"github.com/votabien/votabien-engine/pkg/repositories"
)

// SessionService answers the legislative session endpoints.
type SessionService interface {
	ListSessions(ctx context.Context, page PageRequest) (*models.Page[models.LegislativeSession], error)
	GetSession(ctx context.Context, id int64) (*models.LegislativeSession, error)
	// GetSessionAttendances returns a session with every attendance row and
	// its member. Member is nil for rows pointing at a missing member.
	GetSessionAttendances(ctx context.Context, id int64) (*models.SessionAttendances, error)
}

type sessionService struct {
	sessionRepo    repositories.SessionRepository
	attendanceRepo repositories.AttendanceRepository
	memberRepo     repositories.MemberRepository
	logger         *zap.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(
	sessionRepo repositories.SessionRepository,
	attendanceRepo repositories.AttendanceRepository,
	memberRepo repositories.MemberRepository,
	logger *zap.Logger,
) SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		memberRepo:     memberRepo,
		logger:         logger.Named("sessions"),
	}
}

var _ SessionService = (*sessionService)(nil)

func (s *sessionService) ListSessions(ctx context.Context, page PageRequest) (*models.Page[models.LegislativeSession], error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	total, err := s.sessionRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.sessionRepo.List(ctx, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	return NewPage(items, total, page), nil
}

func (s *sessionService) GetSession(ctx context.Context, id int64) (*models.LegislativeSession, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

func (s *sessionService) GetSessionAttendances(ctx context.Context, id int64) (*models.SessionAttendances, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.attendanceRepo.ListBySession(ctx, id)
	if err != nil {
		return nil, err
	}

	memberIDs := orderedKeys(rows, func(a models.Attendance) int64 { return a.MemberID })
	members, err := s.memberRepo.GetByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	byID := IndexByID(members)

	attendances := make([]models.AttendanceWithMember, 0, len(rows))
	for _, a := range rows {
		item := models.AttendanceWithMember{Attendance: a}
		if m, ok := byID[a.MemberID]; ok {
			item.Member = &m
		} else {
			s.logger.Warn("Attendance references a missing member",
				zap.Int64("session_id", id),
				zap.Int64("attendance_id", a.ID),
				zap.Int64("member_id", a.MemberID))
		}
		attendances = append(attendances, item)
	}
	return &models.SessionAttendances{Session: *session, Attendances: attendances}, nil
}
