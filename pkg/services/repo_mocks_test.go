package services

import (
	"context"
	"slices"
	"time"

	"github.com/votabien/votabien-engine/pkg/apperrors"
	"github.com/votabien/votabien-engine/pkg/models"
)

// mockMemberRepo implements repositories.MemberRepository for testing.
type mockMemberRepo struct {
	members []models.Member
	total   int64
	err     error

	lastFilter models.MemberFilter
	lastNow    time.Time
	lastLimit  int
	lastOffset int
}

func (m *mockMemberRepo) List(_ context.Context, filter models.MemberFilter, now time.Time, limit, offset int) ([]models.Member, error) {
	m.lastFilter, m.lastNow, m.lastLimit, m.lastOffset = filter, now, limit, offset
	if m.err != nil {
		return nil, m.err
	}
	end := min(offset+limit, len(m.members))
	if offset >= end {
		return []models.Member{}, nil
	}
	return m.members[offset:end], nil
}

func (m *mockMemberRepo) Count(_ context.Context, _ models.MemberFilter, _ time.Time) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.total != 0 {
		return m.total, nil
	}
	return int64(len(m.members)), nil
}

func (m *mockMemberRepo) GetByID(_ context.Context, id int64) (*models.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.members {
		if m.members[i].ID == id {
			member := m.members[i]
			return &member, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockMemberRepo) GetByIDs(_ context.Context, ids []int64) ([]models.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Member{}
	for _, member := range m.members {
		if slices.Contains(ids, member.ID) {
			out = append(out, member)
		}
	}
	return out, nil
}

func (m *mockMemberRepo) ListByConstituencies(_ context.Context, codes []string) ([]models.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Member{}
	for _, member := range m.members {
		if member.Constituency != nil && slices.Contains(codes, *member.Constituency) {
			out = append(out, member)
		}
	}
	return out, nil
}

// mockMembershipRepo implements repositories.MembershipRepository for testing.
type mockMembershipRepo struct {
	byMember    []models.MembershipRow
	withMembers []models.PartyMemberRow
	err         error
}

func (m *mockMembershipRepo) ListByMember(_ context.Context, memberID int64) ([]models.MembershipRow, error) {
	return m.ListByMembers(context.Background(), []int64{memberID})
}

func (m *mockMembershipRepo) ListByMembers(_ context.Context, memberIDs []int64) ([]models.MembershipRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.MembershipRow{}
	for _, r := range m.byMember {
		if slices.Contains(memberIDs, r.Membership.MemberID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockMembershipRepo) ListByParty(_ context.Context, partyID int64) ([]models.PartyMemberRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.PartyMemberRow{}
	for _, r := range m.withMembers {
		if r.Membership.PartyID == partyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockMembershipRepo) ListAllWithMembers(_ context.Context) ([]models.PartyMemberRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.withMembers, nil
}

// mockPartyRepo implements repositories.PartyRepository for testing.
type mockPartyRepo struct {
	parties []models.Party
	err     error
}

func (m *mockPartyRepo) List(_ context.Context) ([]models.Party, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.parties, nil
}

func (m *mockPartyRepo) GetByID(_ context.Context, id int64) (*models.Party, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.parties {
		if m.parties[i].ID == id {
			p := m.parties[i]
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// mockAttendanceRepo implements repositories.AttendanceRepository for testing.
type mockAttendanceRepo struct {
	rows []models.Attendance
	err  error
}

func (m *mockAttendanceRepo) ListByMember(_ context.Context, memberID int64) ([]models.Attendance, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Attendance{}
	for _, r := range m.rows {
		if r.MemberID == memberID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepo) ListBySession(_ context.Context, sessionID int64) ([]models.Attendance, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Attendance{}
	for _, r := range m.rows {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

// mockSessionRepo implements repositories.SessionRepository for testing.
type mockSessionRepo struct {
	sessions []models.LegislativeSession
	err      error
}

func (m *mockSessionRepo) List(_ context.Context, limit, offset int) ([]models.LegislativeSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	end := min(offset+limit, len(m.sessions))
	if offset >= end {
		return []models.LegislativeSession{}, nil
	}
	return m.sessions[offset:end], nil
}

func (m *mockSessionRepo) Count(_ context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.sessions)), nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id int64) (*models.LegislativeSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.sessions {
		if m.sessions[i].ID == id {
			s := m.sessions[i]
			return &s, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// mockTerritoryRepo implements repositories.TerritoryRepository for testing.
type mockTerritoryRepo struct {
	districts []models.District
	communes  []models.Commune
	links     []models.DistrictCommuneRow
	err       error

	lastDistrictIDs []int64
}

func (m *mockTerritoryRepo) ListDistricts(_ context.Context) ([]models.District, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.districts, nil
}

func (m *mockTerritoryRepo) GetDistrict(_ context.Context, id int64) (*models.District, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.districts {
		if m.districts[i].ID == id {
			d := m.districts[i]
			return &d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockTerritoryRepo) ListCommunes(_ context.Context) ([]models.Commune, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.communes, nil
}

func (m *mockTerritoryRepo) ListDistrictCommunes(_ context.Context, districtIDs []int64) ([]models.DistrictCommuneRow, error) {
	m.lastDistrictIDs = districtIDs
	if m.err != nil {
		return nil, m.err
	}
	if districtIDs == nil {
		return m.links, nil
	}
	out := []models.DistrictCommuneRow{}
	for _, l := range m.links {
		if slices.Contains(districtIDs, l.DistrictID) {
			out = append(out, l)
		}
	}
	return out, nil
}

// mockLawRepo implements repositories.LawRepository for testing.
type mockLawRepo struct {
	projects    []models.LawProject
	votes       []models.Vote
	details     []models.VoteDetail
	authors     []models.Author
	matters     []models.Matter
	ministries  []models.Ministry
	memberVotes []models.MemberVote
	err         error

	lastFilter     models.LawProjectFilter
	lastVoteIDs    []int64
	lastMemberVote int64
}

func (m *mockLawRepo) List(_ context.Context, filter models.LawProjectFilter, limit, offset int) ([]models.LawProject, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	end := min(offset+limit, len(m.projects))
	if offset >= end {
		return []models.LawProject{}, nil
	}
	return m.projects[offset:end], nil
}

func (m *mockLawRepo) Count(_ context.Context, _ models.LawProjectFilter) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.projects)), nil
}

func (m *mockLawRepo) GetByID(_ context.Context, id int64) (*models.LawProject, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.projects {
		if m.projects[i].ID == id {
			p := m.projects[i]
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockLawRepo) ListVotes(_ context.Context, projectID int64) ([]models.Vote, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Vote{}
	for _, v := range m.votes {
		if v.LawProjectID == projectID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockLawRepo) ListVoteDetails(_ context.Context, voteIDs []int64) ([]models.VoteDetail, error) {
	m.lastVoteIDs = voteIDs
	if m.err != nil {
		return nil, m.err
	}
	out := []models.VoteDetail{}
	for _, d := range m.details {
		if slices.Contains(voteIDs, d.VoteID) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockLawRepo) ListAuthors(_ context.Context, _ int64) ([]models.Author, error) {
	return m.authors, m.err
}

func (m *mockLawRepo) ListMatters(_ context.Context, _ int64) ([]models.Matter, error) {
	return m.matters, m.err
}

func (m *mockLawRepo) ListMinistries(_ context.Context, _ int64) ([]models.Ministry, error) {
	return m.ministries, m.err
}

func (m *mockLawRepo) ListMemberVotes(_ context.Context, memberID int64, limit, offset int) ([]models.MemberVote, error) {
	m.lastMemberVote = memberID
	if m.err != nil {
		return nil, m.err
	}
	end := min(offset+limit, len(m.memberVotes))
	if offset >= end {
		return []models.MemberVote{}, nil
	}
	return m.memberVotes[offset:end], nil
}

func (m *mockLawRepo) CountMemberVotes(_ context.Context, _ int64) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.memberVotes)), nil
}

// Helpers shared by the service tests.

func ptr[T any](v T) *T { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
