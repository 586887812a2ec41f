package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/votabien/votabien-engine/pkg/models"
	"github.com/votabien/votabien-engine/pkg/services"
)

type mockMemberService struct {
	listMembers     func(ctx context.Context, filter models.MemberFilter, page services.PageRequest) (*models.Page[models.Member], error)
	getMember       func(ctx context.Context, id int64) (*models.Member, error)
	getCurrentParty func(ctx context.Context, id int64) (*models.MemberWithCurrentParty, error)
	getParties      func(ctx context.Context, id int64) (*models.MemberWithParties, error)
	getAttendance   func(ctx context.Context, id int64) (*models.MemberAttendance, error)
	getVotes        func(ctx context.Context, id int64, page services.PageRequest) (*models.Page[models.MemberVote], error)
}

var _ services.MemberService = (*mockMemberService)(nil)

func (m *mockMemberService) ListMembers(ctx context.Context, filter models.MemberFilter, page services.PageRequest) (*models.Page[models.Member], error) {
	return m.listMembers(ctx, filter, page)
}

func (m *mockMemberService) GetMember(ctx context.Context, id int64) (*models.Member, error) {
	return m.getMember(ctx, id)
}

func (m *mockMemberService) GetMemberWithCurrentParty(ctx context.Context, id int64) (*models.MemberWithCurrentParty, error) {
	return m.getCurrentParty(ctx, id)
}

func (m *mockMemberService) GetMemberWithParties(ctx context.Context, id int64) (*models.MemberWithParties, error) {
	return m.getParties(ctx, id)
}

func (m *mockMemberService) GetMemberAttendance(ctx context.Context, id int64) (*models.MemberAttendance, error) {
	return m.getAttendance(ctx, id)
}

func (m *mockMemberService) GetMemberVotes(ctx context.Context, id int64, page services.PageRequest) (*models.Page[models.MemberVote], error) {
	return m.getVotes(ctx, id, page)
}

type mockPartyService struct {
	listParties            func(ctx context.Context) ([]models.Party, error)
	listPartiesWithMembers func(ctx context.Context) ([]models.PartyWithMembers, error)
	getPartyWithMembers    func(ctx context.Context, id int64) (*models.PartyWithMembers, error)
	getPartyMembers        func(ctx context.Context, id int64) ([]models.MemberWithMembership, error)
}

var _ services.PartyService = (*mockPartyService)(nil)

func (m *mockPartyService) ListParties(ctx context.Context) ([]models.Party, error) {
	return m.listParties(ctx)
}

func (m *mockPartyService) ListPartiesWithMembers(ctx context.Context) ([]models.PartyWithMembers, error) {
	return m.listPartiesWithMembers(ctx)
}

func (m *mockPartyService) GetPartyWithMembers(ctx context.Context, id int64) (*models.PartyWithMembers, error) {
	return m.getPartyWithMembers(ctx, id)
}

func (m *mockPartyService) GetPartyMembers(ctx context.Context, id int64) ([]models.MemberWithMembership, error) {
	return m.getPartyMembers(ctx, id)
}

type mockSessionService struct {
	listSessions   func(ctx context.Context, page services.PageRequest) (*models.Page[models.LegislativeSession], error)
	getSession     func(ctx context.Context, id int64) (*models.LegislativeSession, error)
	getAttendances func(ctx context.Context, id int64) (*models.SessionAttendances, error)
}

var _ services.SessionService = (*mockSessionService)(nil)

func (m *mockSessionService) ListSessions(ctx context.Context, page services.PageRequest) (*models.Page[models.LegislativeSession], error) {
	return m.listSessions(ctx, page)
}

func (m *mockSessionService) GetSession(ctx context.Context, id int64) (*models.LegislativeSession, error) {
	return m.getSession(ctx, id)
}

func (m *mockSessionService) GetSessionAttendances(ctx context.Context, id int64) (*models.SessionAttendances, error) {
	return m.getAttendances(ctx, id)
}

type mockTerritoryService struct {
	listDistricts            func(ctx context.Context) ([]models.DistrictWithCommunes, error)
	listDistrictsWithMembers func(ctx context.Context) ([]models.DistrictWithMembers, error)
	getDistrict              func(ctx context.Context, id int64) (*models.DistrictWithMembers, error)
	listCommunes             func(ctx context.Context) ([]models.Commune, error)
}

var _ services.TerritoryService = (*mockTerritoryService)(nil)

func (m *mockTerritoryService) ListDistricts(ctx context.Context) ([]models.DistrictWithCommunes, error) {
	return m.listDistricts(ctx)
}

func (m *mockTerritoryService) ListDistrictsWithMembers(ctx context.Context) ([]models.DistrictWithMembers, error) {
	return m.listDistrictsWithMembers(ctx)
}

func (m *mockTerritoryService) GetDistrict(ctx context.Context, id int64) (*models.DistrictWithMembers, error) {
	return m.getDistrict(ctx, id)
}

func (m *mockTerritoryService) ListCommunes(ctx context.Context) ([]models.Commune, error) {
	return m.listCommunes(ctx)
}

type mockLawService struct {
	listLawProjects func(ctx context.Context, filter models.LawProjectFilter, page services.PageRequest) (*models.Page[models.LawProject], error)
	getLawProject   func(ctx context.Context, id int64) (*models.LawProjectWithVotes, error)
	getDetail       func(ctx context.Context, id int64) (*models.LawProjectDetail, error)
}

var _ services.LawService = (*mockLawService)(nil)

func (m *mockLawService) ListLawProjects(ctx context.Context, filter models.LawProjectFilter, page services.PageRequest) (*models.Page[models.LawProject], error) {
	return m.listLawProjects(ctx, filter, page)
}

func (m *mockLawService) GetLawProject(ctx context.Context, id int64) (*models.LawProjectWithVotes, error) {
	return m.getLawProject(ctx, id)
}

func (m *mockLawService) GetLawProjectDetail(ctx context.Context, id int64) (*models.LawProjectDetail, error) {
	return m.getDetail(ctx, id)
}

// routeRegistrar is satisfied by every resource handler.
type routeRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// serve routes a GET request through a chi router holding only h.
func serve(t *testing.T, h routeRegistrar, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func ptr[T any](v T) *T {
	return &v
}
