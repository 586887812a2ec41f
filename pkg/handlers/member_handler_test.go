package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/votabien/votabien-engine/pkg/apperrors"
	"github.com/votabien/votabien-engine/pkg/models"
	"github.com/votabien/votabien-engine/pkg/services"
)

func TestMemberHandler_List_PassesFiltersAndPage(t *testing.T) {
	var gotFilter models.MemberFilter
	var gotPage services.PageRequest
	svc := &mockMemberService{
		listMembers: func(ctx context.Context, filter models.MemberFilter, page services.PageRequest) (*models.Page[models.Member], error) {
			gotFilter, gotPage = filter, page
			return &models.Page[models.Member]{
				Items: []models.Member{{ID: 1, FirstName: "Ana", LastName: "Rojas"}},
				Total: 41, Page: 3, Size: 20, Pages: 3,
			}, nil
		},
	}
	h := NewMemberHandler(svc, zap.NewNop())

	rec := serve(t, h, "/parliament?q=+rojas+&party_id=7&region=Biob%C3%ADo&gender=F&role=D&page=3")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "rojas", gotFilter.Query)
	require.NotNil(t, gotFilter.PartyID)
	assert.Equal(t, int64(7), *gotFilter.PartyID)
	assert.Equal(t, "Biobío", gotFilter.Region)
	assert.Equal(t, "F", gotFilter.Gender)
	assert.Equal(t, "D", gotFilter.Role)
	assert.Equal(t, services.PageRequest{Page: 3, Size: 20}, gotPage)

	page := decodeBody[models.Page[models.Member]](t, rec)
	assert.Equal(t, int64(41), page.Total)
	assert.Equal(t, 3, page.Pages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ana", page.Items[0].FirstName)
}

func TestMemberHandler_List_BadParams(t *testing.T) {
	svc := &mockMemberService{
		listMembers: func(ctx context.Context, filter models.MemberFilter, page services.PageRequest) (*models.Page[models.Member], error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	h := NewMemberHandler(svc, zap.NewNop())

	for _, target := range []string{
		"/parliament?page=abc",
		"/parliament?size=1.5",
		"/parliament?party_id=x",
	} {
		t.Run(target, func(t *testing.T) {
			rec := serve(t, h, target)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody[ErrorBody](t, rec)
			assert.Equal(t, "validation_error", body.Error)
		})
	}
}

func TestMemberHandler_List_ServiceValidationError(t *testing.T) {
	svc := &mockMemberService{
		listMembers: func(ctx context.Context, filter models.MemberFilter, page services.PageRequest) (*models.Page[models.Member], error) {
			return nil, fmt.Errorf("%w: size must be at most 100", apperrors.ErrValidation)
		},
	}
	rec := serve(t, NewMemberHandler(svc, zap.NewNop()), "/parliament?size=500")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[ErrorBody](t, rec)
	assert.Equal(t, "validation_error", body.Error)
	assert.Contains(t, body.Message, "size must be at most 100")
}

func TestMemberHandler_Get(t *testing.T) {
	svc := &mockMemberService{
		getMember: func(ctx context.Context, id int64) (*models.Member, error) {
			if id == 42 {
				return &models.Member{ID: 42, FirstName: "Luis"}, nil
			}
			return nil, apperrors.ErrNotFound
		},
	}
	h := NewMemberHandler(svc, zap.NewNop())

	t.Run("found", func(t *testing.T) {
		rec := serve(t, h, "/parliament/42")
		require.Equal(t, http.StatusOK, rec.Code)
		member := decodeBody[models.Member](t, rec)
		assert.Equal(t, int64(42), member.ID)
	})

	t.Run("not found", func(t *testing.T) {
		rec := serve(t, h, "/parliament/9")
		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeBody[ErrorBody](t, rec)
		assert.Equal(t, "member_not_found", body.Error)
		assert.Equal(t, "Member not found", body.Message)
	})

	t.Run("invalid id", func(t *testing.T) {
		for _, id := range []string{"abc", "0", "-3"} {
			rec := serve(t, h, "/parliament/"+id)
			require.Equal(t, http.StatusBadRequest, rec.Code, id)
			body := decodeBody[ErrorBody](t, rec)
			assert.Equal(t, "invalid_member_id", body.Error)
		}
	})
}

func TestMemberHandler_GetCurrentParty_NullParty(t *testing.T) {
	svc := &mockMemberService{
		getCurrentParty: func(ctx context.Context, id int64) (*models.MemberWithCurrentParty, error) {
			return &models.MemberWithCurrentParty{Member: models.Member{ID: id}}, nil
		},
	}
	rec := serve(t, NewMemberHandler(svc, zap.NewNop()), "/parliament/5/party")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Contains(t, body, "party")
	assert.Nil(t, body["party"])
}

func TestMemberHandler_GetParties(t *testing.T) {
	start := time.Date(2018, 3, 11, 0, 0, 0, 0, time.UTC)
	svc := &mockMemberService{
		getParties: func(ctx context.Context, id int64) (*models.MemberWithParties, error) {
			return &models.MemberWithParties{
				Member: models.Member{ID: id},
				Parties: []models.PartyWithMembership{{
					Party:      models.Party{ID: 2, Name: "Partido Uno"},
					Membership: &models.MembershipPeriod{StartDate: start},
				}},
			}, nil
		},
	}
	rec := serve(t, NewMemberHandler(svc, zap.NewNop()), "/parliament/5/parties")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[models.MemberWithParties](t, rec)
	require.Len(t, body.Parties, 1)
	assert.Equal(t, "Partido Uno", body.Parties[0].Name)
	assert.True(t, start.Equal(body.Parties[0].Membership.StartDate))
	assert.Nil(t, body.Parties[0].Membership.EndDate)
}

func TestMemberHandler_GetAttendance(t *testing.T) {
	svc := &mockMemberService{
		getAttendance: func(ctx context.Context, id int64) (*models.MemberAttendance, error) {
			return &models.MemberAttendance{
				Member: models.Member{ID: id},
				Resume: models.AttendanceSummary{TotalSessions: 3, Attendance: 2, Absence: 1, AttendancePercentage: 66.67},
				Detail: []models.Attendance{},
			}, nil
		},
	}
	rec := serve(t, NewMemberHandler(svc, zap.NewNop()), "/parliament/5/attendances")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[models.MemberAttendance](t, rec)
	assert.Equal(t, 66.67, body.Resume.AttendancePercentage)
	assert.Equal(t, 3, body.Resume.TotalSessions)
}

func TestMemberHandler_GetVotes(t *testing.T) {
	var gotID int64
	var gotPage services.PageRequest
	svc := &mockMemberService{
		getVotes: func(ctx context.Context, id int64, page services.PageRequest) (*models.Page[models.MemberVote], error) {
			gotID, gotPage = id, page
			return &models.Page[models.MemberVote]{Items: []models.MemberVote{}, Page: 2, Size: 5}, nil
		},
	}
	rec := serve(t, NewMemberHandler(svc, zap.NewNop()), "/parliament/8/votes?page=2&size=5")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(8), gotID)
	assert.Equal(t, services.PageRequest{Page: 2, Size: 5}, gotPage)
}

func TestMemberHandler_DependencyFailure(t *testing.T) {
	svc := &mockMemberService{
		getMember: func(ctx context.Context, id int64) (*models.Member, error) {
			return nil, fmt.Errorf("%w: failed to get member: %w", apperrors.ErrDependencyFailure,
				errors.New("dial tcp postgres://app:hunter2@db:5432/x: connection refused"))
		},
	}
	rec := serve(t, NewMemberHandler(svc, zap.NewNop()), "/parliament/1")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeBody[ErrorBody](t, rec)
	assert.Equal(t, "dependency_failure", body.Error)
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestMemberHandler_UnexpectedError(t *testing.T) {
	svc := &mockMemberService{
		getParties: func(ctx context.Context, id int64) (*models.MemberWithParties, error) {
			return nil, errors.New("boom")
		},
	}
	rec := serve(t, NewMemberHandler(svc, zap.NewNop()), "/parliament/1/parties")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody[ErrorBody](t, rec)
	assert.Equal(t, "internal_error", body.Error)
	assert.NotContains(t, body.Message, "boom")
}
