package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dojo-membership-backend/internal/domain"
	"dojo-membership-backend/internal/security"
)

// MockApprovalService
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) CastVote(ctx context.Context, applicationID, voterID string, decision domain.VoteDecision, notes string, conditions []string) (*domain.VoteResult, error) {
	args := m.Called(ctx, applicationID, voterID, decision, notes, conditions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoteResult), args.Error(1)
}
func (m *MockApprovalService) CheckApprovalQuorum(ctx context.Context, applicationID string) (*domain.QuorumStatus, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuorumStatus), args.Error(1)
}
func (m *MockApprovalService) GetApprovalStatus(ctx context.Context, applicationID string) (*domain.ApprovalStatus, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalStatus), args.Error(1)
}

func boardRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	claims := &security.UserClaims{UserID: "board-1", Type: security.TokenTypeAccess, Roles: []string{"BOARD"}}
	return req.WithContext(withClaims(req.Context(), claims))
}

func TestCastVoteHandler(t *testing.T) {
	approvals := new(MockApprovalService)
	handler := NewApprovalHandler(approvals, nil)

	approvals.On("CastVote", mock.Anything, "app-1", "board-1",
		domain.VoteDecisionApprove, "solid candidate", []string(nil)).Return(&domain.VoteResult{
		ApplicationID: "app-1",
		Status:        domain.ApplicationStatusUnderReview,
		ApprovalCount: 1,
	}, nil).Once()

	body, _ := json.Marshal(map[string]string{"decision": "APPROVE", "notes": "solid candidate"})
	req := boardRequest(t, http.MethodPost, "/api/v1/applications/app-1/votes", body)
	req = mux.SetURLVars(req, map[string]string{"id": "app-1"})
	rec := httptest.NewRecorder()

	handler.CastVote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result domain.VoteResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, domain.ApplicationStatusUnderReview, result.Status)
	approvals.AssertExpectations(t)
}

func TestCastVoteHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown application", domain.ErrApplicationNotFound, http.StatusNotFound},
		{"duplicate vote", domain.ErrDuplicateVote, http.StatusConflict},
		{"terminal application", domain.ErrIneligibleState, http.StatusConflict},
		{"self approval", domain.ErrSelfApproval, http.StatusForbidden},
		{"bad decision", domain.ErrValidation, http.StatusBadRequest},
		{"store inconsistency", domain.ErrStoreInconsistency, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approvals := new(MockApprovalService)
			handler := NewApprovalHandler(approvals, nil)

			approvals.On("CastVote", mock.Anything, "app-1", "board-1",
				mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			body, _ := json.Marshal(map[string]string{"decision": "APPROVE"})
			req := boardRequest(t, http.MethodPost, "/api/v1/applications/app-1/votes", body)
			req = mux.SetURLVars(req, map[string]string{"id": "app-1"})
			rec := httptest.NewRecorder()

			handler.CastVote(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCastVoteHandler_InvalidBody(t *testing.T) {
	handler := NewApprovalHandler(new(MockApprovalService), nil)

	req := boardRequest(t, http.MethodPost, "/api/v1/applications/app-1/votes", []byte("{not json"))
	req = mux.SetURLVars(req, map[string]string{"id": "app-1"})
	rec := httptest.NewRecorder()

	handler.CastVote(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetQuorumStatusHandler(t *testing.T) {
	approvals := new(MockApprovalService)
	handler := NewApprovalHandler(approvals, nil)

	approvals.On("CheckApprovalQuorum", mock.Anything, "app-1").Return(&domain.QuorumStatus{
		ApplicationID:     "app-1",
		Status:            domain.ApplicationStatusUnderReview,
		ApprovedCount:     1,
		RequiredApprovals: 2,
	}, nil).Once()

	req := boardRequest(t, http.MethodGet, "/api/v1/applications/app-1/quorum", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "app-1"})
	rec := httptest.NewRecorder()

	handler.GetQuorumStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var status domain.QuorumStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, 1, status.ApprovedCount)
	assert.False(t, status.QuorumReached)
}

func TestRequireBoard(t *testing.T) {
	called := false
	wrapped := requireBoard(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("board member passes", func(t *testing.T) {
		req := boardRequest(t, http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		wrapped(rec, req)
		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-board member is refused", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		claims := &security.UserClaims{UserID: "user-1", Type: security.TokenTypeAccess, Roles: []string{"MEMBER"}}
		req = req.WithContext(withClaims(req.Context(), claims))
		rec := httptest.NewRecorder()
		wrapped(rec, req)
		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated is refused", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		wrapped(rec, req)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
