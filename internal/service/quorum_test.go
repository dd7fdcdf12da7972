package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dojo-membership-backend/internal/domain"
)

func approveVote(voterID string) domain.Vote {
	return domain.Vote{VoterID: voterID, Decision: domain.VoteDecisionApprove, IsActive: true}
}

func rejectVote(voterID string) domain.Vote {
	return domain.Vote{VoterID: voterID, Decision: domain.VoteDecisionReject, IsActive: true}
}

func TestEvaluateQuorum(t *testing.T) {
	tests := []struct {
		name         string
		status       domain.ApplicationStatus
		votes        []domain.Vote
		wantApproved int
		wantQuorum   bool
		wantNext     domain.ApplicationStatus
	}{
		{
			name:         "no votes",
			status:       domain.ApplicationStatusSubmitted,
			votes:        nil,
			wantApproved: 0,
		},
		{
			name:         "first approval opens review",
			status:       domain.ApplicationStatusSubmitted,
			votes:        []domain.Vote{approveVote("b1")},
			wantApproved: 1,
			wantNext:     domain.ApplicationStatusUnderReview,
		},
		{
			name:         "second approval reaches quorum",
			status:       domain.ApplicationStatusUnderReview,
			votes:        []domain.Vote{approveVote("b1"), approveVote("b2")},
			wantApproved: 2,
			wantQuorum:   true,
			wantNext:     domain.ApplicationStatusApproved,
		},
		{
			name:         "both approvals on submitted jump straight to approved",
			status:       domain.ApplicationStatusSubmitted,
			votes:        []domain.Vote{approveVote("b1"), approveVote("b2")},
			wantApproved: 2,
			wantQuorum:   true,
			wantNext:     domain.ApplicationStatusApproved,
		},
		{
			name:         "single rejection wins over one approval",
			status:       domain.ApplicationStatusUnderReview,
			votes:        []domain.Vote{approveVote("b1"), rejectVote("b2")},
			wantApproved: 1,
			wantNext:     domain.ApplicationStatusRejected,
		},
		{
			name:         "rejection alone rejects a submitted application",
			status:       domain.ApplicationStatusSubmitted,
			votes:        []domain.Vote{rejectVote("b1")},
			wantApproved: 0,
			wantNext:     domain.ApplicationStatusRejected,
		},
		{
			name:   "inactive approvals do not count",
			status: domain.ApplicationStatusUnderReview,
			votes: []domain.Vote{
				{VoterID: "b1", Decision: domain.VoteDecisionApprove, IsActive: false},
				approveVote("b2"),
			},
			wantApproved: 1,
		},
		{
			name:         "terminal application is inspected but never transitioned",
			status:       domain.ApplicationStatusRejected,
			votes:        []domain.Vote{approveVote("b1"), approveVote("b2")},
			wantApproved: 2,
			wantQuorum:   true,
			wantNext:     "",
		},
		{
			name:         "withdrawn application is never transitioned",
			status:       domain.ApplicationStatusWithdrawn,
			votes:        []domain.Vote{approveVote("b1")},
			wantApproved: 1,
			wantNext:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &domain.Application{
				ID:                "app-1",
				Status:            tt.status,
				RequiredApprovals: domain.RequiredApprovals,
			}
			decision := EvaluateQuorum(app, tt.votes)
			assert.Equal(t, tt.wantApproved, decision.ApprovedCount)
			assert.Equal(t, tt.wantQuorum, decision.QuorumReached)
			assert.Equal(t, tt.wantNext, decision.NextStatus)
		})
	}
}

func TestEvaluateQuorumDefaultsRequiredApprovals(t *testing.T) {
	app := &domain.Application{ID: "app-1", Status: domain.ApplicationStatusUnderReview}
	decision := EvaluateQuorum(app, []domain.Vote{approveVote("b1"), approveVote("b2")})
	assert.True(t, decision.QuorumReached)
	assert.Equal(t, domain.ApplicationStatusApproved, decision.NextStatus)
}
