package service

import "dojo-membership-backend/internal/domain"

// QuorumDecision is the outcome of evaluating the active vote set for an
// application. NextStatus is empty when no transition applies.
type QuorumDecision struct {
	QuorumReached bool
	ApprovedCount int
	NextStatus    domain.ApplicationStatus
}

// EvaluateQuorum is the pure decision function of the approval workflow.
// It counts only active votes, never mutates anything, and may be called
// any number of times for status inspection.
//
// Rejection is a one-vote absorbing transition: a single active REJECT vote
// forces REJECTED regardless of the approval count. Approval requires the
// full quorum of distinct active APPROVE votes.
func EvaluateQuorum(app *domain.Application, activeVotes []domain.Vote) QuorumDecision {
	required := app.RequiredApprovals
	if required <= 0 {
		required = domain.RequiredApprovals
	}

	var decision QuorumDecision
	rejected := false
	for _, vote := range activeVotes {
		if !vote.IsActive {
			continue
		}
		switch vote.Decision {
		case domain.VoteDecisionApprove:
			decision.ApprovedCount++
		case domain.VoteDecisionReject:
			rejected = true
		}
	}
	decision.QuorumReached = decision.ApprovedCount >= required

	// Terminal applications are inspected, never transitioned.
	if !app.IsVotable() {
		return decision
	}

	switch {
	case rejected:
		decision.NextStatus = domain.ApplicationStatusRejected
	case decision.QuorumReached:
		decision.NextStatus = domain.ApplicationStatusApproved
	case decision.ApprovedCount >= 1 && app.Status == domain.ApplicationStatusSubmitted:
		decision.NextStatus = domain.ApplicationStatusUnderReview
	}
	return decision
}
