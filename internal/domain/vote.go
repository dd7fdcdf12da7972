package domain

import "time"

type VoteDecision string

const (
	VoteDecisionApprove VoteDecision = "APPROVE"
	VoteDecisionReject  VoteDecision = "REJECT"
)

// Vote is one board member's decision on one application. Votes are never
// deleted; a later rejection flips IsActive to false on superseded approvals
// so the full audit trail survives.
type Vote struct {
	ID            string       `json:"id"`
	ApplicationID string       `json:"application_id"`
	VoterID       string       `json:"voter_id"`
	Decision      VoteDecision `json:"decision"`
	IsActive      bool         `json:"is_active"`
	Sequence      int          `json:"sequence"`
	Notes         string       `json:"notes,omitempty"`
	Conditions    []string     `json:"conditions,omitempty"`
	CastOn        time.Time    `json:"cast_on"`
}

type VoteResult struct {
	ApplicationID string            `json:"application_id"`
	Status        ApplicationStatus `json:"status"`
	ApprovalCount int               `json:"approval_count"`
	QuorumReached bool              `json:"quorum_reached"`
	Vote          *Vote             `json:"vote,omitempty"`
}

type QuorumStatus struct {
	ApplicationID     string            `json:"application_id"`
	Status            ApplicationStatus `json:"status"`
	ApprovedCount     int               `json:"approved_count"`
	RequiredApprovals int               `json:"required_approvals"`
	QuorumReached     bool              `json:"quorum_reached"`
	ActiveVotes       int               `json:"active_votes"`
}

type ApprovalStatus struct {
	Application *Application `json:"application"`
	Votes       []Vote       `json:"votes"`
}
