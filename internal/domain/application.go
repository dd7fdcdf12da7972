package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusSubmitted   ApplicationStatus = "SUBMITTED"
	ApplicationStatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusApproved    ApplicationStatus = "APPROVED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn   ApplicationStatus = "WITHDRAWN"
)

// RequiredApprovals is the number of distinct active board approvals
// needed to accept an application.
const RequiredApprovals = 2

// ReapplicationWindowDays is how long a rejected applicant must wait
// before submitting a new application.
const ReapplicationWindowDays = 30

type Application struct {
	ID                      string            `json:"id"`
	ApplicantUserID         string            `json:"applicant_user_id"`
	Status                  ApplicationStatus `json:"status"`
	Note                    string            `json:"note"`
	ApprovalCount           int               `json:"approval_count"`
	RejectionCount          int               `json:"rejection_count"`
	RequiredApprovals       int               `json:"required_approvals"`
	VoterIDs                []string          `json:"voter_ids"`
	ApproverIDs             []string          `json:"approver_ids"`
	RejectorIDs             []string          `json:"rejector_ids"`
	FirstApprovalAt         *time.Time        `json:"first_approval_at,omitempty"`
	FullyApprovedAt         *time.Time        `json:"fully_approved_at,omitempty"`
	RejectedAt              *time.Time        `json:"rejected_at,omitempty"`
	RejectedBy              string            `json:"rejected_by,omitempty"`
	RejectionReason         string            `json:"rejection_reason,omitempty"`
	RecommendedImprovements string            `json:"recommended_improvements,omitempty"`
	AllowReapplication      bool              `json:"allow_reapplication"`
	ReapplicationAllowedAt  *time.Time        `json:"reapplication_allowed_at,omitempty"`
	AppealSubmitted         bool              `json:"appeal_submitted"`
	AppealReason            string            `json:"appeal_reason,omitempty"`
	AppealSubmittedAt       *time.Time        `json:"appeal_submitted_at,omitempty"`
	CreatedOn               time.Time         `json:"created_on"`
}

// IsTerminal reports whether the application can no longer be voted on.
func (a *Application) IsTerminal() bool {
	return a.Status == ApplicationStatusApproved ||
		a.Status == ApplicationStatusRejected ||
		a.Status == ApplicationStatusWithdrawn
}

// IsVotable reports whether a board member may still cast a vote.
func (a *Application) IsVotable() bool {
	return a.Status == ApplicationStatusSubmitted || a.Status == ApplicationStatusUnderReview
}

type RejectionResult struct {
	ApplicationID          string            `json:"application_id"`
	Status                 ApplicationStatus `json:"status"`
	RejectedBy             string            `json:"rejected_by"`
	RejectionReason        string            `json:"rejection_reason"`
	AllowReapplication     bool              `json:"allow_reapplication"`
	ReapplicationAllowedAt *time.Time        `json:"reapplication_allowed_at,omitempty"`
}

type EligibilityResult struct {
	Eligible                bool       `json:"eligible"`
	Reason                  string     `json:"reason,omitempty"`
	ReapplyOn               *time.Time `json:"reapply_on,omitempty"`
	PreviousRejectionReason string     `json:"previous_rejection_reason,omitempty"`
	RecommendedImprovements string     `json:"recommended_improvements,omitempty"`
}

type AppealResult struct {
	ApplicationID     string    `json:"application_id"`
	AppealSubmittedAt time.Time `json:"appeal_submitted_at"`
}
