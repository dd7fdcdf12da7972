package service

import (
	"context"
	"time"

	"dojo-membership-backend/internal/domain"
)

type ApprovalService interface {
	CastVote(ctx context.Context, applicationID, voterID string, decision domain.VoteDecision, notes string, conditions []string) (*domain.VoteResult, error)
	CheckApprovalQuorum(ctx context.Context, applicationID string) (*domain.QuorumStatus, error)
	GetApprovalStatus(ctx context.Context, applicationID string) (*domain.ApprovalStatus, error)
}

type RejectionService interface {
	RejectWithReason(ctx context.Context, applicationID, actorID, reason, improvements string, allowReapplication bool) (*domain.RejectionResult, error)
	CheckReapplicationEligibility(ctx context.Context, userID string) (*domain.EligibilityResult, error)
	SubmitAppeal(ctx context.Context, applicationID, reason string) (*domain.AppealResult, error)
}

type ApplicationService interface {
	SubmitApplication(ctx context.Context, userID, note string) (*domain.Application, error)
	WithdrawApplication(ctx context.Context, applicationID, userID string) (*domain.Application, error)
	GetApplication(ctx context.Context, id string) (*domain.Application, error)
	ListApplications(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error)
}

type EmailService interface {
	SendApprovalPaymentLink(ctx context.Context, email, name, tier, checkoutURL string) error
	SendRejectionNotice(ctx context.Context, email, name, reason, improvements string, reapplyOn *time.Time) error
	SendReapplicationWindowOpened(ctx context.Context, email, name string) error
	SendPendingApplicationReminder(ctx context.Context, boardEmail string, pendingCount int) error
}

// AuditService records state-changing operations. Recording is best-effort:
// failures are logged and never surfaced to the caller.
type AuditService interface {
	Record(ctx context.Context, actorID, action, resourceType, resourceID, description string, changes map[string]string)
}
