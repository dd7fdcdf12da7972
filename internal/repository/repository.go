package repository

import (
	"context"
	"time"

	"dojo-membership-backend/internal/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	Update(ctx context.Context, app *domain.Application) error
	// UpdateStatusIf writes the application only when its stored status still
	// equals expected. Returns false (and no error) when the precondition does
	// not hold, so callers can treat the lost race as benign.
	UpdateStatusIf(ctx context.Context, app *domain.Application, expected domain.ApplicationStatus) (bool, error)
	ListByApplicant(ctx context.Context, userID string) ([]domain.Application, error)
	ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error)
	ListReapplicationUnlocked(ctx context.Context, from, to time.Time) ([]domain.Application, error)
}

type VoteRepository interface {
	Create(ctx context.Context, vote *domain.Vote) error
	ListByApplication(ctx context.Context, applicationID string) ([]domain.Vote, error)
	ListActiveByApplication(ctx context.Context, applicationID string) ([]domain.Vote, error)
	// GetActiveByVoter returns nil, nil when the voter has no active vote.
	GetActiveByVoter(ctx context.Context, applicationID, voterID string) (*domain.Vote, error)
	InvalidateApprovals(ctx context.Context, applicationID string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateRole(ctx context.Context, userID string, role domain.UserRole) error
	IncrementReapplicationCount(ctx context.Context, userID string) error
}

type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	ListByResource(ctx context.Context, resourceType, resourceID string) ([]domain.AuditLog, error)
}
