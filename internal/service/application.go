package service

import (
	"context"
	"fmt"
	"time"

	"dojo-membership-backend/internal/domain"
	"dojo-membership-backend/internal/repository"

	"github.com/google/uuid"
)

type applicationService struct {
	appRepo      repository.ApplicationRepository
	userRepo     repository.UserRepository
	rejectionSvc RejectionService
	auditSvc     AuditService
}

func NewApplicationService(
	appRepo repository.ApplicationRepository,
	userRepo repository.UserRepository,
	rejectionSvc RejectionService,
	auditSvc AuditService,
) ApplicationService {
	return &applicationService{
		appRepo:      appRepo,
		userRepo:     userRepo,
		rejectionSvc: rejectionSvc,
		auditSvc:     auditSvc,
	}
}

// SubmitApplication opens a new membership application in SUBMITTED state.
// A rejection never resurrects an old application; reapplying always means
// a fresh one, gated by the eligibility rules.
func (s *applicationService) SubmitApplication(ctx context.Context, userID, note string) (*domain.Application, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load applicant: %w", err)
	}

	eligibility, err := s.rejectionSvc.CheckReapplicationEligibility(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		return nil, fmt.Errorf("%w: %s", domain.ErrIneligibleState, eligibility.Reason)
	}

	app := &domain.Application{
		ID:                uuid.NewString(),
		ApplicantUserID:   user.ID,
		Status:            domain.ApplicationStatusSubmitted,
		Note:              note,
		RequiredApprovals: domain.RequiredApprovals,
		CreatedOn:         time.Now().UTC(),
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.auditSvc.Record(ctx, userID, "application.submitted", "application", app.ID,
		"membership application submitted", nil)
	return app, nil
}

// WithdrawApplication lets the applicant terminate their own pending
// application. WITHDRAWN is terminal like APPROVED and REJECTED.
func (s *applicationService) WithdrawApplication(ctx context.Context, applicationID, userID string) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.ApplicantUserID != userID {
		return nil, fmt.Errorf("%w: only the applicant can withdraw an application", domain.ErrUnauthorized)
	}
	if app.IsTerminal() {
		return nil, fmt.Errorf("%w: application %s is already %s", domain.ErrIneligibleState, app.ID, app.Status)
	}

	expected := app.Status
	app.Status = domain.ApplicationStatusWithdrawn
	updated, err := s.appRepo.UpdateStatusIf(ctx, app, expected)
	if err != nil {
		return nil, fmt.Errorf("failed to withdraw application: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: application %s changed state during withdrawal", domain.ErrIneligibleState, app.ID)
	}

	s.auditSvc.Record(ctx, userID, "application.withdrawn", "application", app.ID,
		"application withdrawn by applicant", nil)
	return app, nil
}

func (s *applicationService) GetApplication(ctx context.Context, id string) (*domain.Application, error) {
	return s.appRepo.GetByID(ctx, id)
}

func (s *applicationService) ListApplications(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: status filter is required", domain.ErrValidation)
	}
	return s.appRepo.ListByStatus(ctx, status)
}
