package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dojo-membership-backend/internal/domain"
	"dojo-membership-backend/internal/logger"
	"dojo-membership-backend/internal/repository"
)

type rejectionService struct {
	appRepo  repository.ApplicationRepository
	voteRepo repository.VoteRepository
	userRepo repository.UserRepository
	emailSvc EmailService
	auditSvc AuditService
}

func NewRejectionService(
	appRepo repository.ApplicationRepository,
	voteRepo repository.VoteRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	auditSvc AuditService,
) RejectionService {
	return &rejectionService{
		appRepo:  appRepo,
		voteRepo: voteRepo,
		userRepo: userRepo,
		emailSvc: emailSvc,
		auditSvc: auditSvc,
	}
}

// RejectWithReason performs an administrative rejection outside the vote
// flow, with a mandatory reason and an optional reapplication window.
func (s *rejectionService) RejectWithReason(ctx context.Context, applicationID, actorID, reason, improvements string, allowReapplication bool) (*domain.RejectionResult, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.IsTerminal() {
		return nil, fmt.Errorf("%w: application %s is already %s", domain.ErrIneligibleState, app.ID, app.Status)
	}

	now := time.Now().UTC()
	expected := app.Status
	app.Status = domain.ApplicationStatusRejected
	app.RejectedAt = &now
	app.RejectedBy = actorID
	app.RejectionReason = reason
	app.RecommendedImprovements = improvements
	app.AllowReapplication = allowReapplication
	if allowReapplication {
		reapplyOn := now.AddDate(0, 0, domain.ReapplicationWindowDays)
		app.ReapplicationAllowedAt = &reapplyOn
	} else {
		app.ReapplicationAllowedAt = nil
	}

	updated, err := s.appRepo.UpdateStatusIf(ctx, app, expected)
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	if !updated {
		// Someone else terminalized the application between read and write.
		return nil, fmt.Errorf("%w: application %s changed state during rejection", domain.ErrIneligibleState, app.ID)
	}
	if err := s.voteRepo.InvalidateApprovals(ctx, app.ID); err != nil {
		return nil, fmt.Errorf("%w: rejection recorded but approval invalidation failed: %v", domain.ErrStoreInconsistency, err)
	}

	// Lifetime counter and notification are best-effort.
	if err := s.userRepo.IncrementReapplicationCount(ctx, app.ApplicantUserID); err != nil {
		logger.Warn("Failed to increment reapplication counter", "user_id", app.ApplicantUserID, "error", err)
	}
	s.auditSvc.Record(ctx, actorID, "application.rejected", "application", app.ID,
		"application rejected with reason", map[string]string{
			"reason":              reason,
			"allow_reapplication": fmt.Sprintf("%t", allowReapplication),
		})
	s.notifyRejection(ctx, app)

	return &domain.RejectionResult{
		ApplicationID:          app.ID,
		Status:                 app.Status,
		RejectedBy:             actorID,
		RejectionReason:        reason,
		AllowReapplication:     allowReapplication,
		ReapplicationAllowedAt: app.ReapplicationAllowedAt,
	}, nil
}

func (s *rejectionService) notifyRejection(ctx context.Context, app *domain.Application) {
	user, err := s.userRepo.GetByID(ctx, app.ApplicantUserID)
	if err != nil {
		logger.Error("Failed to load applicant for rejection notice", "application_id", app.ID, "user_id", app.ApplicantUserID, "error", err)
		return
	}
	if err := s.emailSvc.SendRejectionNotice(ctx, user.Email, user.Name, app.RejectionReason, app.RecommendedImprovements, app.ReapplicationAllowedAt); err != nil {
		logger.Error("Failed to send rejection notice", "application_id", app.ID, "user_id", user.ID, "error", err)
	}
}

// CheckReapplicationEligibility inspects the user's most recent application.
func (s *rejectionService) CheckReapplicationEligibility(ctx context.Context, userID string) (*domain.EligibilityResult, error) {
	apps, err := s.appRepo.ListByApplicant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}
	if len(apps) == 0 {
		return &domain.EligibilityResult{Eligible: true}, nil
	}

	latest := apps[0]
	if latest.Status != domain.ApplicationStatusRejected {
		return &domain.EligibilityResult{
			Eligible: false,
			Reason:   fmt.Sprintf("most recent application is %s and must be resolved first", latest.Status),
		}, nil
	}
	if !latest.AllowReapplication {
		return &domain.EligibilityResult{
			Eligible: false,
			Reason:   "reapplication is not permitted for this rejection",
		}, nil
	}
	if latest.ReapplicationAllowedAt != nil && time.Now().UTC().Before(*latest.ReapplicationAllowedAt) {
		return &domain.EligibilityResult{
			Eligible:  false,
			Reason:    "reapplication window has not opened yet",
			ReapplyOn: latest.ReapplicationAllowedAt,
		}, nil
	}
	return &domain.EligibilityResult{
		Eligible:                true,
		PreviousRejectionReason: latest.RejectionReason,
		RecommendedImprovements: latest.RecommendedImprovements,
	}, nil
}

// SubmitAppeal records an appeal on a rejected application. At most one
// appeal per application; resolution happens outside this workflow.
func (s *rejectionService) SubmitAppeal(ctx context.Context, applicationID, reason string) (*domain.AppealResult, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: appeal reason is required", domain.ErrValidation)
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusRejected {
		return nil, fmt.Errorf("%w: only rejected applications can be appealed", domain.ErrIneligibleState)
	}
	if app.AppealSubmitted {
		return nil, fmt.Errorf("%w: an appeal has already been submitted for application %s", domain.ErrIneligibleState, app.ID)
	}

	now := time.Now().UTC()
	app.AppealSubmitted = true
	app.AppealReason = reason
	app.AppealSubmittedAt = &now

	updated, err := s.appRepo.UpdateStatusIf(ctx, app, domain.ApplicationStatusRejected)
	if err != nil {
		return nil, fmt.Errorf("failed to record appeal: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: application %s changed state during appeal", domain.ErrIneligibleState, app.ID)
	}

	s.auditSvc.Record(ctx, app.ApplicantUserID, "application.appeal.submitted", "application", app.ID,
		"appeal submitted against rejection", map[string]string{"reason": reason})

	return &domain.AppealResult{ApplicationID: app.ID, AppealSubmittedAt: now}, nil
}
