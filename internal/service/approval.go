package service

import (
	"context"
	"fmt"
	"time"

	"dojo-membership-backend/internal/domain"
	"dojo-membership-backend/internal/logger"
	"dojo-membership-backend/internal/repository"

	"github.com/google/uuid"
)

type approvalService struct {
	appRepo         repository.ApplicationRepository
	voteRepo        repository.VoteRepository
	userRepo        repository.UserRepository
	emailSvc        EmailService
	auditSvc        AuditService
	checkoutBaseURL string
}

func NewApprovalService(
	appRepo repository.ApplicationRepository,
	voteRepo repository.VoteRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	auditSvc AuditService,
	checkoutBaseURL string,
) ApprovalService {
	return &approvalService{
		appRepo:         appRepo,
		voteRepo:        voteRepo,
		userRepo:        userRepo,
		emailSvc:        emailSvc,
		auditSvc:        auditSvc,
		checkoutBaseURL: checkoutBaseURL,
	}
}

// CastVote validates and persists one board member's vote, then applies the
// resulting state transition. Precondition failures on the status write are
// resolved by re-reading and reporting the now-current state instead of
// erroring, since they only mean another board member's vote landed first.
func (s *approvalService) CastVote(ctx context.Context, applicationID, voterID string, decision domain.VoteDecision, notes string, conditions []string) (*domain.VoteResult, error) {
	if decision != domain.VoteDecisionApprove && decision != domain.VoteDecisionReject {
		return nil, fmt.Errorf("%w: unknown vote decision %q", domain.ErrValidation, decision)
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !app.IsVotable() {
		return nil, fmt.Errorf("%w: application %s is %s", domain.ErrIneligibleState, app.ID, app.Status)
	}
	if voterID == app.ApplicantUserID {
		return nil, domain.ErrSelfApproval
	}
	existing, err := s.voteRepo.GetActiveByVoter(ctx, applicationID, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing vote: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateVote
	}

	active, err := s.voteRepo.ListActiveByApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active votes: %w", err)
	}

	now := time.Now().UTC()
	vote := &domain.Vote{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		VoterID:       voterID,
		Decision:      decision,
		IsActive:      true,
		Sequence:      len(active) + 1,
		Notes:         notes,
		Conditions:    conditions,
		CastOn:        now,
	}
	if err := s.voteRepo.Create(ctx, vote); err != nil {
		return nil, fmt.Errorf("failed to persist vote: %w", err)
	}

	// Re-fetch so the decision sees the vote just written, plus anything a
	// concurrent writer slipped in.
	active, err = s.voteRepo.ListActiveByApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload active votes: %w", err)
	}
	quorum := EvaluateQuorum(app, active)

	expected := app.Status
	app.VoterIDs = appendUnique(app.VoterIDs, voterID)

	switch {
	case decision == domain.VoteDecisionReject:
		return s.applyRejectVote(ctx, app, vote, expected, notes, now)

	case quorum.NextStatus == domain.ApplicationStatusApproved:
		return s.applyQuorumApproval(ctx, app, vote, quorum, expected, now)

	case quorum.NextStatus == domain.ApplicationStatusUnderReview:
		app.Status = domain.ApplicationStatusUnderReview
		app.ApprovalCount = quorum.ApprovedCount
		app.ApproverIDs = appendUnique(app.ApproverIDs, voterID)
		app.FirstApprovalAt = &now
		updated, err := s.appRepo.UpdateStatusIf(ctx, app, expected)
		if err != nil {
			return nil, fmt.Errorf("failed to update application status: %w", err)
		}
		if !updated {
			return s.resolveLostRace(ctx, applicationID, vote)
		}
		s.auditSvc.Record(ctx, voterID, "application.vote.approve", "application", app.ID,
			"first board approval recorded", map[string]string{"status": string(app.Status)})
		return &domain.VoteResult{
			ApplicationID: app.ID,
			Status:        app.Status,
			ApprovalCount: app.ApprovalCount,
			QuorumReached: false,
			Vote:          vote,
		}, nil

	default:
		// Approval that neither opens review nor crosses quorum; keep the
		// coarse counters in sync with the vote set.
		app.ApprovalCount = quorum.ApprovedCount
		app.ApproverIDs = appendUnique(app.ApproverIDs, voterID)
		if err := s.appRepo.Update(ctx, app); err != nil {
			return nil, fmt.Errorf("failed to update application counters: %w", err)
		}
		s.auditSvc.Record(ctx, voterID, "application.vote.approve", "application", app.ID,
			"board approval recorded", map[string]string{"approval_count": fmt.Sprintf("%d", app.ApprovalCount)})
		return &domain.VoteResult{
			ApplicationID: app.ID,
			Status:        app.Status,
			ApprovalCount: app.ApprovalCount,
			QuorumReached: quorum.QuorumReached,
			Vote:          vote,
		}, nil
	}
}

func (s *approvalService) applyRejectVote(ctx context.Context, app *domain.Application, vote *domain.Vote, expected domain.ApplicationStatus, notes string, now time.Time) (*domain.VoteResult, error) {
	reason := notes
	if reason == "" {
		reason = "rejected by board vote"
	}
	app.Status = domain.ApplicationStatusRejected
	app.RejectionCount++
	app.RejectorIDs = appendUnique(app.RejectorIDs, vote.VoterID)
	app.RejectedAt = &now
	app.RejectedBy = vote.VoterID
	app.RejectionReason = reason

	updated, err := s.appRepo.UpdateStatusIf(ctx, app, expected)
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	if !updated {
		return s.resolveLostRace(ctx, app.ID, vote)
	}
	// The application is terminal now; prior approvals no longer count toward
	// any quorum. Failing to flip them leaves the audit trail lying, which is
	// worse than failing the call.
	if err := s.voteRepo.InvalidateApprovals(ctx, app.ID); err != nil {
		return nil, fmt.Errorf("%w: rejection recorded but approval invalidation failed: %v", domain.ErrStoreInconsistency, err)
	}

	s.auditSvc.Record(ctx, vote.VoterID, "application.vote.reject", "application", app.ID,
		"application rejected by board vote", map[string]string{"reason": reason})
	s.notifyRejection(ctx, app)

	return &domain.VoteResult{
		ApplicationID: app.ID,
		Status:        app.Status,
		ApprovalCount: 0,
		QuorumReached: false,
		Vote:          vote,
	}, nil
}

func (s *approvalService) applyQuorumApproval(ctx context.Context, app *domain.Application, vote *domain.Vote, quorum QuorumDecision, expected domain.ApplicationStatus, now time.Time) (*domain.VoteResult, error) {
	app.Status = domain.ApplicationStatusApproved
	app.ApprovalCount = quorum.ApprovedCount
	app.ApproverIDs = appendUnique(app.ApproverIDs, vote.VoterID)
	app.FullyApprovedAt = &now
	if app.FirstApprovalAt == nil {
		app.FirstApprovalAt = &now
	}

	// The compare-and-update is what makes auto-promotion fire exactly once:
	// of two concurrent deciding votes, only one sees the precondition hold.
	updated, err := s.appRepo.UpdateStatusIf(ctx, app, expected)
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	if !updated {
		return s.resolveLostRace(ctx, app.ID, vote)
	}

	s.promoteApplicant(ctx, app, vote.VoterID)

	return &domain.VoteResult{
		ApplicationID: app.ID,
		Status:        app.Status,
		ApprovalCount: app.ApprovalCount,
		QuorumReached: true,
		Vote:          vote,
	}, nil
}

// resolveLostRace handles a failed status precondition: another writer
// completed a transition between our read and write. The caller's vote is
// already persisted, so the race is benign and we report the current state.
// If the vote is missing from the store the failure is not benign.
func (s *approvalService) resolveLostRace(ctx context.Context, applicationID string, vote *domain.Vote) (*domain.VoteResult, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read application after lost race: %w", err)
	}
	votes, err := s.voteRepo.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read votes after lost race: %w", err)
	}
	found := false
	for i := range votes {
		if votes[i].ID == vote.ID {
			found = true
			vote = &votes[i]
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: vote %s missing after status precondition failure", domain.ErrStoreInconsistency, vote.ID)
	}
	logger.Info("Vote lost status race; returning current application state",
		"application_id", applicationID, "voter_id", vote.VoterID, "status", app.Status)
	return &domain.VoteResult{
		ApplicationID: app.ID,
		Status:        app.Status,
		ApprovalCount: app.ApprovalCount,
		QuorumReached: false,
		Vote:          vote,
	}, nil
}

// promoteApplicant runs the one-time side effects of reaching quorum: the
// applicant becomes a full member and receives the payment checkout link.
// These are best-effort; the approval itself is already durable.
func (s *approvalService) promoteApplicant(ctx context.Context, app *domain.Application, approvedBy string) {
	s.auditSvc.Record(ctx, approvedBy, "application.approved", "application", app.ID,
		"application fully approved by board quorum", map[string]string{
			"approval_count": fmt.Sprintf("%d", app.ApprovalCount),
		})

	user, err := s.userRepo.GetByID(ctx, app.ApplicantUserID)
	if err != nil {
		logger.Error("Failed to load applicant for promotion", "application_id", app.ID, "user_id", app.ApplicantUserID, "error", err)
		return
	}
	if err := s.userRepo.UpdateRole(ctx, user.ID, domain.UserRoleMember); err != nil {
		logger.Error("Failed to elevate applicant role", "application_id", app.ID, "user_id", user.ID, "error", err)
	}

	checkoutURL := fmt.Sprintf("%s/checkout?application_id=%s", s.checkoutBaseURL, app.ID)
	if err := s.emailSvc.SendApprovalPaymentLink(ctx, user.Email, user.Name, user.MembershipTier, checkoutURL); err != nil {
		logger.Error("Failed to send approval payment link", "application_id", app.ID, "user_id", user.ID, "error", err)
	}
}

func (s *approvalService) notifyRejection(ctx context.Context, app *domain.Application) {
	user, err := s.userRepo.GetByID(ctx, app.ApplicantUserID)
	if err != nil {
		logger.Error("Failed to load applicant for rejection notice", "application_id", app.ID, "user_id", app.ApplicantUserID, "error", err)
		return
	}
	if err := s.emailSvc.SendRejectionNotice(ctx, user.Email, user.Name, app.RejectionReason, app.RecommendedImprovements, app.ReapplicationAllowedAt); err != nil {
		logger.Error("Failed to send rejection notice", "application_id", app.ID, "user_id", user.ID, "error", err)
	}
}

func (s *approvalService) CheckApprovalQuorum(ctx context.Context, applicationID string) (*domain.QuorumStatus, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	active, err := s.voteRepo.ListActiveByApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active votes: %w", err)
	}
	quorum := EvaluateQuorum(app, active)
	return &domain.QuorumStatus{
		ApplicationID:     app.ID,
		Status:            app.Status,
		ApprovedCount:     quorum.ApprovedCount,
		RequiredApprovals: app.RequiredApprovals,
		QuorumReached:     quorum.QuorumReached,
		ActiveVotes:       len(active),
	}, nil
}

func (s *approvalService) GetApprovalStatus(ctx context.Context, applicationID string) (*domain.ApprovalStatus, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	votes, err := s.voteRepo.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vote history: %w", err)
	}
	return &domain.ApprovalStatus{Application: app, Votes: votes}, nil
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
