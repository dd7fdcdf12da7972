package service

import (
	"context"
	"time"

	"dojo-membership-backend/internal/domain"
	"dojo-membership-backend/internal/logger"
	"dojo-membership-backend/internal/repository"

	"github.com/google/uuid"
)

type auditService struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditService(auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) Record(ctx context.Context, actorID, action, resourceType, resourceID, description string, changes map[string]string) {
	entry := &domain.AuditLog{
		ID:           uuid.NewString(),
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Description:  description,
		Changes:      changes,
		CreatedOn:    time.Now().UTC(),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		logger.Warn("Failed to record audit entry", "action", action, "resource_id", resourceID, "error", err)
	}
}
