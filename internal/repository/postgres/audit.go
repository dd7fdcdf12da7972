package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"dojo-membership-backend/internal/domain"
	"dojo-membership-backend/internal/repository"
)

type auditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) repository.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	changes, err := json.Marshal(entry.Changes)
	if err != nil {
		return err
	}
	query := `INSERT INTO audit_logs (id, actor_id, action, resource_type, resource_id, description, changes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.ActorID, entry.Action, entry.ResourceType, entry.ResourceID,
		entry.Description, changes, entry.CreatedOn,
	)
	return err
}

func (r *auditLogRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]domain.AuditLog, error) {
	query := `SELECT id, actor_id, action, resource_type, resource_id, description, changes, created_on
	          FROM audit_logs WHERE resource_type = $1 AND resource_id = $2 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, resourceType, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		var changes []byte
		if err := rows.Scan(
			&entry.ID, &entry.ActorID, &entry.Action, &entry.ResourceType, &entry.ResourceID,
			&entry.Description, &changes, &entry.CreatedOn,
		); err != nil {
			return nil, err
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &entry.Changes); err != nil {
				return nil, err
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
