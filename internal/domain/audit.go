package domain

import "time"

// AuditLog is one immutable record of a state-changing operation.
// ActorID is empty for system-initiated actions.
type AuditLog struct {
	ID           string            `json:"id"`
	ActorID      string            `json:"actor_id,omitempty"`
	Action       string            `json:"action"`
	ResourceType string            `json:"resource_type"`
	ResourceID   string            `json:"resource_id"`
	Description  string            `json:"description"`
	Changes      map[string]string `json:"changes,omitempty"`
	CreatedOn    time.Time         `json:"created_on"`
}
