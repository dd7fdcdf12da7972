package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dojo-membership-backend/internal/domain"
	"dojo-membership-backend/internal/repository"

	"github.com/lib/pq"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, applicant_user_id, status, note, approval_count, rejection_count,
	required_approvals, voter_ids, approver_ids, rejector_ids,
	first_approval_at, fully_approved_at, rejected_at, rejected_by, rejection_reason,
	recommended_improvements, allow_reapplication, reapplication_allowed_at,
	appeal_submitted, appeal_reason, appeal_submitted_at, created_on`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (` + applicationColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.db.ExecContext(ctx, query,
		app.ID, app.ApplicantUserID, app.Status, app.Note, app.ApprovalCount, app.RejectionCount,
		app.RequiredApprovals, pq.Array(app.VoterIDs), pq.Array(app.ApproverIDs), pq.Array(app.RejectorIDs),
		app.FirstApprovalAt, app.FullyApprovedAt, app.RejectedAt, app.RejectedBy, app.RejectionReason,
		app.RecommendedImprovements, app.AllowReapplication, app.ReapplicationAllowedAt,
		app.AppealSubmitted, app.AppealReason, app.AppealSubmittedAt, app.CreatedOn,
	)
	return err
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *applicationRepository) Update(ctx context.Context, app *domain.Application) error {
	res, err := r.db.ExecContext(ctx, applicationUpdateQuery+` WHERE id = $1`, applicationUpdateArgs(app)...)
	if err != nil {
		return err
	}
	return checkUpdated(res)
}

func (r *applicationRepository) UpdateStatusIf(ctx context.Context, app *domain.Application, expected domain.ApplicationStatus) (bool, error) {
	args := append(applicationUpdateArgs(app), expected)
	res, err := r.db.ExecContext(ctx, applicationUpdateQuery+` WHERE id = $1 AND status = $22`, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const applicationUpdateQuery = `UPDATE applications SET
	status = $2, note = $3, approval_count = $4, rejection_count = $5,
	voter_ids = $6, approver_ids = $7, rejector_ids = $8,
	first_approval_at = $9, fully_approved_at = $10, rejected_at = $11, rejected_by = $12,
	rejection_reason = $13, recommended_improvements = $14, allow_reapplication = $15,
	reapplication_allowed_at = $16, appeal_submitted = $17, appeal_reason = $18,
	appeal_submitted_at = $19, required_approvals = $20, applicant_user_id = $21`

func applicationUpdateArgs(app *domain.Application) []interface{} {
	return []interface{}{
		app.ID, app.Status, app.Note, app.ApprovalCount, app.RejectionCount,
		pq.Array(app.VoterIDs), pq.Array(app.ApproverIDs), pq.Array(app.RejectorIDs),
		app.FirstApprovalAt, app.FullyApprovedAt, app.RejectedAt, app.RejectedBy,
		app.RejectionReason, app.RecommendedImprovements, app.AllowReapplication,
		app.ReapplicationAllowedAt, app.AppealSubmitted, app.AppealReason,
		app.AppealSubmittedAt, app.RequiredApprovals, app.ApplicantUserID,
	}
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, userID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE applicant_user_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, userID)
}

func (r *applicationRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE status = $1 ORDER BY created_on ASC`
	return r.list(ctx, query, status)
}

func (r *applicationRepository) ListReapplicationUnlocked(ctx context.Context, from, to time.Time) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications
	          WHERE status = $1 AND allow_reapplication = TRUE
	          AND reapplication_allowed_at > $2 AND reapplication_allowed_at <= $3`
	return r.list(ctx, query, domain.ApplicationStatusRejected, from, to)
}

func (r *applicationRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	app := &domain.Application{}
	err := row.Scan(
		&app.ID, &app.ApplicantUserID, &app.Status, &app.Note, &app.ApprovalCount, &app.RejectionCount,
		&app.RequiredApprovals, pq.Array(&app.VoterIDs), pq.Array(&app.ApproverIDs), pq.Array(&app.RejectorIDs),
		&app.FirstApprovalAt, &app.FullyApprovedAt, &app.RejectedAt, &app.RejectedBy, &app.RejectionReason,
		&app.RecommendedImprovements, &app.AllowReapplication, &app.ReapplicationAllowedAt,
		&app.AppealSubmitted, &app.AppealReason, &app.AppealSubmittedAt, &app.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func checkUpdated(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}
