package postgres

import (
	"context"
	"database/sql"
	"errors"

	"dojo-membership-backend/internal/domain"
	"dojo-membership-backend/internal/repository"

	"github.com/lib/pq"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) repository.VoteRepository {
	return &voteRepository{db: db}
}

const voteColumns = `id, application_id, voter_id, decision, is_active, sequence, notes, conditions, cast_on`

func (r *voteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	query := `INSERT INTO votes (` + voteColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		vote.ID, vote.ApplicationID, vote.VoterID, vote.Decision, vote.IsActive,
		vote.Sequence, vote.Notes, pq.Array(vote.Conditions), vote.CastOn,
	)
	return err
}

func (r *voteRepository) ListByApplication(ctx context.Context, applicationID string) ([]domain.Vote, error) {
	query := `SELECT ` + voteColumns + ` FROM votes WHERE application_id = $1 ORDER BY sequence ASC`
	return r.list(ctx, query, applicationID)
}

func (r *voteRepository) ListActiveByApplication(ctx context.Context, applicationID string) ([]domain.Vote, error) {
	query := `SELECT ` + voteColumns + ` FROM votes WHERE application_id = $1 AND is_active = TRUE ORDER BY sequence ASC`
	return r.list(ctx, query, applicationID)
}

func (r *voteRepository) GetActiveByVoter(ctx context.Context, applicationID, voterID string) (*domain.Vote, error) {
	query := `SELECT ` + voteColumns + ` FROM votes
	          WHERE application_id = $1 AND voter_id = $2 AND is_active = TRUE
	          ORDER BY sequence DESC LIMIT 1`
	vote, err := scanVote(r.db.QueryRowContext(ctx, query, applicationID, voterID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return vote, nil
}

func (r *voteRepository) InvalidateApprovals(ctx context.Context, applicationID string) error {
	query := `UPDATE votes SET is_active = FALSE
	          WHERE application_id = $1 AND decision = $2 AND is_active = TRUE`
	_, err := r.db.ExecContext(ctx, query, applicationID, domain.VoteDecisionApprove)
	return err
}

func (r *voteRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Vote, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []domain.Vote
	for rows.Next() {
		vote, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		votes = append(votes, *vote)
	}
	return votes, rows.Err()
}

func scanVote(row rowScanner) (*domain.Vote, error) {
	vote := &domain.Vote{}
	err := row.Scan(
		&vote.ID, &vote.ApplicationID, &vote.VoterID, &vote.Decision, &vote.IsActive,
		&vote.Sequence, &vote.Notes, pq.Array(&vote.Conditions), &vote.CastOn,
	)
	if err != nil {
		return nil, err
	}
	return vote, nil
}
