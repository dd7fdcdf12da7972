package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dojo-membership-backend/internal/domain"
)

var voteRowColumns = []string{
	"id", "application_id", "voter_id", "decision", "is_active", "sequence", "notes", "conditions", "cast_on",
}

func TestVoteRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVoteRepository(db)
	vote := &domain.Vote{
		ID:            "v1",
		ApplicationID: "app-1",
		VoterID:       "board-1",
		Decision:      domain.VoteDecisionApprove,
		IsActive:      true,
		Sequence:      1,
		Conditions:    []string{"complete safety briefing"},
		CastOn:        time.Now().UTC(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO votes`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), vote))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepository_ListActiveByApplication(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVoteRepository(db)
	castOn := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(voteRowColumns).
		AddRow("v1", "app-1", "board-1", "APPROVE", true, 1, "solid candidate", "{}", castOn).
		AddRow("v2", "app-1", "board-2", "APPROVE", true, 2, "", "{mentor assigned}", castOn)

	mock.ExpectQuery(`SELECT .+ FROM votes WHERE application_id = \$1 AND is_active = TRUE ORDER BY sequence ASC`).
		WithArgs("app-1").
		WillReturnRows(rows)

	votes, err := repo.ListActiveByApplication(context.Background(), "app-1")
	require.NoError(t, err)
	require.Len(t, votes, 2)
	assert.Equal(t, domain.VoteDecisionApprove, votes[0].Decision)
	assert.Equal(t, 2, votes[1].Sequence)
	assert.Equal(t, []string{"mentor assigned"}, votes[1].Conditions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepository_GetActiveByVoter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVoteRepository(db)

	t.Run("existing vote", func(t *testing.T) {
		rows := sqlmock.NewRows(voteRowColumns).
			AddRow("v1", "app-1", "board-1", "APPROVE", true, 1, "", "{}", time.Now().UTC())

		mock.ExpectQuery(`SELECT .+ FROM votes\s+WHERE application_id = \$1 AND voter_id = \$2 AND is_active = TRUE`).
			WithArgs("app-1", "board-1").
			WillReturnRows(rows)

		vote, err := repo.GetActiveByVoter(context.Background(), "app-1", "board-1")
		require.NoError(t, err)
		require.NotNil(t, vote)
		assert.Equal(t, "v1", vote.ID)
	})

	t.Run("no vote yet", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM votes\s+WHERE application_id = \$1 AND voter_id = \$2 AND is_active = TRUE`).
			WithArgs("app-1", "board-3").
			WillReturnRows(sqlmock.NewRows(voteRowColumns))

		vote, err := repo.GetActiveByVoter(context.Background(), "app-1", "board-3")
		require.NoError(t, err)
		assert.Nil(t, vote)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepository_InvalidateApprovals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVoteRepository(db)

	mock.ExpectExec(`UPDATE votes SET is_active = FALSE\s+WHERE application_id = \$1 AND decision = \$2 AND is_active = TRUE`).
		WithArgs("app-1", string(domain.VoteDecisionApprove)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	assert.NoError(t, repo.InvalidateApprovals(context.Background(), "app-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
