package postgres

import (
	"database/sql"

	"dojo-membership-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ApplicationRepository
	repository.VoteRepository
	repository.UserRepository
	repository.AuditLogRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		ApplicationRepository: NewApplicationRepository(db),
		VoteRepository:        NewVoteRepository(db),
		UserRepository:        NewUserRepository(db),
		AuditLogRepository:    NewAuditLogRepository(db),
	}
}
