package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dojo-membership-backend/internal/domain"
	"dojo-membership-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, name, role, membership_tier, reapplication_count, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Role, user.MembershipTier, user.ReapplicationCount, user.CreatedOn,
	)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT id, email, name, role, membership_tier, reapplication_count, created_on
	          FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.Role, &user.MembershipTier,
		&user.ReapplicationCount, &user.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, userID string, role domain.UserRole) error {
	query := `UPDATE users SET role = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, role, userID)
	return err
}

func (r *userRepository) IncrementReapplicationCount(ctx context.Context, userID string) error {
	query := `UPDATE users SET reapplication_count = reapplication_count + 1 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
