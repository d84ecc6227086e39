package repository

import (
	"context"
	"time"

	"doctor-booking/internal/domain/user"
	"doctor-booking/internal/infra"
	"doctor-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var (
		name, rawEmail, phone string
		createdAt             time.Time
	)
	err := r.db.QueryRow(ctx,
		`SELECT name, email, phone, created_at FROM users WHERE id = $1`, id,
	).Scan(&name, &rawEmail, &phone, &createdAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	email, err := user.NewEmail(rawEmail)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user email is invalid", err)
	}
	return user.ReconstructUser(id, name, email, phone, createdAt), nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count users", err)
	}
	return n, nil
}
