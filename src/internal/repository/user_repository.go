package repository

import (
	"context"
	"database/sql"
	"errors"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/pkg/databases/postgres"
)

type UserRepository struct {
	DB postgres.DBInterface
}

func NewUserRepository(db postgres.DBInterface) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var user entity.User
	err = db.GetContext(ctx, &user, `SELECT * FROM users WHERE user_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, tenantID, email string) (*entity.User, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var user entity.User
	err = db.GetContext(ctx, &user,
		`SELECT * FROM users WHERE tenant_id = $1 AND email = $2`, tenantID, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) Insert(ctx context.Context, user *entity.User) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (user_id, tenant_id, role, full_name, email, password_hash, mobile_number, created_at)
		VALUES (:user_id, :tenant_id, :role, :full_name, :email, :password_hash, :mobile_number, :created_at)
	`
	_, err = db.NamedExecContext(ctx, query, user)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE user_id = $1`
	_, err = db.ExecContext(ctx, query, userID, passwordHash)
	return err
}
