package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"propmatch/internal/common"
	"propmatch/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, institutional_email, personal_email, password_hash, role, active, created_at`

func (r *UserRepository) Create(ctx context.Context, u user.User) (*user.User, error) {
	u.ID = common.NewUUID()
	u.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (id, name, institutional_email, personal_email, password_hash, role, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Name, u.InstitutionalEmail, u.PersonalEmail, u.PasswordHash, u.Role, u.Active, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "institutional email already registered", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u user.User) (*user.User, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET name = $1, personal_email = $2, active = $3 WHERE id = $4`,
		u.Name, u.PersonalEmail, u.Active, u.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update user", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, u.ID)
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE institutional_email = $1 OR personal_email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list users", err)
	}
	defer rows.Close()
	var items []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Name, &u.InstitutionalEmail, &u.PersonalEmail, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan user", err)
		}
		items = append(items, u)
	}
	return items, nil
}

func (r *UserRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete user", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return nil
}

func scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Name, &u.InstitutionalEmail, &u.PersonalEmail, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return &u, nil
}
