package admin

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Repository persists admins in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const adminColumns = `id, first_name, middle_name, last_name, email, password_hash, created_at, updated_at`

func scanAdmin(row interface{ Scan(...any) error }) (Admin, error) {
	var a Admin
	err := row.Scan(&a.ID, &a.FirstName, &a.MiddleName, &a.LastName, &a.Email,
		&a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Insert writes a new admin.
func (r *Repository) Insert(ctx context.Context, a Admin) (Admin, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO admins (id, first_name, middle_name, last_name, email, password_hash)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at
	`, a.ID, a.FirstName, a.MiddleName, a.LastName, a.Email, a.PasswordHash)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return Admin{}, err
	}
	return a, nil
}

// GetByEmail returns an admin by email, or nil when absent.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+adminColumns+` FROM admins WHERE email = $1
	`, email)
	a, err := scanAdmin(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// GetByID returns an admin by storage id, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*Admin, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+adminColumns+` FROM admins WHERE id = $1
	`, id)
	a, err := scanAdmin(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// UpdatePassword replaces the stored hash for an email.
func (r *Repository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE admins SET password_hash = $2, updated_at = $3 WHERE email = $1
	`, email, passwordHash, time.Now().UTC())
	return err
}
