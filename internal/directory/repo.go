package directory

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Repository persists users in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const userColumns = `id, id_number, name, role, year, course, department, position, notes, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.IDNumber, &u.Name, &u.Role, &u.Year, &u.Course,
		&u.Department, &u.Position, &u.Notes, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Insert writes a new user.
func (r *Repository) Insert(ctx context.Context, u User) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, id_number, name, role, year, course, department, position, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`, u.ID, u.IDNumber, u.Name, u.Role, u.Year, u.Course, u.Department, u.Position, u.Notes)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

// GetByIDNumber returns a user by id number, or nil when absent.
func (r *Repository) GetByIDNumber(ctx context.Context, idNumber string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id_number = $1
	`, idNumber)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by storage id, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// List returns all users ordered by id number.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users ORDER BY id_number
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update rewrites every mutable column of the record.
func (r *Repository) Update(ctx context.Context, u User) error {
	u.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET name = $2, role = $3, year = $4, course = $5, department = $6,
		    position = $7, notes = $8, updated_at = $9
		WHERE id_number = $1
	`, u.IDNumber, u.Name, u.Role, u.Year, u.Course, u.Department, u.Position, u.Notes, u.UpdatedAt)
	return err
}

// Delete removes a user and reports whether a row was removed. Events
// referencing the id number are left untouched.
func (r *Repository) Delete(ctx context.Context, idNumber string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id_number = $1`, idNumber)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
