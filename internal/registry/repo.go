package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// Repository persists events in Postgres. Participants and attendance
// live in jsonb columns on the event row, keeping the original
// single-document layout and its atomicity unit.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const eventColumns = `id, title, description, type, location, start_date, end_date,
	start_time, end_time, created_by, expected_participants, participants,
	attendance, is_active, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var e Event
	var participants, attendance []byte
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Type, &e.Location,
		&e.StartDate, &e.EndDate, &e.StartTime, &e.EndTime, &e.CreatedBy,
		&e.ExpectedParticipants, &participants, &attendance, &e.IsActive,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return Event{}, err
	}
	if err := json.Unmarshal(participants, &e.Participants); err != nil {
		return Event{}, err
	}
	if err := json.Unmarshal(attendance, &e.Attendance); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Insert writes a new event.
func (r *Repository) Insert(ctx context.Context, e Event) (Event, error) {
	participants, err := json.Marshal(e.Participants)
	if err != nil {
		return Event{}, err
	}
	attendance, err := json.Marshal(e.Attendance)
	if err != nil {
		return Event{}, err
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO events (id, title, description, type, location, start_date, end_date,
			start_time, end_time, created_by, expected_participants, participants,
			attendance, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING created_at, updated_at
	`, e.ID, e.Title, e.Description, e.Type, e.Location, e.StartDate, e.EndDate,
		e.StartTime, e.EndTime, e.CreatedBy, e.ExpectedParticipants, participants,
		attendance, e.IsActive)
	if err := row.Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Get returns an event by storage id, or nil when absent.
func (r *Repository) Get(ctx context.Context, id string) (*Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+` FROM events WHERE id = $1
	`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// List returns all events, oldest first.
func (r *Repository) List(ctx context.Context) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update rewrites every mutable column of the event row.
func (r *Repository) Update(ctx context.Context, e Event) error {
	participants, err := json.Marshal(e.Participants)
	if err != nil {
		return err
	}
	attendance, err := json.Marshal(e.Attendance)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE events
		SET title = $2, description = $3, type = $4, location = $5, start_date = $6,
		    end_date = $7, start_time = $8, end_time = $9,
		    expected_participants = $10, participants = $11, attendance = $12,
		    is_active = $13, updated_at = $14
		WHERE id = $1
	`, e.ID, e.Title, e.Description, e.Type, e.Location, e.StartDate, e.EndDate,
		e.StartTime, e.EndTime, e.ExpectedParticipants, participants, attendance,
		e.IsActive, time.Now().UTC())
	return err
}

// Delete removes an event and its embedded attendance irreversibly.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// AppendAttendance appends a check-in record unless one with the same
// user id number is already present. The guard and the append run in a
// single statement, so two racing check-ins for the same pair cannot both
// land. Returns false when the record was already there.
func (r *Repository) AppendAttendance(ctx context.Context, eventID string, rec CheckIn) (bool, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE events
		SET attendance = attendance || $2::jsonb, updated_at = NOW()
		WHERE id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM jsonb_array_elements(attendance) AS rec
			WHERE rec->>'user' = $3
		  )
	`, eventID, payload, rec.User)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
