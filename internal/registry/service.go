package registry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"eventtrack/internal/directory"
	"eventtrack/internal/domain"
)

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, e Event) (Event, error)
	Get(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, e Event) error
	Delete(ctx context.Context, id string) (bool, error)
	AppendAttendance(ctx context.Context, eventID string, rec CheckIn) (bool, error)
}

// Directory resolves id numbers for reference validation.
type Directory interface {
	GetByIDNumber(ctx context.Context, idNumber string) (*directory.User, error)
}

// Service implements the event registry operations.
type Service struct {
	store Store
	users Directory
	now   func() time.Time
}

// NewService creates a service backed by a store and a user directory.
func NewService(store Store, users Directory) *Service {
	return &Service{store: store, users: users, now: time.Now}
}

// Create validates references and persists a new event with an empty
// attendance list. The creator and every participant must resolve to an
// existing user by id number.
func (s *Service) Create(ctx context.Context, e Event) (Event, error) {
	if err := e.Validate(); err != nil {
		return Event{}, err
	}

	creator, err := s.users.GetByIDNumber(ctx, e.CreatedBy)
	if err != nil {
		return Event{}, err
	}
	if creator == nil {
		return Event{}, domain.Validationf("Invalid creator ID number. User does not exist.")
	}
	for _, participantID := range e.Participants {
		p, err := s.users.GetByIDNumber(ctx, participantID)
		if err != nil {
			return Event{}, err
		}
		if p == nil {
			return Event{}, domain.Validationf("Invalid participant ID number: %s. User does not exist.", participantID)
		}
	}

	e.ID = uuid.NewString()
	e.Attendance = []CheckIn{}
	if e.Participants == nil {
		e.Participants = []string{}
	}
	e.IsActive = true
	created, err := s.store.Insert(ctx, e)
	if err != nil {
		return Event{}, err
	}
	return s.derive(created), nil
}

// Get returns an event by storage id.
func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrEventNotFound
	}
	derived := s.derive(*e)
	return &derived, nil
}

// List returns all events with their effective activity state.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	events, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i] = s.derive(events[i])
	}
	return events, nil
}

// Update applies a merge-patch. References are not re-validated here,
// matching create-time-only validation of creator and participants.
func (s *Service) Update(ctx context.Context, id string, p Patch) (Event, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if current == nil {
		return Event{}, domain.ErrEventNotFound
	}
	merged := p.Apply(*current)
	if err := s.store.Update(ctx, merged); err != nil {
		return Event{}, err
	}
	return s.derive(merged), nil
}

// Delete removes an event. Its attendance history goes with it.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrEventNotFound
	}
	return nil
}

// RecordCheckIn appends a check-in record, returning false when the user
// already appears in the event's attendance. The store performs the
// duplicate guard and the append atomically.
func (s *Service) RecordCheckIn(ctx context.Context, eventID string, rec CheckIn) (bool, error) {
	return s.store.AppendAttendance(ctx, eventID, rec)
}

func (s *Service) derive(e Event) Event {
	e.IsActive = e.activeAt(s.now())
	return e
}
