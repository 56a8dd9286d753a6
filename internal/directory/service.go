package directory

import (
	"context"

	"github.com/google/uuid"

	"eventtrack/internal/domain"
)

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, u User) (User, error)
	GetByIDNumber(ctx context.Context, idNumber string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, idNumber string) (bool, error)
}

// Service implements the user directory operations.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a new user. The id number must be unique and the
// role-specific fields must be present.
func (s *Service) Create(ctx context.Context, u User) (User, error) {
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	existing, err := s.store.GetByIDNumber(ctx, u.IDNumber)
	if err != nil {
		return User{}, err
	}
	if existing != nil {
		return User{}, domain.ErrDuplicateUser
	}
	u.ID = uuid.NewString()
	return s.store.Insert(ctx, u)
}

// GetByIDNumber returns a user by id number.
func (s *Service) GetByIDNumber(ctx context.Context, idNumber string) (*User, error) {
	u, err := s.store.GetByIDNumber(ctx, idNumber)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// GetByID returns a user by storage id.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// List returns all users. No pagination.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

// Update applies a partial update. The merged record is validated, so a
// patch touching only notes on a student no longer has to carry year and
// course.
func (s *Service) Update(ctx context.Context, idNumber string, p Patch) (User, error) {
	current, err := s.store.GetByIDNumber(ctx, idNumber)
	if err != nil {
		return User{}, err
	}
	if current == nil {
		return User{}, domain.ErrUserNotFound
	}
	merged := p.Apply(*current)
	if err := merged.Validate(); err != nil {
		return User{}, err
	}
	if err := s.store.Update(ctx, merged); err != nil {
		return User{}, err
	}
	return merged, nil
}

// Delete removes a user. Events referencing the id number as creator,
// participant, or attendee are not cleaned up.
func (s *Service) Delete(ctx context.Context, idNumber string) (User, error) {
	current, err := s.store.GetByIDNumber(ctx, idNumber)
	if err != nil {
		return User{}, err
	}
	if current == nil {
		return User{}, domain.ErrUserNotFound
	}
	if _, err := s.store.Delete(ctx, idNumber); err != nil {
		return User{}, err
	}
	return *current, nil
}
