package admin

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"eventtrack/internal/domain"
)

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, a Admin) (Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	GetByID(ctx context.Context, id string) (*Admin, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// Service implements admin account management and credential checks.
// Sessions are not kept here; login hands back the verified account and
// the API layer issues a token for it.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a new admin. Emails are stored lowercased.
func (s *Service) Create(ctx context.Context, a Admin, password string) (Admin, error) {
	if a.FirstName == "" || a.LastName == "" || a.Email == "" || password == "" {
		return Admin{}, domain.Validationf("firstName, lastName, email and password are required")
	}
	a.Email = strings.ToLower(a.Email)

	existing, err := s.store.GetByEmail(ctx, a.Email)
	if err != nil {
		return Admin{}, err
	}
	if existing != nil {
		return Admin{}, domain.ErrAdminExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Admin{}, err
	}
	a.ID = uuid.NewString()
	a.PasswordHash = string(hash)
	return s.store.Insert(ctx, a)
}

// Login verifies credentials and returns the account. Unknown emails and
// wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, email, password string) (Admin, error) {
	a, err := s.store.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return Admin{}, err
	}
	if a == nil {
		return Admin{}, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return Admin{}, domain.ErrInvalidCredentials
	}
	return *a, nil
}

// Get returns an admin by storage id.
func (s *Service) Get(ctx context.Context, id string) (Admin, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Admin{}, err
	}
	if a == nil {
		return Admin{}, domain.ErrAdminNotFound
	}
	return *a, nil
}

// ResetPassword rehashes and stores a new password for an email.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = strings.ToLower(email)
	a, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrAdminNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.store.UpdatePassword(ctx, email, string(hash))
}
