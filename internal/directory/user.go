package directory

import (
	"time"

	"eventtrack/internal/domain"
)

// Role discriminates the two user variants.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
)

// User is an identity record keyed by a human-assigned id number. The
// storage id is never used as a foreign key; events reference users by
// IDNumber throughout.
type User struct {
	ID         string    `json:"id"`
	IDNumber   string    `json:"idNumber"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	Year       string    `json:"year,omitempty"`
	Course     string    `json:"course,omitempty"`
	Department string    `json:"department,omitempty"`
	Position   string    `json:"position,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Name       *string `json:"name"`
	Role       *Role   `json:"role"`
	Year       *string `json:"year"`
	Course     *string `json:"course"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	Notes      *string `json:"notes"`
}

// Validate checks the record structurally: the fields of the variant
// selected by Role must be present.
func (u User) Validate() error {
	if u.IDNumber == "" {
		return domain.Validationf("idNumber is required")
	}
	if u.Name == "" {
		return domain.Validationf("name is required")
	}
	switch u.Role {
	case RoleStudent:
		if u.Year == "" || u.Course == "" {
			return domain.Validationf("Students must have year and course")
		}
	case RoleFaculty:
		if u.Department == "" || u.Position == "" {
			return domain.Validationf("Faculty must have department and position")
		}
	default:
		return domain.Validationf("role must be student or faculty")
	}
	return nil
}

// Apply merges the patch into a copy of u and returns it.
func (p Patch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Year != nil {
		u.Year = *p.Year
	}
	if p.Course != nil {
		u.Course = *p.Course
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.Position != nil {
		u.Position = *p.Position
	}
	if p.Notes != nil {
		u.Notes = *p.Notes
	}
	return u
}
