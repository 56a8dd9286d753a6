package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventtrack/internal/domain"
)

type memStore struct {
	users map[string]User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]User)}
}

func (m *memStore) Insert(_ context.Context, u User) (User, error) {
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	m.users[u.IDNumber] = u
	return u, nil
}

func (m *memStore) GetByIDNumber(_ context.Context, idNumber string) (*User, error) {
	if u, ok := m.users[idNumber]; ok {
		copied := u
		return &copied, nil
	}
	return nil, nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*User, error) {
	for _, u := range m.users {
		if u.ID == id {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) List(_ context.Context) ([]User, error) {
	var out []User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memStore) Update(_ context.Context, u User) error {
	m.users[u.IDNumber] = u
	return nil
}

func (m *memStore) Delete(_ context.Context, idNumber string) (bool, error) {
	if _, ok := m.users[idNumber]; !ok {
		return false, nil
	}
	delete(m.users, idNumber)
	return true, nil
}

func student(idNumber string) User {
	return User{
		IDNumber: idNumber,
		Name:     "Alex Reyes",
		Role:     RoleStudent,
		Year:     "3",
		Course:   "BSIT",
	}
}

func TestCreateStudent(t *testing.T) {
	svc := NewService(newMemStore())

	u, err := svc.Create(context.Background(), student("2021-0001"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated storage id")
	}
	got, err := svc.GetByIDNumber(context.Background(), "2021-0001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Alex Reyes" {
		t.Fatalf("got name %q", got.Name)
	}
}

func TestCreateDuplicateIDNumber(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	if _, err := svc.Create(ctx, student("2021-0001")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, student("2021-0001"))
	if !errors.Is(err, domain.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestCreateRoleFieldValidation(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	cases := []struct {
		name string
		user User
		want string
	}{
		{
			name: "student missing year and course",
			user: User{IDNumber: "2021-0002", Name: "B", Role: RoleStudent},
			want: "Students must have year and course",
		},
		{
			name: "faculty missing department and position",
			user: User{IDNumber: "F-001", Name: "C", Role: RoleFaculty},
			want: "Faculty must have department and position",
		},
		{
			name: "unknown role",
			user: User{IDNumber: "X-001", Name: "D", Role: "staff"},
			want: "role must be student or faculty",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.user)
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != tc.want {
				t.Fatalf("got message %q, want %q", err.Error(), tc.want)
			}
		})
	}
}

func TestUpdateNotesOnlyPatch(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()
	if _, err := svc.Create(ctx, student("2021-0001")); err != nil {
		t.Fatalf("create: %v", err)
	}

	// A patch touching only notes must pass: validation runs against the
	// merged record, which still carries year and course.
	notes := "officer of the robotics club"
	u, err := svc.Update(ctx, "2021-0001", Patch{Notes: &notes})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Notes != notes || u.Year != "3" || u.Course != "BSIT" {
		t.Fatalf("merged record wrong: %+v", u)
	}
}

func TestUpdateRoleChangeRequiresVariantFields(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()
	if _, err := svc.Create(ctx, student("2021-0001")); err != nil {
		t.Fatalf("create: %v", err)
	}

	role := RoleFaculty
	_, err := svc.Update(ctx, "2021-0001", Patch{Role: &role})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	dept, pos := "CS", "Instructor"
	u, err := svc.Update(ctx, "2021-0001", Patch{Role: &role, Department: &dept, Position: &pos})
	if err != nil {
		t.Fatalf("update with variant fields: %v", err)
	}
	if u.Role != RoleFaculty || u.Department != "CS" {
		t.Fatalf("merged record wrong: %+v", u)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := NewService(newMemStore())
	name := "nobody"
	_, err := svc.Update(context.Background(), "missing", Patch{Name: &name})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteReturnsRecord(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()
	if _, err := svc.Create(ctx, student("2021-0001")); err != nil {
		t.Fatalf("create: %v", err)
	}

	u, err := svc.Delete(ctx, "2021-0001")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if u.IDNumber != "2021-0001" {
		t.Fatalf("got %+v", u)
	}

	if _, err := svc.Delete(ctx, "2021-0001"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
