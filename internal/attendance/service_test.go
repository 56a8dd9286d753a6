package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventtrack/internal/directory"
	"eventtrack/internal/domain"
	"eventtrack/internal/registry"
)

type memEvents struct {
	events map[string]*registry.Event
	order  []string
}

func newMemEvents(events ...*registry.Event) *memEvents {
	m := &memEvents{events: make(map[string]*registry.Event)}
	for _, e := range events {
		m.events[e.ID] = e
		m.order = append(m.order, e.ID)
	}
	return m
}

func (m *memEvents) Get(_ context.Context, id string) (*registry.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	copied := *e
	return &copied, nil
}

func (m *memEvents) List(_ context.Context) ([]registry.Event, error) {
	var out []registry.Event
	for _, id := range m.order {
		out = append(out, *m.events[id])
	}
	return out, nil
}

func (m *memEvents) RecordCheckIn(_ context.Context, eventID string, rec registry.CheckIn) (bool, error) {
	e, ok := m.events[eventID]
	if !ok {
		return false, nil
	}
	for _, existing := range e.Attendance {
		if existing.User == rec.User {
			return false, nil
		}
	}
	e.Attendance = append(e.Attendance, rec)
	return true, nil
}

type memDir struct {
	users map[string]directory.User
}

func (d *memDir) GetByIDNumber(_ context.Context, idNumber string) (*directory.User, error) {
	if u, ok := d.users[idNumber]; ok {
		copied := u
		return &copied, nil
	}
	return nil, nil
}

func dirWith(users ...directory.User) *memDir {
	d := &memDir{users: make(map[string]directory.User)}
	for _, u := range users {
		d.users[u.IDNumber] = u
	}
	return d
}

func event(id string) *registry.Event {
	return &registry.Event{
		ID:        id,
		Title:     "Research Forum",
		Type:      registry.TypeSeminar,
		Location:  "AVR 2",
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
}

func TestCheckInAppendsExactlyOnce(t *testing.T) {
	evts := newMemEvents(event("e1"))
	svc := NewService(evts, dirWith(directory.User{IDNumber: "2021-0001", Name: "Alex Reyes", Role: directory.RoleStudent}))
	ctx := context.Background()

	result, err := svc.CheckIn(ctx, "e1", "2021-0001")
	if err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	if result.UserName != "Alex Reyes" || result.UserRole != directory.RoleStudent {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.CheckedInAt.IsZero() {
		t.Fatal("checkedInAt should be stamped")
	}
	if got := len(evts.events["e1"].Attendance); got != 1 {
		t.Fatalf("attendance length = %d, want 1", got)
	}

	_, err = svc.CheckIn(ctx, "e1", "2021-0001")
	if !errors.Is(err, domain.ErrAlreadyCheckedIn) {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}
	if got := len(evts.events["e1"].Attendance); got != 1 {
		t.Fatalf("duplicate must not grow attendance, length = %d", got)
	}
}

func TestCheckInFailures(t *testing.T) {
	evts := newMemEvents(event("e1"))
	svc := NewService(evts, dirWith(directory.User{IDNumber: "2021-0001", Name: "Alex", Role: directory.RoleStudent}))
	ctx := context.Background()

	if _, err := svc.CheckIn(ctx, "e1", ""); !domain.IsValidation(err) {
		t.Fatalf("empty id number: expected validation error, got %v", err)
	}
	if _, err := svc.CheckIn(ctx, "e1", "9999"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("unknown user: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.CheckIn(ctx, "missing", "2021-0001"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("unknown event: expected ErrEventNotFound, got %v", err)
	}
}

func TestStatisticsFallbackChain(t *testing.T) {
	attended := func(n int) []registry.CheckIn {
		recs := make([]registry.CheckIn, n)
		for i := range recs {
			recs[i] = registry.CheckIn{User: string(rune('A' + i)), CheckedInAt: time.Now()}
		}
		return recs
	}

	floor := event("floor")
	floor.Attendance = attended(3)

	explicit := event("explicit")
	explicit.ExpectedParticipants = 20
	explicit.Attendance = attended(25)

	participants := event("participants")
	participants.Participants = []string{"a", "b", "c", "d"}
	participants.Attendance = attended(2)

	priority := event("priority")
	priority.ExpectedParticipants = 5
	priority.Participants = []string{"a", "b"}
	priority.Attendance = attended(1)

	svc := NewService(newMemEvents(floor, explicit, participants, priority), dirWith())
	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}

	byID := map[string]EventStats{}
	for _, s := range stats {
		byID[s.ID] = s
	}

	// No explicit expectation, no participants: denominator floors at 10.
	if got := byID["floor"].AttendanceRate; got != 30 {
		t.Fatalf("floor rate = %v, want 30", got)
	}
	// Over-attendance is reported as-is, not clamped to 100.
	if got := byID["explicit"].AttendanceRate; got != 125 {
		t.Fatalf("explicit rate = %v, want 125", got)
	}
	if got := byID["participants"].AttendanceRate; got != 50 {
		t.Fatalf("participants rate = %v, want 50", got)
	}
	// The explicit field wins over the participant count.
	if got := byID["priority"].AttendanceRate; got != 20 {
		t.Fatalf("priority rate = %v, want 20", got)
	}

	if byID["participants"].ParticipantCount != 4 || byID["participants"].AttendanceCount != 2 {
		t.Fatalf("counts wrong: %+v", byID["participants"])
	}
}

func TestExportCSVExactBytes(t *testing.T) {
	t1 := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)
	e := event("e1")
	e.Attendance = []registry.CheckIn{{User: "A1", CheckedInAt: t1}}

	svc := NewService(newMemEvents(e), dirWith())
	export, err := svc.ExportCSV(context.Background(), "e1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	want := "ID Number,Checked In At\nA1,2026-03-02T09:15:00Z\n"
	if export.Data != want {
		t.Fatalf("csv = %q, want %q", export.Data, want)
	}
	if export.Filename == "" {
		t.Fatal("expected a filename for the attachment")
	}
}

func TestExportCSVEmptyAttendance(t *testing.T) {
	svc := NewService(newMemEvents(event("e1")), dirWith())
	export, err := svc.ExportCSV(context.Background(), "e1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if export.Data != "ID Number,Checked In At\n" {
		t.Fatalf("csv = %q", export.Data)
	}
}

func TestEventAttendanceEnrichment(t *testing.T) {
	e := event("e1")
	e.Attendance = []registry.CheckIn{
		{User: "2021-0001", CheckedInAt: time.Now()},
		{User: "GONE-001", CheckedInAt: time.Now()},
	}
	svc := NewService(newMemEvents(e), dirWith(directory.User{
		IDNumber: "2021-0001", Name: "Alex Reyes", Role: directory.RoleStudent,
	}))

	result, err := svc.EventAttendance(context.Background(), "e1")
	if err != nil {
		t.Fatalf("event attendance: %v", err)
	}
	if result.Event.Title != "Research Forum" {
		t.Fatalf("summary wrong: %+v", result.Event)
	}
	if len(result.Attendance) != 2 {
		t.Fatalf("want both records back, got %d", len(result.Attendance))
	}
	if result.Attendance[0].UserDetails == nil || result.Attendance[0].UserDetails.Name != "Alex Reyes" {
		t.Fatalf("first record should be enriched: %+v", result.Attendance[0])
	}
	// A record whose user no longer resolves is returned unenriched, not
	// dropped.
	if result.Attendance[1].UserDetails != nil {
		t.Fatalf("second record should be unenriched: %+v", result.Attendance[1])
	}
}

func TestDeletingUserLeavesAttendanceIntact(t *testing.T) {
	e := event("e1")
	dir := dirWith(directory.User{IDNumber: "2021-0001", Name: "Alex", Role: directory.RoleStudent})
	svc := NewService(newMemEvents(e), dir)
	ctx := context.Background()

	if _, err := svc.CheckIn(ctx, "e1", "2021-0001"); err != nil {
		t.Fatalf("check-in: %v", err)
	}

	delete(dir.users, "2021-0001")

	result, err := svc.EventAttendance(ctx, "e1")
	if err != nil {
		t.Fatalf("event attendance: %v", err)
	}
	if len(result.Attendance) != 1 || result.Attendance[0].User != "2021-0001" {
		t.Fatalf("attendance record must survive user deletion: %+v", result.Attendance)
	}
	if result.Attendance[0].UserDetails != nil {
		t.Fatal("record should no longer be enriched")
	}
}
