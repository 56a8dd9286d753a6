package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventtrack/internal/directory"
	"eventtrack/internal/domain"
	"eventtrack/internal/registry"
)

// EventSource is the event gateway the service needs. Implemented by the
// registry service, so activity state arrives already derived.
type EventSource interface {
	Get(ctx context.Context, id string) (*registry.Event, error)
	List(ctx context.Context) ([]registry.Event, error)
	RecordCheckIn(ctx context.Context, eventID string, rec registry.CheckIn) (bool, error)
}

// Directory resolves id numbers. A nil user means the id number does not
// resolve.
type Directory interface {
	GetByIDNumber(ctx context.Context, idNumber string) (*directory.User, error)
}

// Service implements check-in, attendance reads, statistics, and export.
type Service struct {
	events EventSource
	users  Directory
	now    func() time.Time
}

// NewService creates a service over an event source and a user directory.
func NewService(events EventSource, users Directory) *Service {
	return &Service{events: events, users: users, now: time.Now}
}

// CheckInResult is returned to the scanning console after a successful
// check-in.
type CheckInResult struct {
	UserName    string         `json:"userName"`
	UserRole    directory.Role `json:"userRole"`
	CheckedInAt time.Time      `json:"checkedInAt"`
}

// CheckIn records an attendance record for (event, idNumber). The user
// must exist at check-in time; duplicate detection is an exact match on
// the id number string, enforced atomically by the store.
func (s *Service) CheckIn(ctx context.Context, eventID, idNumber string) (CheckInResult, error) {
	if idNumber == "" {
		return CheckInResult{}, domain.Validationf("ID number is required")
	}

	user, err := s.users.GetByIDNumber(ctx, idNumber)
	if err != nil {
		return CheckInResult{}, err
	}
	if user == nil {
		return CheckInResult{}, domain.ErrUserNotFound
	}

	if _, err := s.events.Get(ctx, eventID); err != nil {
		return CheckInResult{}, err
	}

	rec := registry.CheckIn{User: idNumber, CheckedInAt: s.now().UTC()}
	added, err := s.events.RecordCheckIn(ctx, eventID, rec)
	if err != nil {
		return CheckInResult{}, err
	}
	if !added {
		return CheckInResult{}, domain.ErrAlreadyCheckedIn
	}

	return CheckInResult{
		UserName:    user.Name,
		UserRole:    user.Role,
		CheckedInAt: rec.CheckedInAt,
	}, nil
}

// UserDetails is the display subset attached to an enriched record.
type UserDetails struct {
	IDNumber string         `json:"idNumber"`
	Name     string         `json:"name"`
	Role     directory.Role `json:"role"`
}

// Record is one attendance record, enriched when the id number still
// resolves to a user.
type Record struct {
	registry.CheckIn
	UserDetails *UserDetails `json:"userDetails,omitempty"`
}

// EventSummary is the event header returned alongside attendance.
type EventSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Location  string    `json:"location"`
	IsActive  bool      `json:"isActive"`
}

// EventAttendance couples the summary with the enriched records.
type EventAttendance struct {
	Event      EventSummary `json:"event"`
	Attendance []Record     `json:"attendance"`
}

// EventAttendance returns the event's attendance list, each record
// enriched per-record from the directory. Records whose user has since
// been deleted are returned unenriched rather than dropped.
func (s *Service) EventAttendance(ctx context.Context, eventID string) (EventAttendance, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return EventAttendance{}, err
	}

	records := make([]Record, 0, len(event.Attendance))
	for _, rec := range event.Attendance {
		enriched := Record{CheckIn: rec}
		user, err := s.users.GetByIDNumber(ctx, rec.User)
		if err != nil {
			return EventAttendance{}, err
		}
		if user != nil {
			enriched.UserDetails = &UserDetails{
				IDNumber: user.IDNumber,
				Name:     user.Name,
				Role:     user.Role,
			}
		}
		records = append(records, enriched)
	}

	return EventAttendance{
		Event: EventSummary{
			ID:        event.ID,
			Title:     event.Title,
			StartDate: event.StartDate,
			EndDate:   event.EndDate,
			Location:  event.Location,
			IsActive:  event.IsActive,
		},
		Attendance: records,
	}, nil
}

// EventStats summarizes one event's attendance.
type EventStats struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	StartDate            time.Time `json:"startDate"`
	EndDate              time.Time `json:"endDate"`
	IsActive             bool      `json:"isActive"`
	Location             string    `json:"location"`
	ParticipantCount     int       `json:"participantCount"`
	AttendanceCount      int       `json:"attendanceCount"`
	ExpectedParticipants int       `json:"expectedParticipants"`
	AttendanceRate       float64   `json:"attendanceRate"`
}

// Statistics computes per-event attendance rates across all events. The
// expected-attendance denominator falls back in order: the explicit
// expectedParticipants field when positive, then the registered
// participant count, then max(attendanceCount, 10). The rate is not
// clamped; over-attended events report rates above 100.
func (s *Service) Statistics(ctx context.Context) ([]EventStats, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]EventStats, 0, len(events))
	for _, event := range events {
		attendanceCount := len(event.Attendance)

		var expected int
		switch {
		case event.ExpectedParticipants > 0:
			expected = event.ExpectedParticipants
		case len(event.Participants) > 0:
			expected = len(event.Participants)
		default:
			expected = attendanceCount
			if expected < 10 {
				expected = 10
			}
		}

		stats = append(stats, EventStats{
			ID:                   event.ID,
			Title:                event.Title,
			StartDate:            event.StartDate,
			EndDate:              event.EndDate,
			IsActive:             event.IsActive,
			Location:             event.Location,
			ParticipantCount:     len(event.Participants),
			AttendanceCount:      attendanceCount,
			ExpectedParticipants: event.ExpectedParticipants,
			AttendanceRate:       float64(attendanceCount) / float64(expected) * 100,
		})
	}
	return stats, nil
}

// Export is a rendered CSV attachment.
type Export struct {
	Filename string
	Data     string
}

// ExportCSV renders the event's attendance as a two-column CSV, one row
// per record in list order. The id number field is written as-is; id
// numbers are constrained to simple tokens at registration, so the
// format stays byte-stable without escaping.
func (s *Service) ExportCSV(ctx context.Context, eventID string) (Export, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return Export{}, err
	}

	var b strings.Builder
	b.WriteString("ID Number,Checked In At\n")
	for _, rec := range event.Attendance {
		b.WriteString(rec.User)
		b.WriteString(",")
		b.WriteString(rec.CheckedInAt.Format(time.RFC3339))
		b.WriteString("\n")
	}

	return Export{
		Filename: fmt.Sprintf("attendance-%s-%d.csv", event.Title, s.now().UnixMilli()),
		Data:     b.String(),
	}, nil
}
