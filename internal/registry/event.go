package registry

import (
	"time"

	"eventtrack/internal/domain"
)

// EventType classifies an event.
type EventType string

const (
	TypeSeminar      EventType = "seminar"
	TypeMeeting      EventType = "meeting"
	TypeOrganization EventType = "organization"
	TypeGeneral      EventType = "general"
)

func validType(t EventType) bool {
	switch t {
	case TypeSeminar, TypeMeeting, TypeOrganization, TypeGeneral:
		return true
	}
	return false
}

// CheckIn is one attendance record embedded in an event. User holds the
// id number of the checked-in person, which is not guaranteed to still
// resolve to a directory record.
type CheckIn struct {
	User        string    `json:"user"`
	CheckedInAt time.Time `json:"checkedInAt"`
}

// Event is the registry's aggregate. Participants and Attendance are
// ordered; the whole row is the unit of atomicity.
//
// IsActive on a returned event is derived: the stored flag AND the end
// date not having passed. Reads never mutate stored state, so there is no
// staleness window between a sweep and a response.
type Event struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description,omitempty"`
	Type                 EventType `json:"type"`
	Location             string    `json:"location"`
	StartDate            time.Time `json:"startDate"`
	EndDate              time.Time `json:"endDate"`
	StartTime            string    `json:"startTime"`
	EndTime              string    `json:"endTime"`
	CreatedBy            string    `json:"createdBy"`
	ExpectedParticipants int       `json:"expectedParticipants"`
	Participants         []string  `json:"participants"`
	Attendance           []CheckIn `json:"attendance"`
	IsActive             bool      `json:"isActive"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// Patch carries a partial event update. Nil fields are left untouched.
// References are not re-validated on update.
type Patch struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	Type                 *EventType `json:"type"`
	Location             *string    `json:"location"`
	StartDate            *time.Time `json:"startDate"`
	EndDate              *time.Time `json:"endDate"`
	StartTime            *string    `json:"startTime"`
	EndTime              *string    `json:"endTime"`
	ExpectedParticipants *int       `json:"expectedParticipants"`
	Participants         *[]string  `json:"participants"`
	IsActive             *bool      `json:"isActive"`
}

// Validate checks the fields required at creation.
func (e Event) Validate() error {
	if e.Title == "" {
		return domain.Validationf("title is required")
	}
	if !validType(e.Type) {
		return domain.Validationf("type must be one of seminar, meeting, organization, general")
	}
	if e.Location == "" {
		return domain.Validationf("location is required")
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return domain.Validationf("startDate and endDate are required")
	}
	if e.StartTime == "" || e.EndTime == "" {
		return domain.Validationf("startTime and endTime are required")
	}
	if e.CreatedBy == "" {
		return domain.Validationf("createdBy is required")
	}
	return nil
}

// Apply merges the patch into a copy of e and returns it.
func (p Patch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.ExpectedParticipants != nil {
		e.ExpectedParticipants = *p.ExpectedParticipants
	}
	if p.Participants != nil {
		e.Participants = *p.Participants
	}
	if p.IsActive != nil {
		e.IsActive = *p.IsActive
	}
	return e
}

// activeAt derives the effective activity state. Once the end date has
// passed the event is inactive regardless of the stored flag, and nothing
// can reactivate it.
func (e Event) activeAt(now time.Time) bool {
	return e.IsActive && !now.After(e.EndDate)
}
