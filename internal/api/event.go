package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eventtrack/internal/domain"
	"eventtrack/internal/registry"
)

// parseDate accepts RFC3339 timestamps and bare dates, which is what the
// console's date pickers send.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func (s *Server) createEvent(c *gin.Context) {
	var req struct {
		Title                string             `json:"title"`
		Description          string             `json:"description"`
		Type                 registry.EventType `json:"type"`
		Location             string             `json:"location"`
		StartDate            string             `json:"startDate"`
		EndDate              string             `json:"endDate"`
		StartTime            string             `json:"startTime"`
		EndTime              string             `json:"endTime"`
		CreatedBy            string             `json:"createdBy"`
		Participants         []string           `json:"participants"`
		ExpectedParticipants int                `json:"expectedParticipants"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		badRequest(c, domain.Validationf("invalid startDate: %s", req.StartDate))
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		badRequest(c, domain.Validationf("invalid endDate: %s", req.EndDate))
		return
	}

	e, err := s.events.Create(c.Request.Context(), registry.Event{
		Title:                req.Title,
		Description:          req.Description,
		Type:                 req.Type,
		Location:             req.Location,
		StartDate:            startDate,
		EndDate:              endDate,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		CreatedBy:            req.CreatedBy,
		Participants:         req.Participants,
		ExpectedParticipants: req.ExpectedParticipants,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Event created", "event": e})
}

func (s *Server) listEvents(c *gin.Context) {
	events, err := s.events.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if events == nil {
		events = []registry.Event{}
	}
	c.JSON(http.StatusOK, events)
}

func (s *Server) getEvent(c *gin.Context) {
	e, err := s.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) updateEvent(c *gin.Context) {
	var req struct {
		Title                *string             `json:"title"`
		Description          *string             `json:"description"`
		Type                 *registry.EventType `json:"type"`
		Location             *string             `json:"location"`
		StartDate            *string             `json:"startDate"`
		EndDate              *string             `json:"endDate"`
		StartTime            *string             `json:"startTime"`
		EndTime              *string             `json:"endTime"`
		ExpectedParticipants *int                `json:"expectedParticipants"`
		Participants         *[]string           `json:"participants"`
		IsActive             *bool               `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	patch := registry.Patch{
		Title:                req.Title,
		Description:          req.Description,
		Type:                 req.Type,
		Location:             req.Location,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		ExpectedParticipants: req.ExpectedParticipants,
		Participants:         req.Participants,
		IsActive:             req.IsActive,
	}
	if req.StartDate != nil {
		t, err := parseDate(*req.StartDate)
		if err != nil {
			badRequest(c, domain.Validationf("invalid startDate: %s", *req.StartDate))
			return
		}
		patch.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := parseDate(*req.EndDate)
		if err != nil {
			badRequest(c, domain.Validationf("invalid endDate: %s", *req.EndDate))
			return
		}
		patch.EndDate = &t
	}

	e, err := s.events.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated", "event": e})
}

func (s *Server) deleteEvent(c *gin.Context) {
	if err := s.events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// manualCheckIn handles the console's check-in form and answers with the
// updated event.
func (s *Server) manualCheckIn(c *gin.Context) {
	var req struct {
		IDNumber string `json:"idNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	eventID := c.Param("id")
	if _, err := s.attendance.CheckIn(c.Request.Context(), eventID, req.IDNumber); err != nil {
		respondError(c, err)
		return
	}
	checkinsTotal.WithLabelValues("manual").Inc()

	e, err := s.events.Get(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User checked in", "event": e})
}
