package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventtrack/internal/attendance"
)

func (s *Server) attendanceStats(c *gin.Context) {
	stats, err := s.attendance.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if stats == nil {
		stats = []attendance.EventStats{}
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) eventAttendance(c *gin.Context) {
	result, err := s.attendance.EventAttendance(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// scanCheckIn serves the RFID scanner flow, answering with the display
// fields the scanning console shows.
func (s *Server) scanCheckIn(c *gin.Context) {
	var req struct {
		IDNumber string `json:"idNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := s.attendance.CheckIn(c.Request.Context(), c.Param("eventId"), req.IDNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	checkinsTotal.WithLabelValues("rfid").Inc()

	c.JSON(http.StatusOK, gin.H{
		"message":     "User checked in successfully",
		"userName":    result.UserName,
		"userRole":    result.UserRole,
		"checkedInAt": result.CheckedInAt,
	})
}

func (s *Server) exportAttendanceCSV(c *gin.Context) {
	export, err := s.attendance.ExportCSV(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, "text/csv", []byte(export.Data))
}
