package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventtrack/internal/domain"
)

// respondError translates service errors into status codes. Duplicate
// check-ins and duplicate admin emails answer 400 rather than 409; those
// codes are part of the wire contract existing clients were built
// against. Duplicate user creation answers 409.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrAdminNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateUser):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrAlreadyCheckedIn),
		errors.Is(err, domain.ErrAdminExists),
		errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}
