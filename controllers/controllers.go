package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparklink/connect_backend/services"
)

// respondError maps a service error onto the response envelope. Unrecognized
// errors are persistence failures; their message is surfaced for diagnostics.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
