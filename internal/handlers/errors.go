package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/railbook/internal/models"
)

// respondError maps domain errors to HTTP statuses. Anything outside the
// taxonomy is logged via the gin error list and returned as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrTrainNotFound),
		errors.Is(err, models.ErrTicketNotFound),
		errors.Is(err, models.ErrClassNotFound),
		errors.Is(err, models.ErrUserNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrSeatsUnavailable),
		errors.Is(err, models.ErrAlreadyCancelled):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrDuplicateTrainNumber),
		errors.Is(err, models.ErrTrainHasTickets):
		c.JSON(http.StatusConflict, models.ErrorResponse(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("Internal server error"))
	}
}
