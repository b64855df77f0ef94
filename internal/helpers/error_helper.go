package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brennosantos/eventos/internal/repository"
	"github.com/brennosantos/eventos/internal/services"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithServiceError maps a service error onto an HTTP status. Unknown
// errors become a 500 without leaking internals.
func RespondWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrTicketNotFound):
		RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrInsufficientStock),
		errors.Is(err, services.ErrEventCancelled),
		errors.Is(err, services.ErrEventAlreadyCancelled),
		errors.Is(err, services.ErrOrderNotCancellable),
		errors.Is(err, services.ErrTicketAlreadyUsed),
		errors.Is(err, services.ErrEmailTaken):
		RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotEventOrganizer),
		errors.Is(err, services.ErrNotOrganizer):
		RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		RespondWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrNoParticipants),
		errors.Is(err, services.ErrParticipantMismatch),
		errors.Is(err, services.ErrPastEvent),
		errors.Is(err, services.ErrCouponTooLarge):
		RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		RespondWithError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
