package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/client"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Refresher is a screen refresh loop that can be asked to run now.
type Refresher interface {
	Trigger()
}

func trigger(refreshers ...Refresher) {
	for _, r := range refreshers {
		if r != nil {
			r.Trigger()
		}
	}
}

// respondServiceError maps service and backend errors to status codes. A
// rejected token has already been cleared by the client, so the UI is sent
// back to the login page.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		utils.RespondErrorData(c, http.StatusUnauthorized, err, middlewares.LoginRedirect)
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidTarget):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrSubmissionInFlight):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrNoDraftSelected),
		errors.Is(err, services.ErrEmptyDraft),
		errors.Is(err, services.ErrNoNewItems),
		errors.Is(err, services.ErrOrderNotPlaced),
		errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, services.ErrNotEnoughData):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, services.ErrUnknownTable),
		errors.Is(err, services.ErrUnknownOrder),
		errors.Is(err, services.ErrUnknownMenuItem),
		errors.Is(err, services.ErrNotOnDisplay),
		errors.Is(err, services.ErrCartNotFound),
		errors.Is(err, client.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, client.ErrNetwork):
		utils.RespondError(c, http.StatusServiceUnavailable, err)
	case errors.Is(err, client.ErrBackend),
		errors.Is(err, client.ErrBadResponse),
		errors.Is(err, services.ErrMissingOrderID),
		errors.Is(err, services.ErrOrderUnconfirmed):
		utils.RespondError(c, http.StatusBadGateway, err)
	case errors.Is(err, client.ErrRejected):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
	default:
		utils.ErrorLogger.Printf("Unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
