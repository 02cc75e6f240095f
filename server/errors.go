package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"auctioneer/models"
	"auctioneer/service"
)

// MapErrorToHTTP maps service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return http.StatusNotFound, "game not found"
	case errors.Is(err, service.ErrEventNotFound):
		return http.StatusNotFound, "event not found"
	case errors.Is(err, service.ErrInvalidGame):
		return http.StatusBadRequest, "invalid game details"
	case errors.Is(err, service.ErrInvalidEvent):
		return http.StatusBadRequest, "invalid event details"
	case errors.Is(err, service.ErrInvalidUser):
		return http.StatusBadRequest, "invalid user details"
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RejectionStatus maps a bid rejection reason to an HTTP status
func RejectionStatus(reason models.RejectionReason) int {
	switch reason {
	case models.RejectionInvalidAmount:
		return http.StatusBadRequest
	case models.RejectionGameNotFound:
		return http.StatusNotFound
	case models.RejectionAuctionEnded, models.RejectionEventInactive, models.RejectionConflict:
		return http.StatusConflict
	case models.RejectionBelowStartingPrice, models.RejectionBelowMinimum:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// handleServiceError writes the mapped error response and logs it
func handleServiceError(c *gin.Context, handlerName string, err error, fields log.Fields) {
	status, message := MapErrorToHTTP(err)
	JSONError(c, status, err, message)

	entry := log.WithFields(fields).WithFields(log.Fields{
		"handler": handlerName,
		"status":  status,
		"error":   err.Error(),
	})
	if status >= http.StatusInternalServerError {
		entry.Error(handlerName + ": request failed")
		return
	}
	entry.Warn(handlerName + ": request rejected")
}

// handleBindError sends a standardized JSON error for binding failures
func handleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	log.WithField("error", err.Error()).Warn(handlerName + ": binding error")
}
