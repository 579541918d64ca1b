// Package handlers provides HTTP handler implementations for the dashboard API.
//
// This file defines the response helpers shared by every endpoint. Failures
// always use ErrorResponse with success=false and a stable code; 5xx are
// logged through the request-scoped logger.
//
// Example error response:
//
//	HTTP/1.1 503 Service Unavailable
//	{
//	  "success": false,
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_ready",
//	  "message": "store is not initialized"
//	}
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
	"github.com/tbourn/go-optimizer-dashboard/internal/http/middleware"
	"github.com/tbourn/go-optimizer-dashboard/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Always false
	Success bool `json:"success" example:"false"`
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"resource not found"`
}

func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail is the exported variant of fail, used by the router for 404/405.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failErr maps service and domain errors to a status and code. fallback is
// the code used for unexpected errors.
func failErr(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, services.ErrUnknownStatus):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "resource not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrNotReady):
		fail(c, http.StatusServiceUnavailable, ErrCodeNotReady, "store is not initialized")
	case errors.Is(err, domain.ErrSeed):
		fail(c, http.StatusInternalServerError, ErrCodeSeedFailed, err.Error())
	case errors.Is(err, services.ErrGenerationFailed):
		fail(c, http.StatusBadGateway, ErrCodeGenerationFailed, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		fail(c, http.StatusGatewayTimeout, ErrCodeTimeout, "request timed out")
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads this body.
		c.AbortWithStatus(499)
	default:
		fail(c, http.StatusInternalServerError, fallback, err.Error())
	}
}

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
