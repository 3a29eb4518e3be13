package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "investwise/internal/errors"
	"investwise/internal/middleware"
	"investwise/internal/services"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse is the body of endpoints that only acknowledge an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserRequest is a body that names only the user to act on.
type UserRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// bindError converts a binding failure into an INVALID_INPUT error.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// authorizeUser checks that userID is present and, when a bearer token was
// verified for this request, that it belongs to the authenticated user.
func authorizeUser(c *gin.Context, userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "userId is required")
	}
	if authed, ok := c.Get(middleware.UserIDKey); ok {
		if id, isString := authed.(string); !isString || id != userID {
			return "", apperrors.ErrForbidden
		}
	}
	return userID, nil
}

// requestContext carries the request's cancellation and the client address.
func requestContext(c *gin.Context) context.Context {
	return services.WithClientIP(c.Request.Context(), c.ClientIP())
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// parseDate accepts RFC 3339 timestamps or plain calendar dates. An empty
// string yields the zero time.
func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+field+": expected YYYY-MM-DD or RFC 3339")
}
