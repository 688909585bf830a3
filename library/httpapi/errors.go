package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/AntonStoeckl/borrowdesk/library/automation"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
)

var ErrInvalidRequest = errors.New("invalid request")

// statusFor maps domain error kinds to HTTP status codes, 500 for everything unexpected.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrNotPermitted):
		return http.StatusForbidden
	case errors.Is(err, core.ErrRuleViolation),
		errors.Is(err, core.ErrInvalidInput),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, automation.ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"error", err,
		)

		c.JSON(status, gin.H{"error": "internal server error"})

		return
	}

	message := core.FailureReason(err)
	if message == "" {
		message = err.Error()
	}

	c.JSON(status, gin.H{"error": message})
}

// describeValidation turns validator errors into one readable line.
func describeValidation(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
	}

	parts := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}

		parts = append(parts, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(parts, ", "))
}
