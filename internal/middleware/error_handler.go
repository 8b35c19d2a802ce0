package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storeRating/domain"
	"storeRating/pkg/logger"

	jsonres "storeRating/pkg/response"

	"github.com/labstack/echo/v4"
)

var errorKinds = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
}

// ErrorHandler is installed as echo's HTTPErrorHandler. Domain errors map to
// their status; anything unrecognised becomes a 500 without leaking the cause.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code, message := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Unhandled request error",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			err,
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, jsonres.Error(code, message, nil))
	}
	if writeErr != nil {
		logger.Error("Failed to write error response", writeErr)
	}
}

func classify(err error) (int, string, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if he.Message != nil {
			message = fmt.Sprint(he.Message)
		}
		return he.Code, statusCode(he.Code), message
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.kind) {
			var derr *domain.Error
			if errors.As(err, &derr) {
				return k.status, k.code, derr.Message
			}
			return k.status, k.code, k.kind.Error()
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable, "TIMEOUT", "request timed out"
	}

	return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
}

// statusCode turns 404 into "NOT_FOUND".
func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
