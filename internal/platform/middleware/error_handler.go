package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinisys/citas-api/internal/platform/apperror"
)

// ErrorHandler turns errors returned by handlers into JSON responses.
// Internal errors carry a wrapped cause that must reach the log; the
// client only ever sees the generic message.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		rid, _ := c.Get("request_id").(string)

		var ae *apperror.Error
		if errors.As(err, &ae) {
			if ae.Kind == apperror.KindInternal {
				logger.Error().
					Str("request_id", rid).
					Str("method", c.Request().Method).
					Str("path", c.Request().URL.Path).
					Err(err).
					Msg("internal error")
			}
			if writeErr := c.JSON(apperror.StatusCode(err), apperror.Payload(err)); writeErr != nil {
				logger.Error().Str("request_id", rid).Err(writeErr).Msg("write error response")
			}
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, map[string]interface{}{"error": fmt.Sprintf("%v", he.Message)})
			return
		}

		logger.Error().
			Str("request_id", rid).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Err(err).
			Msg("unhandled error")
		_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{"error": "Error interno del servidor"})
	}
}
