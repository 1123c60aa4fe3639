package router

import (
	"errors"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// NewHTTPErrorHandler returns an Echo error handler that folds framework
// errors (404 route misses, 405s, bind failures, panics surfaced by the
// recover middleware) into the standard response envelope. Outside prod the
// body also carries a stack trace to speed up debugging.
func NewHTTPErrorHandler(isProd bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "internal server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			} else {
				msg = http.StatusText(status)
			}
		}

		if status >= http.StatusInternalServerError {
			log.Printf("http error: %v", err)
		}

		body := echo.Map{"success": false, "error": msg}
		if !isProd && status >= http.StatusInternalServerError {
			body["stack"] = string(debug.Stack())
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}
