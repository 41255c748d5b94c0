package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hkk4567/webbanhang/pkg/logger"
	jsonres "github.com/hkk4567/webbanhang/pkg/response"
)

// ErrorHandler turns errors that escape handlers into the shared JSON error
// shape instead of echo's default body.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", "path", c.Path(), "error", err)
	}

	if err := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
