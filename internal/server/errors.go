package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Client-facing error messages.
const (
	msgAnalysisFailed = "analysis failed"
	msgInvalidBody    = "invalid request body"
	msgInternal       = "internal server error"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// handleError writes err as an errorResponse. Errors that are not
// *echo.HTTPError are reported as a generic 500 so internals never leak.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := msgInternal

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = fmt.Sprint(he.Message)
		}
	}

	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"status", code,
			"error", err,
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, errorResponse{Success: false, Error: msg})
	}
	if writeErr != nil {
		s.logger.Error("failed to write error response", "error", writeErr)
	}
}
