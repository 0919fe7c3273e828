package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/nao1215/mailsafe/internal/analyzer"
	"github.com/nao1215/mailsafe/internal/model"
)

// analyzeRequest is the body of POST /api/analyze.
// An absent options object disables every optional check.
type analyzeRequest struct {
	Payload *model.Payload `json:"payload" validate:"required"`
	Options model.Options  `json:"options"`
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.String(http.StatusOK, LivenessMessage)
}

func (s *Server) handleAnalyze(c echo.Context) error {
	var req analyzeRequest
	if err := c.Echo().JSONSerializer.Deserialize(c, &req); err != nil {
		return decodeError(err)
	}

	if err := c.Validate(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return echo.NewHTTPError(http.StatusBadRequest, analyzer.ErrMissingPayload.Error()).SetInternal(err)
		}
		return err
	}

	result, err := s.analyzer.Analyze(c.Request().Context(), req.Payload, req.Options)
	if err != nil {
		if errors.Is(err, analyzer.ErrMissingPayload) {
			return echo.NewHTTPError(http.StatusBadRequest, analyzer.ErrMissingPayload.Error()).SetInternal(err)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, msgAnalysisFailed).SetInternal(err)
	}

	s.logger.Debug("analysis served",
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"overall", result.Overall,
		"links", len(result.SuspiciousLinks),
		"phrases", len(result.FoundPhrases),
	)
	return c.JSON(http.StatusOK, result)
}

// decodeError maps a body decoding failure to an HTTP error.
// An empty body counts as a missing payload.
func decodeError(err error) error {
	if errors.Is(err, io.EOF) {
		return echo.NewHTTPError(http.StatusBadRequest, analyzer.ErrMissingPayload.Error()).SetInternal(err)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusBadRequest {
			return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody).SetInternal(err)
		}
		return he
	}
	return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody).SetInternal(err)
}
