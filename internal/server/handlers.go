package server

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/medlai"
)

// SessionHeader identifies a client session when the body does not.
const SessionHeader = "X-Session-ID"

// objectStructurer is implemented by engines that accept decoded JSON.
type objectStructurer interface {
	StructureObject(obj map[string]any) *medlai.DischargeRecord
}

type structureRequest struct {
	Text   string         `json:"text"`
	Object map[string]any `json:"object"`
}

type translateRequest struct {
	Text       string   `json:"text"`
	Texts      []string `json:"texts"`
	TargetLang string   `json:"target_lang"`
	SourceLang string   `json:"source_lang"`
}

type processRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
	SessionID  string `json:"session_id"`
}

type processResponse struct {
	*medlai.ProcessResult
	Hospital medlai.HospitalBranding `json:"hospital"`
	Envelope string                  `json:"envelope"`
}

type diffRequest struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

type diffResponse struct {
	Diff             *medlai.DiffResult `json:"diff"`
	Stats            medlai.DiffStats   `json:"stats"`
	NeedsTranslation []medlai.ItemRef   `json:"needsTranslation"`
}

type languageInfo struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
	Direction  string `json:"direction"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": medlai.FullVersion(),
	})
}

func (s *Server) handleStructure(c echo.Context) error {
	var req structureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Object != nil {
		if eng, ok := s.structurer.(objectStructurer); ok {
			return c.JSON(http.StatusOK, eng.StructureObject(req.Object))
		}
		return echo.NewHTTPError(http.StatusBadRequest, "object input is not supported")
	}

	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	return c.JSON(http.StatusOK, s.structurer.Structure(req.Text))
}

func (s *Server) handleTranslate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.TargetLang) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "target_lang is required")
	}
	if req.Texts != nil && req.Text != "" {
		return echo.NewHTTPError(http.StatusBadRequest, "send either text or texts, not both")
	}

	source := req.SourceLang
	if source == "" {
		source = s.resolver.SourceLang()
	}
	ctx := c.Request().Context()

	if req.Texts != nil {
		result, err := s.resolver.TranslateBatchFrom(ctx, req.Texts, source, req.TargetLang)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, result)
	}

	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text or texts is required")
	}
	result, err := s.resolver.TranslateFrom(ctx, req.Text, source, req.TargetLang)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleProcess(c echo.Context) error {
	var req processRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	if strings.TrimSpace(req.TargetLang) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "target_lang is required")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = c.Request().Header.Get(SessionHeader)
	}

	pipeline := medlai.NewPipeline(s.structurer, s.resolver,
		medlai.WithSession(s.sessions.get(sessionID)),
		medlai.WithPipelineLogger(s.logger),
	)

	result, err := pipeline.Process(c.Request().Context(), req.Text, req.TargetLang)
	if err != nil {
		return err
	}

	hospital := s.hospital
	envelope, err := medlai.EncodeEnvelope(req.Text, result.Translated, &hospital)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, processResponse{
		ProcessResult: result,
		Hospital:      hospital,
		Envelope:      string(envelope),
	})
}

func (s *Server) handleDiff(c echo.Context) error {
	var req diffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	diff := medlai.DiffRecords(s.structurer.Structure(req.Previous), s.structurer.Structure(req.Current))
	return c.JSON(http.StatusOK, diffResponse{
		Diff:             diff,
		Stats:            diff.Stats(),
		NeedsTranslation: diff.NeedsTranslation(),
	})
}

func (s *Server) handleClearCache(c echo.Context) error {
	if err := s.resolver.ClearCache(); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleLanguages(c echo.Context) error {
	langs := make([]languageInfo, len(medlai.SupportedLanguages))
	for i, code := range medlai.SupportedLanguages {
		langs[i] = languageInfo{
			Code:       code,
			Name:       medlai.GetLanguageName(code),
			NativeName: medlai.NativeLanguageNames[code],
			Direction:  medlai.GetDirection(code),
		}
	}
	return c.JSON(http.StatusOK, langs)
}

func (s *Server) handleStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.resolver.Stats())
}

// errorHandler maps domain errors to status codes.
func errorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "internal server error"

		var he *echo.HTTPError
		var rl *medlai.RateLimitError
		var cacheErr *medlai.CacheError
		var failed *medlai.AllProvidersFailedError

		switch {
		case errors.As(err, &he):
			status = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(status)
			}
		case errors.As(err, &rl):
			status = http.StatusTooManyRequests
			msg = rl.Error()
			secs := int(math.Ceil(rl.RetryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
		case errors.Is(err, medlai.ErrSuperseded):
			status = http.StatusConflict
			msg = err.Error()
		case errors.As(err, &failed), errors.Is(err, medlai.ErrNoProviders):
			status = http.StatusBadGateway
			msg = "translation unavailable"
		case errors.As(err, &cacheErr):
			msg = cacheErr.Error()
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
			msg = "request timed out"
		}

		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Int("status", status).Msg("request failed")
		}

		rid, _ := c.Get("request_id").(string)
		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, errorResponse{Error: msg, RequestID: rid})
		}
		if writeErr != nil {
			logger.Warn().Err(writeErr).Msg("write error response")
		}
	}
}
