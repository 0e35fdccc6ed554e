package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinisys/citas-api/internal/platform/apperror"
)

func TestErrorHandler_LogsInternalCause(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(logger)
	e.GET("/fail", func(c echo.Context) error {
		return apperror.Internal(errors.New("disk full"))
	})

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["error"] != "Error interno del servidor" {
		t.Errorf("expected generic message, got %s", body["error"])
	}
	if strings.Contains(rec.Body.String(), "disk full") {
		t.Error("cause leaked to the client")
	}
	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("expected cause in log output, got %s", buf.String())
	}
}

func TestErrorHandler_MapsKindsWithoutLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(logger)
	e.GET("/missing", func(c echo.Context) error {
		return apperror.NotFound("Paciente no encontrado")
	})
	e.POST("/invalid", func(c echo.Context) error {
		return apperror.ValidationFields("Datos inválidos", []apperror.FieldError{
			{Campo: "nombre", Mensaje: "El nombre es obligatorio"},
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/invalid", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Error  string                `json:"error"`
		Campos []apperror.FieldError `json:"campos"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(body.Campos) != 1 || body.Campos[0].Campo != "nombre" {
		t.Errorf("expected field errors in payload, got %+v", body)
	}

	if buf.Len() != 0 {
		t.Errorf("client errors must not hit the log, got %s", buf.String())
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/no-such-route", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected error message in body")
	}
}
