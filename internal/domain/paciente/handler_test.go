package paciente

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinisys/citas-api/internal/platform/middleware"
)

func setupEcho(repo *mockRepo) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(zerolog.Nop())
	NewHandler(newTestService(repo)).RegisterRoutes(e)
	return e
}

func TestHandlerCrearReturns201(t *testing.T) {
	e := setupEcho(&mockRepo{})

	body := `{"nombre":"Ana García","edad":34,"telefono":"555 123 4567","email":"ana@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/pacientes", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var p Paciente
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "P001" {
		t.Errorf("expected ID P001, got %s", p.ID)
	}
}

func TestHandlerCrearValidationReturns400WithFields(t *testing.T) {
	e := setupEcho(&mockRepo{})

	req := httptest.NewRequest(http.MethodPost, "/pacientes", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Error  string            `json:"error"`
		Campos []json.RawMessage `json:"campos"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.Error == "" {
		t.Error("expected error message in body")
	}
	if len(body.Campos) != 4 {
		t.Errorf("expected 4 field errors, got %d", len(body.Campos))
	}
}

func TestHandlerObtenerReturns404(t *testing.T) {
	e := setupEcho(&mockRepo{})

	req := httptest.NewRequest(http.MethodGet, "/pacientes/P999", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandlerStorageFailureReturns500WithGenericMessage(t *testing.T) {
	repo := &mockRepo{listErr: errors.New("read pacientes.json: permission denied")}
	e := setupEcho(repo)

	req := httptest.NewRequest(http.MethodGet, "/pacientes", nil)
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
	if strings.Contains(rec.Body.String(), "permission denied") {
		t.Error("storage cause leaked to the client")
	}
}

func TestHandlerCrearDuplicateEmailReturns409(t *testing.T) {
	repo := &mockRepo{records: []Paciente{{ID: "P001", Email: "ana@example.com"}}}
	e := setupEcho(repo)

	body := `{"nombre":"Otra Ana","edad":40,"telefono":"555 123 4567","email":"ana@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/pacientes", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
