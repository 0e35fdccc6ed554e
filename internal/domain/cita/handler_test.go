package cita

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinisys/citas-api/internal/platform/middleware"
)

func setupEcho(f *fixture) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(zerolog.Nop())
	NewHandler(f.svc).RegisterRoutes(e)
	return e
}

func TestHandlerCrearReturns201(t *testing.T) {
	e := setupEcho(newFixture())

	body := `{"pacienteId":"P001","doctorId":"D001","fecha":"2025-06-16","hora":"10:00","motivo":"Consulta general"}`
	req := httptest.NewRequest(http.MethodPost, "/citas", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var c Cita
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != "C001" || c.Estado != EstadoProgramada {
		t.Errorf("unexpected appointment: %+v", c)
	}
}

func TestHandlerDoubleBookingReturns409(t *testing.T) {
	f := newFixture()
	f.citas.records = []Cita{
		{ID: "C001", PacienteID: "P001", DoctorID: "D001", Fecha: "2025-06-16", Hora: "10:00", Estado: EstadoProgramada},
	}
	e := setupEcho(f)

	body := `{"pacienteId":"P001","doctorId":"D001","fecha":"2025-06-16","hora":"10:00","motivo":"Consulta general"}`
	req := httptest.NewRequest(http.MethodPost, "/citas", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

// /citas/proximas must not be captured by the /citas/:id parameter route.
func TestHandlerProximasRouteTakesPrecedence(t *testing.T) {
	e := setupEcho(newFixture())

	req := httptest.NewRequest(http.MethodGet, "/citas/proximas", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var proximas []Detalle
	if err := json.Unmarshal(rec.Body.Bytes(), &proximas); err != nil {
		t.Fatalf("expected a list, got %s", rec.Body.String())
	}
}

func TestHandlerCancelar(t *testing.T) {
	f := newFixture()
	f.citas.records = []Cita{
		{ID: "C001", PacienteID: "P001", DoctorID: "D001", Fecha: "2025-06-16", Hora: "10:00", Estado: EstadoProgramada},
	}
	e := setupEcho(f)

	req := httptest.NewRequest(http.MethodPut, "/citas/C001/cancelar", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var c Cita
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Estado != EstadoCancelada {
		t.Errorf("expected cancelled, got %s", c.Estado)
	}
}

func TestHandlerObtenerReturns404(t *testing.T) {
	e := setupEcho(newFixture())

	req := httptest.NewRequest(http.MethodGet, "/citas/C999", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandlerDoctoresDisponiblesMissingParamsReturns400(t *testing.T) {
	e := setupEcho(newFixture())

	req := httptest.NewRequest(http.MethodGet, "/doctores/disponibles?fecha=2025-06-16", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
