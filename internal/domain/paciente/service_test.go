package paciente

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinisys/citas-api/internal/platform/apperror"
)

type mockRepo struct {
	records []Paciente
	listErr error
}

func (m *mockRepo) List(ctx context.Context) ([]Paciente, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]Paciente, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *mockRepo) Replace(ctx context.Context, records []Paciente) error {
	m.records = records
	return nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
}

func newTestService(repo *mockRepo) *Service {
	svc := NewService(repo)
	svc.now = fixedNow
	return svc
}

func validRequest() CrearRequest {
	return CrearRequest{
		Nombre:   "Ana García",
		Edad:     34,
		Telefono: "555 123 4567",
		Email:    "ana@example.com",
	}
}

func TestCrearAssignsIDAndRegistrationDate(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	p, err := svc.Crear(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "P001" {
		t.Errorf("expected ID P001, got %s", p.ID)
	}
	if p.FechaRegistro != "2025-06-15" {
		t.Errorf("expected fechaRegistro 2025-06-15, got %s", p.FechaRegistro)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(repo.records))
	}
}

func TestCrearRejectsMissingFields(t *testing.T) {
	svc := newTestService(&mockRepo{})

	_, err := svc.Crear(context.Background(), CrearRequest{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation kind, got %v", err)
	}
	var ae *apperror.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apperror.Error, got %T", err)
	}
	if len(ae.Campos) != 4 {
		t.Errorf("expected 4 field errors, got %d", len(ae.Campos))
	}
}

func TestCrearRejectsDuplicateEmail(t *testing.T) {
	repo := &mockRepo{records: []Paciente{{ID: "P001", Email: "ana@example.com"}}}
	svc := newTestService(repo)

	_, err := svc.Crear(context.Background(), validRequest())
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCrearRejectsBadPhoneAndEmail(t *testing.T) {
	svc := newTestService(&mockRepo{})

	req := validRequest()
	req.Telefono = "12345"
	req.Email = "no-es-un-email"
	_, err := svc.Crear(context.Background(), req)
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestObtenerNotFound(t *testing.T) {
	svc := newTestService(&mockRepo{})

	_, err := svc.Obtener(context.Background(), "P999")
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestActualizarPartialUpdate(t *testing.T) {
	repo := &mockRepo{records: []Paciente{{
		ID: "P001", Nombre: "Ana García", Edad: 34,
		Telefono: "555 123 4567", Email: "ana@example.com",
		FechaRegistro: "2025-01-01",
	}}}
	svc := newTestService(repo)

	p, err := svc.Actualizar(context.Background(), "P001", ActualizarRequest{Telefono: "555 987 6543"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Telefono != "555 987 6543" {
		t.Errorf("expected updated phone, got %s", p.Telefono)
	}
	if p.Nombre != "Ana García" || p.Edad != 34 || p.Email != "ana@example.com" {
		t.Errorf("untouched fields changed: %+v", p)
	}
}

func TestActualizarRejectsEmailTakenByAnother(t *testing.T) {
	repo := &mockRepo{records: []Paciente{
		{ID: "P001", Email: "ana@example.com"},
		{ID: "P002", Email: "luis@example.com"},
	}}
	svc := newTestService(repo)

	_, err := svc.Actualizar(context.Background(), "P001", ActualizarRequest{Email: "luis@example.com"})
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestActualizarKeepingOwnEmail(t *testing.T) {
	repo := &mockRepo{records: []Paciente{{ID: "P001", Email: "ana@example.com"}}}
	svc := newTestService(repo)

	p, err := svc.Actualizar(context.Background(), "P001", ActualizarRequest{Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Email != "ana@example.com" {
		t.Errorf("expected email preserved, got %s", p.Email)
	}
}
