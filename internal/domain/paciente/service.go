package paciente

import (
	"context"
	"time"

	"github.com/clinisys/citas-api/internal/platform/apperror"
	"github.com/clinisys/citas-api/internal/platform/jsonstore"
)

type Service struct {
	pacientes Repository
	now       func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{pacientes: repo, now: time.Now}
}

// Crear registers a new patient. The email must not belong to another
// registered patient.
func (s *Service) Crear(ctx context.Context, req CrearRequest) (*Paciente, error) {
	if campos := Validar(req); len(campos) > 0 {
		return nil, apperror.ValidationFields("Todos los campos son obligatorios: nombre, edad, telefono, email", campos)
	}

	registros, err := s.pacientes.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for _, p := range registros {
		if p.Email == req.Email {
			return nil, apperror.Conflict("El email ya está registrado")
		}
	}

	nuevo := Paciente{
		ID:            jsonstore.NextID("P", registros),
		Nombre:        req.Nombre,
		Edad:          req.Edad,
		Telefono:      req.Telefono,
		Email:         req.Email,
		FechaRegistro: s.now().Format("2006-01-02"),
	}
	registros = append(registros, nuevo)
	if err := s.pacientes.Replace(ctx, registros); err != nil {
		return nil, apperror.Internal(err)
	}
	return &nuevo, nil
}

func (s *Service) Listar(ctx context.Context) ([]Paciente, error) {
	registros, err := s.pacientes.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return registros, nil
}

func (s *Service) Obtener(ctx context.Context, id string) (*Paciente, error) {
	registros, err := s.pacientes.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range registros {
		if registros[i].ID == id {
			return &registros[i], nil
		}
	}
	return nil, apperror.NotFound("Paciente no encontrado")
}

// Actualizar applies a partial update: only provided fields overwrite.
// Changing the email to one held by another patient is a conflict.
func (s *Service) Actualizar(ctx context.Context, id string, req ActualizarRequest) (*Paciente, error) {
	if campos := ValidarActualizacion(req); len(campos) > 0 {
		return nil, apperror.ValidationFields("Datos de paciente inválidos", campos)
	}

	registros, err := s.pacientes.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	idx := -1
	for i := range registros {
		if registros[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperror.NotFound("Paciente no encontrado")
	}

	if req.Email != "" {
		for i, p := range registros {
			if i != idx && p.Email == req.Email {
				return nil, apperror.Conflict("El email ya está registrado")
			}
		}
	}

	if req.Nombre != "" {
		registros[idx].Nombre = req.Nombre
	}
	if req.Edad != nil {
		registros[idx].Edad = *req.Edad
	}
	if req.Telefono != "" {
		registros[idx].Telefono = req.Telefono
	}
	if req.Email != "" {
		registros[idx].Email = req.Email
	}

	if err := s.pacientes.Replace(ctx, registros); err != nil {
		return nil, apperror.Internal(err)
	}
	return &registros[idx], nil
}
