package doctor

import (
	"context"
	"strings"

	"github.com/clinisys/citas-api/internal/platform/apperror"
	"github.com/clinisys/citas-api/internal/platform/jsonstore"
)

type Service struct {
	doctores Repository
}

func NewService(repo Repository) *Service {
	return &Service{doctores: repo}
}

// Crear registers a new doctor. No two doctors may share the same
// (nombre, especialidad) pair.
func (s *Service) Crear(ctx context.Context, req CrearRequest) (*Doctor, error) {
	if campos := Validar(req); len(campos) > 0 {
		return nil, apperror.ValidationFields("Todos los campos son obligatorios", campos)
	}

	registros, err := s.doctores.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for _, d := range registros {
		if d.Nombre == req.Nombre && d.Especialidad == req.Especialidad {
			return nil, apperror.Conflict("Ya existe un doctor con ese nombre y especialidad")
		}
	}

	nuevo := Doctor{
		ID:              jsonstore.NextID("D", registros),
		Nombre:          req.Nombre,
		Especialidad:    req.Especialidad,
		HorarioInicio:   req.HorarioInicio,
		HorarioFin:      req.HorarioFin,
		DiasDisponibles: req.DiasDisponibles,
	}
	registros = append(registros, nuevo)
	if err := s.doctores.Replace(ctx, registros); err != nil {
		return nil, apperror.Internal(err)
	}
	return &nuevo, nil
}

func (s *Service) Listar(ctx context.Context) ([]Doctor, error) {
	registros, err := s.doctores.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return registros, nil
}

func (s *Service) Obtener(ctx context.Context, id string) (*Doctor, error) {
	registros, err := s.doctores.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range registros {
		if registros[i].ID == id {
			return &registros[i], nil
		}
	}
	return nil, apperror.NotFound("Doctor no encontrado")
}

// BuscarPorEspecialidad returns doctors whose especialidad contains the
// given text, case-insensitively.
func (s *Service) BuscarPorEspecialidad(ctx context.Context, texto string) ([]Doctor, error) {
	registros, err := s.doctores.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	filtrados := []Doctor{}
	for _, d := range registros {
		if strings.Contains(strings.ToLower(d.Especialidad), strings.ToLower(texto)) {
			filtrados = append(filtrados, d)
		}
	}
	return filtrados, nil
}

// Actualizar applies a partial update. The resulting record must still
// satisfy every creation invariant: horario ordering, valid weekday names
// and (nombre, especialidad) uniqueness.
func (s *Service) Actualizar(ctx context.Context, id string, req ActualizarRequest) (*Doctor, error) {
	registros, err := s.doctores.List(ctx)
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
		return nil, apperror.NotFound("Doctor no encontrado")
	}

	actualizado := registros[idx]
	if req.Nombre != "" {
		actualizado.Nombre = req.Nombre
	}
	if req.Especialidad != "" {
		actualizado.Especialidad = req.Especialidad
	}
	if req.HorarioInicio != "" {
		actualizado.HorarioInicio = req.HorarioInicio
	}
	if req.HorarioFin != "" {
		actualizado.HorarioFin = req.HorarioFin
	}
	if req.DiasDisponibles != nil {
		actualizado.DiasDisponibles = req.DiasDisponibles
	}

	if actualizado.HorarioInicio >= actualizado.HorarioFin {
		return nil, apperror.Validation("El horario de inicio debe ser menor al horario de fin")
	}
	if len(actualizado.DiasDisponibles) == 0 {
		return nil, apperror.Validation("Debe especificar al menos un día disponible")
	}
	if campos := validarDias(actualizado.DiasDisponibles); len(campos) > 0 {
		return nil, apperror.ValidationFields("Datos de doctor inválidos", campos)
	}
	for i, d := range registros {
		if i != idx && d.Nombre == actualizado.Nombre && d.Especialidad == actualizado.Especialidad {
			return nil, apperror.Conflict("Ya existe un doctor con ese nombre y especialidad")
		}
	}

	registros[idx] = actualizado
	if err := s.doctores.Replace(ctx, registros); err != nil {
		return nil, apperror.Internal(err)
	}
	return &registros[idx], nil
}
