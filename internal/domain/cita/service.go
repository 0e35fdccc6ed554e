package cita

import (
	"context"
	"time"

	"github.com/clinisys/citas-api/internal/domain/doctor"
	"github.com/clinisys/citas-api/internal/domain/paciente"
	"github.com/clinisys/citas-api/internal/platform/apperror"
	"github.com/clinisys/citas-api/internal/platform/jsonstore"
)

// Service implements the appointment lifecycle. Every operation loads the
// collections it needs fresh from the store, computes, and for mutations
// writes the appointment collection back whole.
type Service struct {
	citas     Repository
	pacientes paciente.Repository
	doctores  doctor.Repository
	now       func() time.Time
}

func NewService(citas Repository, pacientes paciente.Repository, doctores doctor.Repository) *Service {
	return &Service{citas: citas, pacientes: pacientes, doctores: doctores, now: time.Now}
}

// fechaPasada reports whether fecha (YYYY-MM-DD) lies before today,
// comparing dates only.
func (s *Service) fechaPasada(fecha string) (bool, error) {
	f, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return false, err
	}
	ahora := s.now()
	hoy := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, time.UTC)
	return f.Before(hoy), nil
}

func (s *Service) buscarPaciente(ctx context.Context, id string) (*paciente.Paciente, error) {
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

func (s *Service) buscarDoctor(ctx context.Context, id string) (*doctor.Doctor, error) {
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

func indexPacientes(registros []paciente.Paciente) map[string]paciente.Paciente {
	m := make(map[string]paciente.Paciente, len(registros))
	for _, p := range registros {
		m[p.ID] = p
	}
	return m
}

func indexDoctores(registros []doctor.Doctor) map[string]doctor.Doctor {
	m := make(map[string]doctor.Doctor, len(registros))
	for _, d := range registros {
		m[d.ID] = d
	}
	return m
}

// Crear books a new appointment after running the full validation chain:
// structural fields, future date, referenced entities and availability.
func (s *Service) Crear(ctx context.Context, req CrearRequest) (*Cita, error) {
	if campos := Validar(req); len(campos) > 0 {
		return nil, apperror.ValidationFields("Todos los campos son obligatorios", campos)
	}

	pasada, err := s.fechaPasada(req.Fecha)
	if err != nil {
		return nil, apperror.Validation("La fecha no tiene un formato válido (YYYY-MM-DD)")
	}
	if pasada {
		return nil, apperror.Validation("La cita debe ser en una fecha futura")
	}

	if _, err := s.buscarPaciente(ctx, req.PacienteID); err != nil {
		return nil, err
	}
	doc, err := s.buscarDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	registros, err := s.citas.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := VerificarDisponibilidad(doc, req.Fecha, req.Hora, registros, ""); err != nil {
		return nil, err
	}

	nueva := Cita{
		ID:            jsonstore.NextID("C", registros),
		PacienteID:    req.PacienteID,
		DoctorID:      req.DoctorID,
		Fecha:         req.Fecha,
		Hora:          req.Hora,
		Motivo:        req.Motivo,
		Estado:        EstadoProgramada,
		FechaCreacion: s.now().Format(time.RFC3339),
	}
	registros = append(registros, nueva)
	if err := s.citas.Replace(ctx, registros); err != nil {
		return nil, apperror.Internal(err)
	}
	return &nueva, nil
}

// Listar returns appointments filtered by exact fecha and/or estado,
// each joined with patient and doctor display fields.
func (s *Service) Listar(ctx context.Context, filtros Filtros) ([]Detalle, error) {
	registros, err := s.citas.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	pacientes, err := s.pacientes.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	doctores, err := s.doctores.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	porPaciente := indexPacientes(pacientes)
	porDoctor := indexDoctores(doctores)

	detalles := []Detalle{}
	for _, c := range registros {
		if filtros.Fecha != "" && c.Fecha != filtros.Fecha {
			continue
		}
		if filtros.Estado != "" && c.Estado != filtros.Estado {
			continue
		}
		detalles = append(detalles, s.detalleCompleto(c, porPaciente, porDoctor))
	}
	return detalles, nil
}

func (s *Service) detalleCompleto(c Cita, pacientes map[string]paciente.Paciente, doctores map[string]doctor.Doctor) Detalle {
	d := Detalle{Cita: c, PacienteNombre: PacienteNoEncontrado, DoctorNombre: DoctorNoEncontrado, Especialidad: EspecialidadNoEncontrada}
	if p, ok := pacientes[c.PacienteID]; ok {
		d.PacienteNombre = p.Nombre
	}
	if doc, ok := doctores[c.DoctorID]; ok {
		d.DoctorNombre = doc.Nombre
		d.Especialidad = doc.Especialidad
	}
	return d
}

// Obtener returns a single appointment with its display fields resolved.
func (s *Service) Obtener(ctx context.Context, id string) (*Detalle, error) {
	registros, err := s.citas.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for _, c := range registros {
		if c.ID != id {
			continue
		}
		pacientes, err := s.pacientes.List(ctx)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		doctores, err := s.doctores.List(ctx)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		detalle := s.detalleCompleto(c, indexPacientes(pacientes), indexDoctores(doctores))
		return &detalle, nil
	}
	return nil, apperror.NotFound("Cita no encontrada")
}

// Actualizar edits fecha, hora and/or motivo of a scheduled appointment.
// When fecha or hora change, availability is re-checked excluding the
// appointment itself.
func (s *Service) Actualizar(ctx context.Context, id string, req ActualizarRequest) (*Cita, error) {
	registros, err := s.citas.List(ctx)
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
		return nil, apperror.NotFound("Cita no encontrada")
	}
	if registros[idx].Estado != EstadoProgramada {
		return nil, apperror.Validation(`Solo se pueden editar citas con estado "programada"`)
	}

	if req.Motivo != "" && len([]rune(req.Motivo)) > MaxMotivoLen {
		return nil, apperror.Validation("El motivo no puede exceder 200 caracteres")
	}
	if req.Fecha != "" {
		pasada, err := s.fechaPasada(req.Fecha)
		if err != nil {
			return nil, apperror.Validation("La fecha no tiene un formato válido (YYYY-MM-DD)")
		}
		if pasada {
			return nil, apperror.Validation("La fecha debe ser futura")
		}
	}

	if req.Fecha != "" || req.Hora != "" {
		fechaFinal := registros[idx].Fecha
		horaFinal := registros[idx].Hora
		if req.Fecha != "" {
			fechaFinal = req.Fecha
		}
		if req.Hora != "" {
			horaFinal = req.Hora
		}
		doc, err := s.buscarDoctor(ctx, registros[idx].DoctorID)
		if err != nil {
			return nil, err
		}
		if err := VerificarDisponibilidad(doc, fechaFinal, horaFinal, registros, id); err != nil {
			return nil, err
		}
	}

	if req.Fecha != "" {
		registros[idx].Fecha = req.Fecha
	}
	if req.Hora != "" {
		registros[idx].Hora = req.Hora
	}
	if req.Motivo != "" {
		registros[idx].Motivo = req.Motivo
	}
	registros[idx].FechaModificacion = s.now().Format(time.RFC3339)

	if err := s.citas.Replace(ctx, registros); err != nil {
		return nil, apperror.Internal(err)
	}
	return &registros[idx], nil
}

// Cancelar moves a scheduled appointment to its terminal cancelled state.
func (s *Service) Cancelar(ctx context.Context, id string) (*Cita, error) {
	registros, err := s.citas.List(ctx)
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
		return nil, apperror.NotFound("Cita no encontrada")
	}
	if registros[idx].Estado != EstadoProgramada {
		return nil, apperror.Validation(`Solo se pueden cancelar citas con estado "programada"`)
	}

	registros[idx].Estado = EstadoCancelada
	registros[idx].FechaCancelacion = s.now().Format(time.RFC3339)

	if err := s.citas.Replace(ctx, registros); err != nil {
		return nil, apperror.Internal(err)
	}
	return &registros[idx], nil
}

// AgendaDoctor lists a doctor's appointments with patient names resolved.
func (s *Service) AgendaDoctor(ctx context.Context, doctorID string) (*Agenda, error) {
	doc, err := s.buscarDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	registros, err := s.citas.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	pacientes, err := s.pacientes.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	porPaciente := indexPacientes(pacientes)

	agenda := []Detalle{}
	for _, c := range registros {
		if c.DoctorID != doctorID {
			continue
		}
		d := Detalle{Cita: c, PacienteNombre: PacienteNoEncontrado}
		if p, ok := porPaciente[c.PacienteID]; ok {
			d.PacienteNombre = p.Nombre
		}
		agenda = append(agenda, d)
	}
	return &Agenda{Doctor: doc.Nombre, Especialidad: doc.Especialidad, Agenda: agenda}, nil
}

// Proximas returns scheduled appointments falling strictly after now and
// at or before now+24h, with the patient's phone for reminder calls.
func (s *Service) Proximas(ctx context.Context) ([]Detalle, error) {
	registros, err := s.citas.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	pacientes, err := s.pacientes.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	doctores, err := s.doctores.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	porPaciente := indexPacientes(pacientes)
	porDoctor := indexDoctores(doctores)

	ahora := s.now()
	limite := ahora.Add(24 * time.Hour)

	proximas := []Detalle{}
	for _, c := range registros {
		if c.Estado != EstadoProgramada {
			continue
		}
		momento, err := time.ParseInLocation("2006-01-02T15:04", c.Fecha+"T"+c.Hora, ahora.Location())
		if err != nil {
			continue
		}
		if !momento.After(ahora) || momento.After(limite) {
			continue
		}
		d := Detalle{Cita: c, PacienteNombre: PacienteNoEncontrado, DoctorNombre: DoctorNoEncontrado, TelefonoPaciente: TelefonoNoDisponible}
		if p, ok := porPaciente[c.PacienteID]; ok {
			d.PacienteNombre = p.Nombre
			d.TelefonoPaciente = p.Telefono
		}
		if doc, ok := porDoctor[c.DoctorID]; ok {
			d.DoctorNombre = doc.Nombre
		}
		proximas = append(proximas, d)
	}
	return proximas, nil
}

// HistorialPaciente lists every appointment of a patient, past or future,
// with the doctor's display fields resolved.
func (s *Service) HistorialPaciente(ctx context.Context, pacienteID string) ([]Detalle, error) {
	if _, err := s.buscarPaciente(ctx, pacienteID); err != nil {
		return nil, err
	}
	registros, err := s.citas.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	doctores, err := s.doctores.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	porDoctor := indexDoctores(doctores)

	historial := []Detalle{}
	for _, c := range registros {
		if c.PacienteID != pacienteID {
			continue
		}
		d := Detalle{Cita: c, DoctorNombre: DoctorNoEncontrado, Especialidad: EspecialidadNoEncontrada}
		if doc, ok := porDoctor[c.DoctorID]; ok {
			d.DoctorNombre = doc.Nombre
			d.Especialidad = doc.Especialidad
		}
		historial = append(historial, d)
	}
	return historial, nil
}

// DoctoresDisponibles returns every doctor bookable at (fecha, hora),
// running the same availability check used for booking.
func (s *Service) DoctoresDisponibles(ctx context.Context, fecha, hora string) ([]doctor.Doctor, error) {
	if fecha == "" || hora == "" {
		return nil, apperror.Validation("Los parámetros fecha y hora son obligatorios")
	}
	if _, err := doctor.DiaSemana(fecha); err != nil {
		return nil, apperror.Validation("La fecha no tiene un formato válido (YYYY-MM-DD)")
	}

	doctores, err := s.doctores.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	registros, err := s.citas.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	disponibles := []doctor.Doctor{}
	for i := range doctores {
		if VerificarDisponibilidad(&doctores[i], fecha, hora, registros, "") == nil {
			disponibles = append(disponibles, doctores[i])
		}
	}
	return disponibles, nil
}
