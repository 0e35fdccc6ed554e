package cita

import (
	"github.com/clinisys/citas-api/internal/platform/apperror"
)

// Appointment states. The only transition is programada → cancelada;
// cancellation is terminal.
const (
	EstadoProgramada = "programada"
	EstadoCancelada  = "cancelada"
)

// MaxMotivoLen bounds the free-text reason of an appointment.
const MaxMotivoLen = 200

// Cita is a booked appointment. Fecha is a YYYY-MM-DD date and Hora a
// zero-padded 24-hour HH:MM string; appointments have no duration, a slot
// is identified by the exact (doctor, fecha, hora) triple.
type Cita struct {
	ID                string `json:"id"`
	PacienteID        string `json:"pacienteId"`
	DoctorID          string `json:"doctorId"`
	Fecha             string `json:"fecha"`
	Hora              string `json:"hora"`
	Motivo            string `json:"motivo"`
	Estado            string `json:"estado"`
	FechaCreacion     string `json:"fechaCreacion"`
	FechaModificacion string `json:"fechaModificacion,omitempty"`
	FechaCancelacion  string `json:"fechaCancelacion,omitempty"`
}

func (c Cita) RecordID() string { return c.ID }

// Placeholder display values substituted when an appointment references a
// patient or doctor record that no longer resolves.
const (
	PacienteNoEncontrado     = "Paciente no encontrado"
	DoctorNoEncontrado       = "Doctor no encontrado"
	EspecialidadNoEncontrada = "Especialidad no encontrada"
	TelefonoNoDisponible     = "No disponible"
)

// Detalle is an appointment joined with the display fields of its patient
// and doctor. Dangling references resolve to the placeholder values above
// instead of failing the whole response.
type Detalle struct {
	Cita
	PacienteNombre   string `json:"pacienteNombre,omitempty"`
	DoctorNombre     string `json:"doctorNombre,omitempty"`
	Especialidad     string `json:"especialidad,omitempty"`
	TelefonoPaciente string `json:"telefonoPaciente,omitempty"`
}

// Agenda is a doctor's appointment list with patient names resolved.
type Agenda struct {
	Doctor       string    `json:"doctor"`
	Especialidad string    `json:"especialidad"`
	Agenda       []Detalle `json:"agenda"`
}

// CrearRequest is the payload for booking an appointment.
type CrearRequest struct {
	PacienteID string `json:"pacienteId"`
	DoctorID   string `json:"doctorId"`
	Fecha      string `json:"fecha"`
	Hora       string `json:"hora"`
	Motivo     string `json:"motivo"`
}

// ActualizarRequest edits fecha, hora and/or motivo of a scheduled
// appointment; empty fields are left unchanged.
type ActualizarRequest struct {
	Fecha  string `json:"fecha"`
	Hora   string `json:"hora"`
	Motivo string `json:"motivo"`
}

// Filtros narrows a listing to an exact date and/or state.
type Filtros struct {
	Fecha  string
	Estado string
}

// Validar checks the structural validity of a booking request. Date
// recency, referenced entities and slot availability are service concerns.
func Validar(req CrearRequest) []apperror.FieldError {
	var campos []apperror.FieldError
	if req.PacienteID == "" {
		campos = append(campos, apperror.FieldError{Campo: "pacienteId", Mensaje: "El paciente es obligatorio"})
	}
	if req.DoctorID == "" {
		campos = append(campos, apperror.FieldError{Campo: "doctorId", Mensaje: "El doctor es obligatorio"})
	}
	if req.Fecha == "" {
		campos = append(campos, apperror.FieldError{Campo: "fecha", Mensaje: "La fecha es obligatoria"})
	}
	if req.Hora == "" {
		campos = append(campos, apperror.FieldError{Campo: "hora", Mensaje: "La hora es obligatoria"})
	}
	if req.Motivo == "" {
		campos = append(campos, apperror.FieldError{Campo: "motivo", Mensaje: "El motivo es obligatorio"})
	} else if len([]rune(req.Motivo)) > MaxMotivoLen {
		campos = append(campos, apperror.FieldError{Campo: "motivo", Mensaje: "El motivo no puede exceder 200 caracteres"})
	}
	return campos
}
