package doctor

import (
	"time"

	"github.com/clinisys/citas-api/internal/platform/apperror"
)

// DiasSemana are the canonical weekday names, indexed Sunday=0 to match
// time.Weekday.
var DiasSemana = [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// DiaSemana returns the canonical weekday name for a YYYY-MM-DD date.
func DiaSemana(fecha string) (string, error) {
	t, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return "", err
	}
	return DiasSemana[int(t.Weekday())], nil
}

// Doctor is a clinic doctor with a weekly working-hours window. Times are
// zero-padded 24-hour "HH:MM" strings, so lexicographic comparison orders
// them correctly.
type Doctor struct {
	ID              string   `json:"id"`
	Nombre          string   `json:"nombre"`
	Especialidad    string   `json:"especialidad"`
	HorarioInicio   string   `json:"horarioInicio"`
	HorarioFin      string   `json:"horarioFin"`
	DiasDisponibles []string `json:"diasDisponibles"`
}

func (d Doctor) RecordID() string { return d.ID }

// TrabajaDia reports whether the doctor works on the given weekday name.
func (d Doctor) TrabajaDia(dia string) bool {
	for _, disponible := range d.DiasDisponibles {
		if disponible == dia {
			return true
		}
	}
	return false
}

// AtiendeHora reports whether hora falls inside the doctor's window.
// Both bounds are inclusive.
func (d Doctor) AtiendeHora(hora string) bool {
	return hora >= d.HorarioInicio && hora <= d.HorarioFin
}

// CrearRequest is the payload for registering a doctor.
type CrearRequest struct {
	Nombre          string   `json:"nombre"`
	Especialidad    string   `json:"especialidad"`
	HorarioInicio   string   `json:"horarioInicio"`
	HorarioFin      string   `json:"horarioFin"`
	DiasDisponibles []string `json:"diasDisponibles"`
}

// ActualizarRequest is a partial update: only provided fields overwrite.
type ActualizarRequest struct {
	Nombre          string   `json:"nombre"`
	Especialidad    string   `json:"especialidad"`
	HorarioInicio   string   `json:"horarioInicio"`
	HorarioFin      string   `json:"horarioFin"`
	DiasDisponibles []string `json:"diasDisponibles"`
}

func diaValido(dia string) bool {
	for _, d := range DiasSemana {
		if d == dia {
			return true
		}
	}
	return false
}

func validarDias(dias []string) (campos []apperror.FieldError) {
	for _, dia := range dias {
		if !diaValido(dia) {
			campos = append(campos, apperror.FieldError{Campo: "diasDisponibles", Mensaje: "Día inválido: " + dia})
		}
	}
	return campos
}

// Validar checks the structural validity of a registration request.
// Uniqueness of (nombre, especialidad) is checked by the service.
func Validar(req CrearRequest) []apperror.FieldError {
	var campos []apperror.FieldError
	if req.Nombre == "" {
		campos = append(campos, apperror.FieldError{Campo: "nombre", Mensaje: "El nombre es obligatorio"})
	}
	if req.Especialidad == "" {
		campos = append(campos, apperror.FieldError{Campo: "especialidad", Mensaje: "La especialidad es obligatoria"})
	}
	if req.HorarioInicio == "" {
		campos = append(campos, apperror.FieldError{Campo: "horarioInicio", Mensaje: "El horario de inicio es obligatorio"})
	}
	if req.HorarioFin == "" {
		campos = append(campos, apperror.FieldError{Campo: "horarioFin", Mensaje: "El horario de fin es obligatorio"})
	}
	if req.HorarioInicio != "" && req.HorarioFin != "" && req.HorarioInicio >= req.HorarioFin {
		campos = append(campos, apperror.FieldError{Campo: "horarioInicio", Mensaje: "El horario de inicio debe ser menor al horario de fin"})
	}
	if len(req.DiasDisponibles) == 0 {
		campos = append(campos, apperror.FieldError{Campo: "diasDisponibles", Mensaje: "Debe especificar al menos un día disponible"})
	}
	campos = append(campos, validarDias(req.DiasDisponibles)...)
	return campos
}
