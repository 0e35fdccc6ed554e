package paciente

import (
	"regexp"

	"github.com/clinisys/citas-api/internal/platform/apperror"
)

// Paciente is a registered clinic patient. Records are never hard-deleted.
type Paciente struct {
	ID            string `json:"id"`
	Nombre        string `json:"nombre"`
	Edad          int    `json:"edad"`
	Telefono      string `json:"telefono"`
	Email         string `json:"email"`
	FechaRegistro string `json:"fechaRegistro"`
}

func (p Paciente) RecordID() string { return p.ID }

// CrearRequest is the payload for registering a patient.
type CrearRequest struct {
	Nombre   string `json:"nombre"`
	Edad     int    `json:"edad"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

// ActualizarRequest is a partial update: only provided fields overwrite.
type ActualizarRequest struct {
	Nombre   string `json:"nombre"`
	Edad     *int   `json:"edad"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

var (
	// At least 10 phone-ish characters: digits, spaces, parens, + and -.
	telefonoRe = regexp.MustCompile(`^[0-9 ()+\-]{10,}$`)
	// Basic local@domain.tld shape; anything stricter rejects real addresses.
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validar checks the structural validity of a registration request and
// returns one entry per offending field. Email uniqueness is checked
// against the collection by the service, not here.
func Validar(req CrearRequest) []apperror.FieldError {
	var campos []apperror.FieldError
	if req.Nombre == "" {
		campos = append(campos, apperror.FieldError{Campo: "nombre", Mensaje: "El nombre es obligatorio"})
	}
	if req.Edad == 0 {
		campos = append(campos, apperror.FieldError{Campo: "edad", Mensaje: "La edad es obligatoria"})
	} else if req.Edad <= 0 {
		campos = append(campos, apperror.FieldError{Campo: "edad", Mensaje: "La edad debe ser mayor a 0"})
	}
	if req.Telefono == "" {
		campos = append(campos, apperror.FieldError{Campo: "telefono", Mensaje: "El teléfono es obligatorio"})
	} else if !telefonoRe.MatchString(req.Telefono) {
		campos = append(campos, apperror.FieldError{Campo: "telefono", Mensaje: "El teléfono debe tener al menos 10 dígitos"})
	}
	if req.Email == "" {
		campos = append(campos, apperror.FieldError{Campo: "email", Mensaje: "El email es obligatorio"})
	} else if !emailRe.MatchString(req.Email) {
		campos = append(campos, apperror.FieldError{Campo: "email", Mensaje: "El email no tiene un formato válido"})
	}
	return campos
}

// ValidarActualizacion checks only the fields present in a partial update.
func ValidarActualizacion(req ActualizarRequest) []apperror.FieldError {
	var campos []apperror.FieldError
	if req.Edad != nil && *req.Edad <= 0 {
		campos = append(campos, apperror.FieldError{Campo: "edad", Mensaje: "La edad debe ser mayor a 0"})
	}
	if req.Telefono != "" && !telefonoRe.MatchString(req.Telefono) {
		campos = append(campos, apperror.FieldError{Campo: "telefono", Mensaje: "El teléfono debe tener al menos 10 dígitos"})
	}
	if req.Email != "" && !emailRe.MatchString(req.Email) {
		campos = append(campos, apperror.FieldError{Campo: "email", Mensaje: "El email no tiene un formato válido"})
	}
	return campos
}
