package cita

import (
	"github.com/clinisys/citas-api/internal/domain/doctor"
	"github.com/clinisys/citas-api/internal/platform/apperror"
)

// VerificarDisponibilidad decides whether doc can be booked at
// (fecha, hora) given the existing appointments:
//
//  1. fecha's weekday must be one of the doctor's diasDisponibles,
//  2. hora must fall inside [horarioInicio, horarioFin], both bounds
//     inclusive (string comparison, valid for normalized HH:MM),
//  3. no other non-cancelled appointment may hold the exact
//     (doctor, fecha, hora) slot; excluirID skips the appointment being
//     edited.
//
// The same check backs create, update and the available-doctors query.
func VerificarDisponibilidad(doc *doctor.Doctor, fecha, hora string, citas []Cita, excluirID string) error {
	dia, err := doctor.DiaSemana(fecha)
	if err != nil {
		return apperror.Validation("La fecha no tiene un formato válido (YYYY-MM-DD)")
	}
	if !doc.TrabajaDia(dia) {
		return apperror.Validationf("El doctor no trabaja los %s", dia)
	}
	if !doc.AtiendeHora(hora) {
		return apperror.Validationf("El doctor solo atiende de %s a %s", doc.HorarioInicio, doc.HorarioFin)
	}
	for _, c := range citas {
		if c.ID == excluirID {
			continue
		}
		if c.DoctorID == doc.ID && c.Fecha == fecha && c.Hora == hora && c.Estado != EstadoCancelada {
			return apperror.Conflict("El doctor ya tiene una cita programada para esa fecha y hora")
		}
	}
	return nil
}
