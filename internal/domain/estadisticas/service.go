// Package estadisticas derives rankings and time-bucketed counts from the
// appointment collection. All aggregation happens in-memory over the JSON
// store; iteration order over the collections is insertion order, which
// the tie-breaks below rely on.
package estadisticas

import (
	"context"
	"math"
	"time"

	"github.com/clinisys/citas-api/internal/domain/cita"
	"github.com/clinisys/citas-api/internal/domain/doctor"
	"github.com/clinisys/citas-api/internal/platform/apperror"
)

// DoctorRanking is the doctor with the most non-cancelled appointments.
type DoctorRanking struct {
	DoctorID     string `json:"doctorId"`
	DoctorNombre string `json:"doctorNombre"`
	Especialidad string `json:"especialidad"`
	TotalCitas   int    `json:"totalCitas"`
}

// EspecialidadRanking is the most requested specialty.
type EspecialidadRanking struct {
	Especialidad string `json:"especialidad"`
	TotalCitas   int    `json:"totalCitas"`
}

// CitasPorMes holds 12 contiguous month buckets, oldest first, ending at
// the current month.
type CitasPorMes struct {
	Labels     []string `json:"labels"`
	Totals     []int    `json:"totals"`
	Canceladas []int    `json:"canceladas"`
}

// TasaCancelacion summarizes cancellations over a trailing window.
type TasaCancelacion struct {
	Dias       int     `json:"dias"`
	Total      int     `json:"total"`
	Canceladas int     `json:"canceladas"`
	Tasa       float64 `json:"tasa"`
}

type Service struct {
	citas    cita.Repository
	doctores doctor.Repository
	now      func() time.Time
}

func NewService(citas cita.Repository, doctores doctor.Repository) *Service {
	return &Service{citas: citas, doctores: doctores, now: time.Now}
}

// DoctorConMasCitas returns the doctor with the strict maximum of
// non-cancelled appointments, or nil when there are none. Ties resolve to
// the doctor first seen while scanning the collection in insertion order;
// the count survives a dangling doctor reference (placeholder name).
func (s *Service) DoctorConMasCitas(ctx context.Context) (*DoctorRanking, error) {
	registros, err := s.citas.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	doctores, err := s.doctores.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	conteo := map[string]int{}
	var orden []string
	for _, c := range registros {
		if c.Estado == cita.EstadoCancelada {
			continue
		}
		if _, visto := conteo[c.DoctorID]; !visto {
			orden = append(orden, c.DoctorID)
		}
		conteo[c.DoctorID]++
	}

	var ganador *DoctorRanking
	max := 0
	for _, doctorID := range orden {
		if conteo[doctorID] <= max {
			continue
		}
		max = conteo[doctorID]
		ganador = &DoctorRanking{
			DoctorID:     doctorID,
			DoctorNombre: cita.DoctorNoEncontrado,
			Especialidad: cita.EspecialidadNoEncontrada,
			TotalCitas:   max,
		}
		for _, d := range doctores {
			if d.ID == doctorID {
				ganador.DoctorNombre = d.Nombre
				ganador.Especialidad = d.Especialidad
				break
			}
		}
	}
	return ganador, nil
}

// EspecialidadMasSolicitada returns the specialty with the strict maximum
// of non-cancelled appointments, or nil when there are none. Appointments
// whose doctor no longer resolves are excluded from this count (unlike
// DoctorConMasCitas, which still counts them).
func (s *Service) EspecialidadMasSolicitada(ctx context.Context) (*EspecialidadRanking, error) {
	registros, err := s.citas.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	doctores, err := s.doctores.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	especialidadPorDoctor := make(map[string]string, len(doctores))
	for _, d := range doctores {
		especialidadPorDoctor[d.ID] = d.Especialidad
	}

	conteo := map[string]int{}
	var orden []string
	for _, c := range registros {
		if c.Estado == cita.EstadoCancelada {
			continue
		}
		especialidad, ok := especialidadPorDoctor[c.DoctorID]
		if !ok {
			continue
		}
		if _, vista := conteo[especialidad]; !vista {
			orden = append(orden, especialidad)
		}
		conteo[especialidad]++
	}

	var ganadora *EspecialidadRanking
	max := 0
	for _, especialidad := range orden {
		if conteo[especialidad] > max {
			max = conteo[especialidad]
			ganadora = &EspecialidadRanking{Especialidad: especialidad, TotalCitas: max}
		}
	}
	return ganadora, nil
}

// PorMes buckets appointments into the 12 calendar months ending at the
// current month, oldest first. Bucketing is a string-prefix match on
// "YYYY-MM" against fecha, which sidesteps time-zone conversion entirely.
func (s *Service) PorMes(ctx context.Context) (*CitasPorMes, error) {
	registros, err := s.citas.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	ahora := s.now()
	resultado := &CitasPorMes{
		Labels:     make([]string, 0, 12),
		Totals:     make([]int, 0, 12),
		Canceladas: make([]int, 0, 12),
	}
	for i := 11; i >= 0; i-- {
		mes := time.Date(ahora.Year(), ahora.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		label := mes.Format("2006-01")
		resultado.Labels = append(resultado.Labels, label)

		total, canceladas := 0, 0
		for _, c := range registros {
			if len(c.Fecha) < len(label) || c.Fecha[:len(label)] != label {
				continue
			}
			total++
			if c.Estado == cita.EstadoCancelada {
				canceladas++
			}
		}
		resultado.Totals = append(resultado.Totals, total)
		resultado.Canceladas = append(resultado.Canceladas, canceladas)
	}
	return resultado, nil
}

// Cancelaciones computes the cancellation rate over the trailing window of
// dias days, comparing dates as YYYY-MM-DD strings, both ends inclusive.
// An empty window yields a rate of 0.
func (s *Service) Cancelaciones(ctx context.Context, dias int) (*TasaCancelacion, error) {
	registros, err := s.citas.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	ahora := s.now()
	fechaFin := ahora.Format("2006-01-02")
	fechaInicio := ahora.Add(-time.Duration(dias) * 24 * time.Hour).Format("2006-01-02")

	total, canceladas := 0, 0
	for _, c := range registros {
		if c.Fecha < fechaInicio || c.Fecha > fechaFin {
			continue
		}
		total++
		if c.Estado == cita.EstadoCancelada {
			canceladas++
		}
	}

	tasa := 0.0
	if total > 0 {
		tasa = math.Round(float64(canceladas)/float64(total)*100*100) / 100
	}
	return &TasaCancelacion{Dias: dias, Total: total, Canceladas: canceladas, Tasa: tasa}, nil
}
