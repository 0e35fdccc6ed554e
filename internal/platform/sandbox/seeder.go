// Package sandbox generates deterministic synthetic data for demo and
// development environments: patients, doctors and a spread of past and
// upcoming appointments that respect every scheduling invariant.
package sandbox

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/clinisys/citas-api/internal/domain/cita"
	"github.com/clinisys/citas-api/internal/domain/doctor"
	"github.com/clinisys/citas-api/internal/domain/paciente"
	"github.com/clinisys/citas-api/internal/platform/jsonstore"
)

// SeedConfig controls the volume of generated data.
type SeedConfig struct {
	Pacientes int
	Doctores  int
	Citas     int
	Seed      int64
}

// DefaultSeedConfig returns volumes suited to a demo clinic.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{Pacientes: 20, Doctores: 6, Citas: 60, Seed: 1}
}

// SeedResult reports what was written.
type SeedResult struct {
	Pacientes int `json:"pacientes"`
	Doctores  int `json:"doctores"`
	Citas     int `json:"citas"`
}

type Seeder struct {
	dataDir string
}

func NewSeeder(dataDir string) *Seeder {
	return &Seeder{dataDir: dataDir}
}

var (
	nombresPila    = []string{"Ana", "Luis", "María", "Carlos", "Lucía", "Jorge", "Sofía", "Miguel", "Elena", "Pedro", "Carmen", "Diego"}
	apellidos      = []string{"García", "Hernández", "López", "Martínez", "Pérez", "Sánchez", "Ramírez", "Torres", "Flores", "Vargas"}
	especialidades = []string{"Medicina General", "Cardiología", "Pediatría", "Dermatología", "Neurología", "Traumatología"}
	motivos        = []string{"Consulta general", "Dolor de cabeza", "Revisión anual", "Seguimiento de tratamiento", "Dolor de espalda", "Chequeo preventivo"}
)

// Run regenerates the three collections from scratch. Existing data is
// overwritten, which is the point of a sandbox.
func (s *Seeder) Run(cfg SeedConfig) (*SeedResult, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	ahora := time.Now()

	pacientes := make([]paciente.Paciente, 0, cfg.Pacientes)
	for i := 0; i < cfg.Pacientes; i++ {
		nombre := nombresPila[rng.Intn(len(nombresPila))] + " " + apellidos[rng.Intn(len(apellidos))]
		pacientes = append(pacientes, paciente.Paciente{
			ID:            jsonstore.NextID("P", pacientes),
			Nombre:        nombre,
			Edad:          18 + rng.Intn(63),
			Telefono:      fmt.Sprintf("555 123 %04d", rng.Intn(10000)),
			Email:         fmt.Sprintf("paciente%d@clinica.example", i+1),
			FechaRegistro: ahora.AddDate(0, 0, -rng.Intn(365)).Format("2006-01-02"),
		})
	}

	doctores := make([]doctor.Doctor, 0, cfg.Doctores)
	for i := 0; i < cfg.Doctores; i++ {
		inicio := 8 + rng.Intn(3)
		fin := inicio + 6 + rng.Intn(3)
		dias := []string{}
		for d := 1; d <= 5; d++ {
			if rng.Intn(3) > 0 {
				dias = append(dias, doctor.DiasSemana[d])
			}
		}
		if len(dias) == 0 {
			dias = []string{doctor.DiasSemana[1+rng.Intn(5)]}
		}
		doctores = append(doctores, doctor.Doctor{
			ID:              jsonstore.NextID("D", doctores),
			Nombre:          "Dr. " + apellidos[rng.Intn(len(apellidos))],
			Especialidad:    especialidades[i%len(especialidades)],
			HorarioInicio:   fmt.Sprintf("%02d:00", inicio),
			HorarioFin:      fmt.Sprintf("%02d:00", fin),
			DiasDisponibles: dias,
		})
	}

	citas := make([]cita.Cita, 0, cfg.Citas)
	ocupados := map[string]bool{}
	for i := 0; i < cfg.Citas; i++ {
		doc := doctores[rng.Intn(len(doctores))]
		pac := pacientes[rng.Intn(len(pacientes))]

		var fecha, hora string
		encontrado := false
		for intento := 0; intento < 50; intento++ {
			dia := ahora.AddDate(0, 0, rng.Intn(200)-180)
			nombreDia := doctor.DiasSemana[int(dia.Weekday())]
			if !doc.TrabajaDia(nombreDia) {
				continue
			}
			var inicioH, finH int
			fmt.Sscanf(doc.HorarioInicio, "%d", &inicioH)
			fmt.Sscanf(doc.HorarioFin, "%d", &finH)
			h := inicioH + rng.Intn(finH-inicioH+1)
			fecha = dia.Format("2006-01-02")
			hora = fmt.Sprintf("%02d:00", h)
			if ocupados[doc.ID+fecha+hora] {
				continue
			}
			encontrado = true
			break
		}
		if !encontrado {
			continue
		}
		ocupados[doc.ID+fecha+hora] = true

		nueva := cita.Cita{
			ID:            jsonstore.NextID("C", citas),
			PacienteID:    pac.ID,
			DoctorID:      doc.ID,
			Fecha:         fecha,
			Hora:          hora,
			Motivo:        motivos[rng.Intn(len(motivos))],
			Estado:        cita.EstadoProgramada,
			FechaCreacion: ahora.AddDate(0, 0, -rng.Intn(30)).Format(time.RFC3339),
		}
		if rng.Intn(5) == 0 {
			nueva.Estado = cita.EstadoCancelada
			nueva.FechaCancelacion = ahora.Format(time.RFC3339)
		}
		citas = append(citas, nueva)
	}

	if err := jsonstore.NewCollection[paciente.Paciente](s.dataDir, "pacientes").Save(pacientes); err != nil {
		return nil, err
	}
	if err := jsonstore.NewCollection[doctor.Doctor](s.dataDir, "doctores").Save(doctores); err != nil {
		return nil, err
	}
	if err := jsonstore.NewCollection[cita.Cita](s.dataDir, "citas").Save(citas); err != nil {
		return nil, err
	}

	return &SeedResult{Pacientes: len(pacientes), Doctores: len(doctores), Citas: len(citas)}, nil
}
