package paciente

import (
	"context"

	"github.com/clinisys/citas-api/internal/platform/jsonstore"
)

type JSONRepository struct {
	col *jsonstore.Collection[Paciente]
}

func NewJSONRepository(dataDir string) *JSONRepository {
	return &JSONRepository{col: jsonstore.NewCollection[Paciente](dataDir, "pacientes")}
}

func (r *JSONRepository) List(_ context.Context) ([]Paciente, error) {
	return r.col.Load()
}

func (r *JSONRepository) Replace(_ context.Context, records []Paciente) error {
	return r.col.Save(records)
}
