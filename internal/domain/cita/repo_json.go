package cita

import (
	"context"

	"github.com/clinisys/citas-api/internal/platform/jsonstore"
)

type JSONRepository struct {
	col *jsonstore.Collection[Cita]
}

func NewJSONRepository(dataDir string) *JSONRepository {
	return &JSONRepository{col: jsonstore.NewCollection[Cita](dataDir, "citas")}
}

func (r *JSONRepository) List(_ context.Context) ([]Cita, error) {
	return r.col.Load()
}

func (r *JSONRepository) Replace(_ context.Context, records []Cita) error {
	return r.col.Save(records)
}
