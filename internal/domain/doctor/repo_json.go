package doctor

import (
	"context"

	"github.com/clinisys/citas-api/internal/platform/jsonstore"
)

type JSONRepository struct {
	col *jsonstore.Collection[Doctor]
}

func NewJSONRepository(dataDir string) *JSONRepository {
	return &JSONRepository{col: jsonstore.NewCollection[Doctor](dataDir, "doctores")}
}

func (r *JSONRepository) List(_ context.Context) ([]Doctor, error) {
	return r.col.Load()
}

func (r *JSONRepository) Replace(_ context.Context, records []Doctor) error {
	return r.col.Save(records)
}
