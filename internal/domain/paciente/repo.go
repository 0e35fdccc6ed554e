package paciente

import "context"

// Repository exposes the whole-collection contract of the JSON store:
// every operation reads or replaces the full patient collection.
type Repository interface {
	List(ctx context.Context) ([]Paciente, error)
	Replace(ctx context.Context, records []Paciente) error
}
