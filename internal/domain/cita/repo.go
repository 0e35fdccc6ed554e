package cita

import "context"

// Repository exposes the whole-collection contract of the JSON store.
type Repository interface {
	List(ctx context.Context) ([]Cita, error)
	Replace(ctx context.Context, records []Cita) error
}
