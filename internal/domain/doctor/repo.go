package doctor

import "context"

// Repository exposes the whole-collection contract of the JSON store.
type Repository interface {
	List(ctx context.Context) ([]Doctor, error)
	Replace(ctx context.Context, records []Doctor) error
}
