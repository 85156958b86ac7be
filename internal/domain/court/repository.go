package court

import "context"

// Repository exposes the court registry.
type Repository interface {
	List(ctx context.Context) ([]Court, error)
	GetByID(ctx context.Context, id string) (Court, bool, error)
}
