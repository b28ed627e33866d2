package employee

import "context"

type StoreAPI interface {
	// GetEmployee returns nil when no record has been saved yet.
	GetEmployee(ctx context.Context) (*Employee, error)
	SaveEmployee(ctx context.Context, emp Employee) error
}
