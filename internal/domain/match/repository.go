package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	List(ctx context.Context, status Status) ([]Match, error)
	UpdateStatus(ctx context.Context, matchID string, status Status) error
}
