package player

import "context"

// Repository describes roster persistence needs from use cases.
// Rosters are read-only to the core once published; only the stats
// feed writes alongside them.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Player, error)
	GetByIDs(ctx context.Context, matchID string, playerIDs []string) ([]Player, error)
}
