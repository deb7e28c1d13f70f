package playerstats

import "context"

type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Stats, error)
	Upsert(ctx context.Context, stats Stats) error
}
