package fantasy

import "context"

// Repository describes fantasy-team persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, team Team) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByIDs(ctx context.Context, teamIDs []string) ([]Team, error)
	ListByUser(ctx context.Context, userID string) ([]Team, error)
	ListByMatch(ctx context.Context, matchID string) ([]Team, error)
	UpdateScore(ctx context.Context, teamID string, score int64) error
}
