package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/crickarena/fantasy-cricket/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu    sync.RWMutex
	items map[string]playerstats.Stats
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{items: make(map[string]playerstats.Stats)}
}

func (r *PlayerStatsRepository) ListByMatch(_ context.Context, matchID string) ([]playerstats.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.Stats, 0)
	for _, row := range r.items {
		if row.MatchID == matchID {
			out = append(out, row)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *PlayerStatsRepository) Upsert(_ context.Context, row playerstats.Stats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[statsKey(row.MatchID, row.PlayerID)] = row
	return nil
}

func statsKey(matchID, playerID string) string {
	return matchID + "::" + playerID
}
