package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/crickarena/fantasy-cricket/internal/domain/fantasy"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]fantasy.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{items: make(map[string]fantasy.Team)}
}

func (r *TeamRepository) Create(_ context.Context, team fantasy.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[team.ID] = cloneTeam(team)
	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (fantasy.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.items[teamID]
	if !ok {
		return fantasy.Team{}, false, nil
	}
	return cloneTeam(team), true, nil
}

func (r *TeamRepository) GetByIDs(_ context.Context, teamIDs []string) ([]fantasy.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Team, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		if team, ok := r.items[teamID]; ok {
			out = append(out, cloneTeam(team))
		}
	}
	return out, nil
}

func (r *TeamRepository) ListByUser(_ context.Context, userID string) ([]fantasy.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Team, 0)
	for _, team := range r.items {
		if team.UserID == userID {
			out = append(out, cloneTeam(team))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) ListByMatch(_ context.Context, matchID string) ([]fantasy.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Team, 0)
	for _, team := range r.items {
		if team.MatchID == matchID {
			out = append(out, cloneTeam(team))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) UpdateScore(_ context.Context, teamID string, score int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	team, ok := r.items[teamID]
	if !ok {
		return nil
	}
	team.Score = score
	r.items[teamID] = team
	return nil
}

func cloneTeam(t fantasy.Team) fantasy.Team {
	copied := t
	copied.Picks = append([]fantasy.TeamPick(nil), t.Picks...)
	return copied
}
