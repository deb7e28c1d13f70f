package memory

import (
	"time"

	"github.com/crickarena/fantasy-cricket/internal/domain/contest"
	"github.com/crickarena/fantasy-cricket/internal/domain/match"
	"github.com/crickarena/fantasy-cricket/internal/domain/player"
)

const (
	MatchIDIndAus = "t20-ind-aus-2026-09-01"
	MatchIDEngSa  = "odi-eng-sa-2026-09-03"

	ContestIDIndAusMega = "mega-ind-aus"
	ContestIDIndAusH2H  = "h2h-ind-aus"
)

func SeedMatches() []match.Match {
	created := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	return []match.Match{
		{
			ID:        MatchIDIndAus,
			Title:     "India vs Australia, 1st T20I",
			TeamA:     "India",
			TeamB:     "Australia",
			Venue:     "Wankhede Stadium, Mumbai",
			Format:    "T20",
			StartsAt:  time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC),
			Status:    match.StatusUpcoming,
			CreatedAt: created,
		},
		{
			ID:        MatchIDEngSa,
			Title:     "England vs South Africa, 2nd ODI",
			TeamA:     "England",
			TeamB:     "South Africa",
			Venue:     "Lord's, London",
			Format:    "ODI",
			StartsAt:  time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC),
			Status:    match.StatusUpcoming,
			CreatedAt: created,
		},
	}
}

// SeedPlayers lists both squads for the India-Australia fixture.
// Credits are in hundredths, e.g. 950 is 9.50.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "ind-rohit", MatchID: MatchIDIndAus, TeamName: "India", Name: "Rohit Sharma", Role: player.RoleBatsman, Credits: 1000},
		{ID: "ind-gill", MatchID: MatchIDIndAus, TeamName: "India", Name: "Shubman Gill", Role: player.RoleBatsman, Credits: 950},
		{ID: "ind-kohli", MatchID: MatchIDIndAus, TeamName: "India", Name: "Virat Kohli", Role: player.RoleBatsman, Credits: 1050},
		{ID: "ind-surya", MatchID: MatchIDIndAus, TeamName: "India", Name: "Suryakumar Yadav", Role: player.RoleBatsman, Credits: 975},
		{ID: "ind-pant", MatchID: MatchIDIndAus, TeamName: "India", Name: "Rishabh Pant", Role: player.RoleWicketKeeper, Credits: 925},
		{ID: "ind-jadeja", MatchID: MatchIDIndAus, TeamName: "India", Name: "Ravindra Jadeja", Role: player.RoleAllRounder, Credits: 900},
		{ID: "ind-hardik", MatchID: MatchIDIndAus, TeamName: "India", Name: "Hardik Pandya", Role: player.RoleAllRounder, Credits: 925},
		{ID: "ind-bumrah", MatchID: MatchIDIndAus, TeamName: "India", Name: "Jasprit Bumrah", Role: player.RoleBowler, Credits: 1000},
		{ID: "ind-siraj", MatchID: MatchIDIndAus, TeamName: "India", Name: "Mohammed Siraj", Role: player.RoleBowler, Credits: 850},
		{ID: "ind-kuldeep", MatchID: MatchIDIndAus, TeamName: "India", Name: "Kuldeep Yadav", Role: player.RoleBowler, Credits: 825},
		{ID: "ind-arshdeep", MatchID: MatchIDIndAus, TeamName: "India", Name: "Arshdeep Singh", Role: player.RoleBowler, Credits: 800},
		{ID: "aus-head", MatchID: MatchIDIndAus, TeamName: "Australia", Name: "Travis Head", Role: player.RoleBatsman, Credits: 975},
		{ID: "aus-warner", MatchID: MatchIDIndAus, TeamName: "Australia", Name: "David Warner", Role: player.RoleBatsman, Credits: 925},
		{ID: "aus-smith", MatchID: MatchIDIndAus, TeamName: "Australia", Name: "Steve Smith", Role: player.RoleBatsman, Credits: 950},
		{ID: "aus-marsh", MatchID: MatchIDIndAus, TeamName: "Australia", Name: "Mitchell Marsh", Role: player.RoleAllRounder, Credits: 900},
		{ID: "aus-maxwell", MatchID: MatchIDIndAus, TeamName: "Australia", Name: "Glenn Maxwell", Role: player.RoleAllRounder, Credits: 950},
		{ID: "aus-carey", MatchID: MatchIDIndAus, TeamName: "Australia", Name: "Alex Carey", Role: player.RoleWicketKeeper, Credits: 850},
		{ID: "aus-inglis", MatchID: MatchIDIndAus, TeamName: "Australia", Name: "Josh Inglis", Role: player.RoleWicketKeeper, Credits: 825},
		{ID: "aus-starc", MatchID: MatchIDIndAus, TeamName: "Australia", Name: "Mitchell Starc", Role: player.RoleBowler, Credits: 950},
		{ID: "aus-cummins", MatchID: MatchIDIndAus, TeamName: "Australia", Name: "Pat Cummins", Role: player.RoleBowler, Credits: 925},
		{ID: "aus-hazlewood", MatchID: MatchIDIndAus, TeamName: "Australia", Name: "Josh Hazlewood", Role: player.RoleBowler, Credits: 875},
		{ID: "aus-zampa", MatchID: MatchIDIndAus, TeamName: "Australia", Name: "Adam Zampa", Role: player.RoleBowler, Credits: 850},
	}
}

// SeedContests returns demo contests for the India-Australia fixture.
// Amounts are in cents.
func SeedContests() []contest.Contest {
	created := time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)
	return []contest.Contest{
		{
			ID:         ContestIDIndAusMega,
			MatchID:    MatchIDIndAus,
			Name:       "Mega Contest",
			EntryFee:   4900,
			PrizePool:  490000,
			MaxEntries: 100,
			Status:     contest.StatusOpen,
			Payouts: []contest.PayoutSlot{
				{Rank: 1, Amount: 200000},
				{Rank: 2, Amount: 120000},
				{Rank: 3, Amount: 80000},
			},
			CreatedAt: created,
		},
		{
			ID:         ContestIDIndAusH2H,
			MatchID:    MatchIDIndAus,
			Name:       "Head to Head",
			EntryFee:   10000,
			PrizePool:  20000,
			MaxEntries: 2,
			Status:     contest.StatusOpen,
			Payouts: []contest.PayoutSlot{
				{Rank: 1, Amount: 18000},
			},
			CreatedAt: created,
		},
	}
}
