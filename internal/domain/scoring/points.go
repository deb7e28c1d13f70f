package scoring

import (
	"github.com/crickarena/fantasy-cricket/internal/domain/fantasy"
	"github.com/crickarena/fantasy-cricket/internal/domain/playerstats"
)

// Point values per scoring event. Base points are plain integers; only
// the captain/vice-captain multipliers introduce fractions, which is why
// team scores are kept in deci-points.
const (
	PointsPerRun        = 1
	BoundaryBonus       = 1
	SixBonus            = 2
	HalfCenturyBonus    = 8
	CenturyBonus        = 16
	PointsPerWicket     = 25
	PointsPerMaidenOver = 12
	ThreeWicketBonus    = 4
	FiveWicketBonus     = 8
	PointsPerCatch      = 8
	PointsPerStumping   = 12
	PointsPerRunOut     = 6
)

// Multipliers in tenths: captain 2.0x, vice-captain 1.5x, everyone else 1.0x.
const (
	captainMultiplierTenths     = 20
	viceCaptainMultiplierTenths = 15
	baseMultiplierTenths        = 10
)

// PlayerPoints computes a player's base fantasy points from raw match
// statistics. It is pure: recomputing from the same stats always yields
// the same total.
func PlayerPoints(s playerstats.Stats) int64 {
	var points int64

	points += int64(s.Runs) * PointsPerRun
	points += int64(s.Fours) * BoundaryBonus
	points += int64(s.Sixes) * SixBonus
	if s.Runs >= 50 {
		points += HalfCenturyBonus
	}
	if s.Runs >= 100 {
		points += CenturyBonus
	}

	points += int64(s.Wickets) * PointsPerWicket
	points += int64(s.MaidenOvers) * PointsPerMaidenOver
	if s.Wickets >= 3 {
		points += ThreeWicketBonus
	}
	if s.Wickets >= 5 {
		points += FiveWicketBonus
	}

	points += int64(s.Catches) * PointsPerCatch
	points += int64(s.Stumpings) * PointsPerStumping
	points += int64(s.RunOuts) * PointsPerRunOut

	return points
}

// TeamScore aggregates base points across a team's 11 picks applying the
// captain and vice-captain multipliers. The result is in deci-points so
// the 1.5x vice-captain multiplier stays exact: 1085 means 108.5 points.
// Players without stats contribute zero.
func TeamScore(team fantasy.Team, pointsByPlayer map[string]int64) int64 {
	var total int64
	for _, pick := range team.Picks {
		base := pointsByPlayer[pick.PlayerID]
		switch pick.PlayerID {
		case team.CaptainID:
			total += base * captainMultiplierTenths
		case team.ViceCaptainID:
			total += base * viceCaptainMultiplierTenths
		default:
			total += base * baseMultiplierTenths
		}
	}

	return total
}

// MatchPoints computes base points for every stats row of a match.
func MatchPoints(rows []playerstats.Stats) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.PlayerID] = PlayerPoints(row)
	}
	return out
}
