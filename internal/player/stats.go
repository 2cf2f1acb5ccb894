package player

// Experience awarded per match outcome.
const (
	winExperience  = 10
	lossExperience = 5
)

// NewGameStats returns the zeroed counters a fresh profile is seeded with.
func NewGameStats() GameStats {
	return GameStats{Rank: RankBeginner}
}

// ApplyResult folds one match outcome into the counters. WinRate is
// recomputed from the raw counters rather than accumulated, so it can never
// drift. Rank is recomputed from the new experience total; since experience
// only grows, rank never moves down.
func ApplyResult(stats GameStats, result MatchResult) GameStats {
	next := stats
	next.GamesPlayed++
	switch result {
	case ResultWin:
		next.Wins++
		next.Experience += winExperience
	default:
		next.Losses++
		next.Experience += lossExperience
	}

	next.WinRate = 0
	if next.GamesPlayed > 0 {
		next.WinRate = float64(next.Wins) / float64(next.GamesPlayed) * 100
	}
	next.Rank = RankForExperience(next.Experience)
	return next
}

// RankForExperience maps an experience total onto the fixed ascending
// breakpoints.
func RankForExperience(experience int) Rank {
	switch {
	case experience >= 1000:
		return RankMaster
	case experience >= 500:
		return RankExpert
	case experience >= 200:
		return RankAdvanced
	case experience >= 50:
		return RankIntermediate
	default:
		return RankBeginner
	}
}
