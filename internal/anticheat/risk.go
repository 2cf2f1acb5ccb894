package anticheat

import "sort"

// Score computes a 0-100 suspicion rating from fixed thresholds, strictly
// additive over independent signals and capped at 100. Deterministic and
// stateless; display-only.
func Score(s StatsSnapshot) int {
	score := 0

	switch {
	case s.HeadshotRatio > 80:
		score += 30
	case s.HeadshotRatio > 60:
		score += 15
	}

	switch {
	case s.KillDeathRatio > 10:
		score += 25
	case s.KillDeathRatio > 5:
		score += 10
	}

	switch {
	case s.WinRate > 90:
		score += 20
	case s.WinRate > 70:
		score += 10
	}

	if s.ReactionTimeMs < 50 {
		score += 25
	}
	if s.ConsistencyScore < 30 {
		score += 15
	}

	if s.ReportCount > 0 {
		reportPenalty := s.ReportCount * 2
		if reportPenalty > 20 {
			reportPenalty = 20
		}
		score += reportPenalty
	}

	if score > 100 {
		score = 100
	}
	return score
}

// BandFor buckets a score for dashboard colouring.
func BandFor(score int) RiskBand {
	switch {
	case score >= 70:
		return BandHigh
	case score >= 40:
		return BandMedium
	default:
		return BandLow
	}
}

// Evaluate scores every snapshot and returns the evaluations sorted most
// suspicious first.
func Evaluate(snapshots []StatsSnapshot) []Evaluation {
	evals := make([]Evaluation, 0, len(snapshots))
	for _, s := range snapshots {
		score := Score(s)
		evals = append(evals, Evaluation{
			StatsSnapshot: s,
			Score:         score,
			Band:          BandFor(score),
		})
	}
	sort.SliceStable(evals, func(i, j int) bool {
		return evals[i].Score > evals[j].Score
	})
	return evals
}
