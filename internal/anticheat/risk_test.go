package anticheat_test

import (
	"testing"

	"github.com/mana-gg/arena/internal/anticheat"
	"github.com/stretchr/testify/assert"
)

func TestScoreThresholds(t *testing.T) {
	tests := []struct {
		name  string
		stats anticheat.StatsSnapshot
		want  int
	}{
		{"clean player", anticheat.StatsSnapshot{HeadshotRatio: 30, KillDeathRatio: 1.2, WinRate: 45, ReactionTimeMs: 250, ConsistencyScore: 60}, 0},
		{"high headshot ratio", anticheat.StatsSnapshot{HeadshotRatio: 85, ReactionTimeMs: 200, ConsistencyScore: 50}, 30},
		{"elevated headshot ratio", anticheat.StatsSnapshot{HeadshotRatio: 65, ReactionTimeMs: 200, ConsistencyScore: 50}, 15},
		{"extreme kd", anticheat.StatsSnapshot{KillDeathRatio: 12, ReactionTimeMs: 200, ConsistencyScore: 50}, 25},
		{"elevated kd", anticheat.StatsSnapshot{KillDeathRatio: 6, ReactionTimeMs: 200, ConsistencyScore: 50}, 10},
		{"extreme win rate", anticheat.StatsSnapshot{WinRate: 95, ReactionTimeMs: 200, ConsistencyScore: 50}, 20},
		{"elevated win rate", anticheat.StatsSnapshot{WinRate: 75, ReactionTimeMs: 200, ConsistencyScore: 50}, 10},
		{"inhuman reaction", anticheat.StatsSnapshot{ReactionTimeMs: 40, ConsistencyScore: 50}, 25},
		{"suspicious consistency", anticheat.StatsSnapshot{ReactionTimeMs: 200, ConsistencyScore: 20}, 15},
		{"reports capped at 20", anticheat.StatsSnapshot{ReactionTimeMs: 200, ConsistencyScore: 50, ReportCount: 50}, 20},
		{"reports scale by two", anticheat.StatsSnapshot{ReactionTimeMs: 200, ConsistencyScore: 50, ReportCount: 3}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, anticheat.Score(tt.stats))
		})
	}
}

func TestScoreCappedAt100(t *testing.T) {
	blatant := anticheat.StatsSnapshot{
		HeadshotRatio:    99,
		KillDeathRatio:   40,
		WinRate:          100,
		ReactionTimeMs:   10,
		ConsistencyScore: 5,
		ReportCount:      200,
	}
	assert.Equal(t, 100, anticheat.Score(blatant))
}

func TestScoreBoundedForAdversarialInput(t *testing.T) {
	inputs := []anticheat.StatsSnapshot{
		{HeadshotRatio: -50, KillDeathRatio: -3, WinRate: -10, ReactionTimeMs: -1, ConsistencyScore: -100, ReportCount: -7},
		{HeadshotRatio: 1e12, KillDeathRatio: 1e12, WinRate: 1e12, ReactionTimeMs: 1e12, ConsistencyScore: 1e12, ReportCount: 1 << 30},
		{},
	}
	for _, in := range inputs {
		got := anticheat.Score(in)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
		// Deterministic: same input, same output.
		assert.Equal(t, got, anticheat.Score(in))
	}
}

func TestEvaluateSortsMostSuspiciousFirst(t *testing.T) {
	evals := anticheat.Evaluate([]anticheat.StatsSnapshot{
		{PlayerID: "p1", ReactionTimeMs: 200, ConsistencyScore: 50},
		{PlayerID: "p2", HeadshotRatio: 90, ReactionTimeMs: 30, ConsistencyScore: 10, ReportCount: 12},
		{PlayerID: "p3", KillDeathRatio: 6, ReactionTimeMs: 200, ConsistencyScore: 50},
	})

	assert.Equal(t, "p2", evals[0].PlayerID)
	assert.Equal(t, anticheat.BandHigh, evals[0].Band)
	assert.Equal(t, "p3", evals[1].PlayerID)
	assert.Equal(t, "p1", evals[2].PlayerID)
	assert.Equal(t, anticheat.BandLow, evals[2].Band)
}
