package player_test

import (
	"testing"

	"github.com/mana-gg/arena/internal/player"
	"github.com/stretchr/testify/assert"
)

func TestApplyResultWin(t *testing.T) {
	stats := player.GameStats{GamesPlayed: 9, Wins: 4, Losses: 5, Experience: 80}

	next := player.ApplyResult(stats, player.ResultWin)

	assert.Equal(t, 10, next.GamesPlayed)
	assert.Equal(t, 5, next.Wins)
	assert.Equal(t, 5, next.Losses)
	assert.Equal(t, 50.0, next.WinRate)
	assert.Equal(t, 90, next.Experience)
}

func TestApplyResultLoss(t *testing.T) {
	stats := player.NewGameStats()

	next := player.ApplyResult(stats, player.ResultLoss)

	assert.Equal(t, 1, next.GamesPlayed)
	assert.Equal(t, 0, next.Wins)
	assert.Equal(t, 1, next.Losses)
	assert.Equal(t, 0.0, next.WinRate)
	assert.Equal(t, 5, next.Experience)
}

func TestWinRateTracksRawCounters(t *testing.T) {
	stats := player.NewGameStats()
	for i := 0; i < 20; i++ {
		result := player.ResultLoss
		if i%3 == 0 {
			result = player.ResultWin
		}
		stats = player.ApplyResult(stats, result)
		want := float64(stats.Wins) / float64(stats.GamesPlayed) * 100
		assert.Equal(t, want, stats.WinRate)
	}
}

func TestRankBreakpoints(t *testing.T) {
	tests := []struct {
		experience int
		want       player.Rank
	}{
		{0, player.RankBeginner},
		{49, player.RankBeginner},
		{50, player.RankIntermediate},
		{199, player.RankIntermediate},
		{200, player.RankAdvanced},
		{499, player.RankAdvanced},
		{500, player.RankExpert},
		{999, player.RankExpert},
		{1000, player.RankMaster},
		{5000, player.RankMaster},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, player.RankForExperience(tt.experience), "experience=%d", tt.experience)
	}
}

func TestRankMonotonicAcrossWins(t *testing.T) {
	ranks := map[player.Rank]int{
		player.RankBeginner:     0,
		player.RankIntermediate: 1,
		player.RankAdvanced:     2,
		player.RankExpert:       3,
		player.RankMaster:       4,
	}

	stats := player.NewGameStats()
	prev := ranks[stats.Rank]
	for i := 0; i < 120; i++ {
		stats = player.ApplyResult(stats, player.ResultWin)
		cur := ranks[stats.Rank]
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
	assert.Equal(t, player.RankMaster, stats.Rank)
}
