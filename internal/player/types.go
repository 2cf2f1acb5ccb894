package player

import (
	"time"

	"github.com/mana-gg/arena/internal/wallet"
)

// Rank is the display tier derived from accumulated experience.
type Rank string

const (
	RankBeginner     Rank = "Beginner"
	RankIntermediate Rank = "Intermediate"
	RankAdvanced     Rank = "Advanced"
	RankExpert       Rank = "Expert"
	RankMaster       Rank = "Master"
)

// MatchResult is the outcome fed into ApplyResult.
type MatchResult string

const (
	ResultWin  MatchResult = "win"
	ResultLoss MatchResult = "loss"
)

// GameStats holds a player's lifetime counters. WinRate and Rank are always
// derived; consumers must never edit them directly.
type GameStats struct {
	GamesPlayed int     `json:"games_played" msgpack:"games_played"`
	Wins        int     `json:"wins" msgpack:"wins"`
	Losses      int     `json:"losses" msgpack:"losses"`
	WinRate     float64 `json:"win_rate" msgpack:"win_rate"`
	Rank        Rank    `json:"rank" msgpack:"rank"`
	Experience  int     `json:"experience" msgpack:"experience"`
}

// Profile is the single per-player document held in the hosted backend,
// keyed by the identity provider's account id. Version is bumped on every
// write and checked by the facade's conditional-update path.
type Profile struct {
	ID        string        `json:"id" msgpack:"id"`
	Name      string        `json:"name" msgpack:"name"`
	Email     string        `json:"email" msgpack:"email"`
	Username  string        `json:"username" msgpack:"username"`
	GameStats GameStats     `json:"game_stats" msgpack:"game_stats"`
	Wallet    wallet.Wallet `json:"wallet" msgpack:"wallet"`
	Version   int64         `json:"version" msgpack:"version"`
	CreatedAt time.Time     `json:"created_at" msgpack:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" msgpack:"updated_at"`
}
