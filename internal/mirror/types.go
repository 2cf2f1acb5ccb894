package mirror

import (
	"database/sql"
	"sync"
)

// PlayerSnapshot is the flattened, queryable copy of a player profile kept
// in the local read model. The profile document in Appwrite stays the source
// of truth; snapshots only ever trail it.
type PlayerSnapshot struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Username      string  `json:"username"`
	GamesPlayed   int     `json:"games_played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"win_rate"`
	Rank          string  `json:"rank"`
	Experience    int     `json:"experience"`
	Balance       int     `json:"balance"`
	TotalEarnings int     `json:"total_earnings"`
	TotalSpent    int     `json:"total_spent"`
	Version       int64   `json:"version"`
	UpdatedAt     int64   `json:"updated_at"`
}

// store handles all database operations for the read model.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
