package mirror

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mana-gg/arena/internal/player"
	"github.com/mana-gg/arena/internal/wallet"
)

// ErrNotFound is returned when a player has no snapshot yet.
var ErrNotFound = errors.New("player snapshot not found")

// New creates a new mirror Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// Sync upserts the snapshot row and records ledger entries.
//
// Transactions are append-only with uuid ids, so INSERT OR IGNORE makes the
// fold idempotent: replayed or overlapping events land on rows that already
// exist. Stale events are dropped by comparing version numbers.
func (s *store) Sync(profile *player.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	res, err := tx.Exec(`
		INSERT INTO player_snapshots (id, name, email, username, games_played, wins, losses, win_rate, rank, experience, balance, total_earnings, total_spent, version, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			username = excluded.username,
			games_played = excluded.games_played,
			wins = excluded.wins,
			losses = excluded.losses,
			win_rate = excluded.win_rate,
			rank = excluded.rank,
			experience = excluded.experience,
			balance = excluded.balance,
			total_earnings = excluded.total_earnings,
			total_spent = excluded.total_spent,
			version = excluded.version,
			updated_at = excluded.updated_at
		WHERE excluded.version >= player_snapshots.version
	`, profile.ID, profile.Name, profile.Email, profile.Username,
		profile.GameStats.GamesPlayed, profile.GameStats.Wins, profile.GameStats.Losses,
		profile.GameStats.WinRate, profile.GameStats.Rank, profile.GameStats.Experience,
		profile.Wallet.Balance, profile.Wallet.TotalEarnings, profile.Wallet.TotalSpent,
		profile.Version, profile.UpdatedAt.Unix())
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to upsert player snapshot: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		// A newer snapshot is already in place; the ledger entries of this
		// event are a subset of what that snapshot carried.
		tx.Rollback()
		log.Debug("Dropped stale profile sync", "playerID", profile.ID, "version", profile.Version)
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO transactions (id, player_id, type, amount, description, match_id, admin_id, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, entry := range profile.Wallet.Transactions {
		_, err := stmt.Exec(entry.ID, profile.ID, entry.Type, entry.Amount, entry.Description,
			nullable(entry.MatchID), nullable(entry.AdminID), entry.Date.Unix())
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record transaction %s: %w", entry.ID, err)
		}
	}

	return tx.Commit()
}

// GetPlayer fetches one snapshot by player id.
func (s *store) GetPlayer(id string) (*PlayerSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, name, email, username, games_played, wins, losses, win_rate, rank, experience, balance, total_earnings, total_spent, version, updated_at
		FROM player_snapshots WHERE id = ?
	`, id)
	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	return snap, err
}

// ListPlayers returns every snapshot, highest experience first.
func (s *store) ListPlayers() ([]PlayerSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, email, username, games_played, wins, losses, win_rate, rank, experience, balance, total_earnings, total_spent, version, updated_at
		FROM player_snapshots ORDER BY experience DESC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []PlayerSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *snap)
	}
	return players, rows.Err()
}

// ListTransactions returns a player's ledger newest first.
func (s *store) ListTransactions(playerID string) ([]wallet.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, type, amount, description, match_id, admin_id, date
		FROM transactions WHERE player_id = ?
		ORDER BY date DESC, id ASC
		LIMIT ?
	`, playerID, wallet.MaxTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []wallet.Transaction
	for rows.Next() {
		var entry wallet.Transaction
		var matchID, adminID sql.NullString
		var date int64
		if err := rows.Scan(&entry.ID, &entry.Type, &entry.Amount, &entry.Description, &matchID, &adminID, &date); err != nil {
			return nil, err
		}
		entry.MatchID = matchID.String
		entry.AdminID = adminID.String
		entry.Date = time.Unix(date, 0).UTC()
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Clear wipes the read model. Test helper.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM transactions`); err != nil {
		log.Error("Failed to clear transactions", "error", err)
	}
	if _, err := s.db.Exec(`DELETE FROM player_snapshots`); err != nil {
		log.Error("Failed to clear player snapshots", "error", err)
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scannable) (*PlayerSnapshot, error) {
	var snap PlayerSnapshot
	err := row.Scan(&snap.ID, &snap.Name, &snap.Email, &snap.Username, &snap.GamesPlayed,
		&snap.Wins, &snap.Losses, &snap.WinRate, &snap.Rank, &snap.Experience,
		&snap.Balance, &snap.TotalEarnings, &snap.TotalSpent, &snap.Version, &snap.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
