package mirror

import (
	"github.com/mana-gg/arena/internal/player"
	"github.com/mana-gg/arena/internal/wallet"
)

// Store defines the interface for the local read model.
type Store interface {
	// Sync folds one profile-synced event into the read model: the snapshot
	// row is upserted and any ledger entries not yet seen are recorded.
	Sync(profile *player.Profile) error
	GetPlayer(id string) (*PlayerSnapshot, error)
	ListPlayers() ([]PlayerSnapshot, error)
	// ListTransactions returns a player's ledger newest first, capped at the
	// same length as the embedded wallet ledger.
	ListTransactions(playerID string) ([]wallet.Transaction, error)
	Clear()
}
