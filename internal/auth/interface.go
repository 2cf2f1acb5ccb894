package auth

import (
	"context"

	"github.com/mana-gg/arena/internal/player"
	"github.com/mana-gg/arena/internal/wallet"
)

// ProfileUpdate carries the editable profile fields. Nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	Name     *string
	Username *string
}

// Facade ties identity-provider sessions to their backing profile documents
// and owns every profile mutation. All read-modify-write cycles go through a
// conditional write with a bounded retry, so a concurrent writer surfaces as
// a conflict instead of a silent lost update.
type Facade interface {
	Register(ctx context.Context, email, password, name, username string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	Logout(ctx context.Context, sessionSecret string) error
	Restore(ctx context.Context, sessionSecret string) (*User, error)
	Current(sessionSecret string) (*User, bool)

	UpdateProfile(ctx context.Context, sessionSecret string, update ProfileUpdate) (*player.Profile, error)
	UpdateGameStats(ctx context.Context, sessionSecret string, result player.MatchResult) (*player.Profile, error)

	// DeductMatchEntry debits the entry fee; wallet.ErrInsufficientFunds
	// passes through unmodified.
	DeductMatchEntry(ctx context.Context, sessionSecret string, amount int, description, matchID string) (*player.Profile, error)
	AddCredits(ctx context.Context, sessionSecret string, amount int, description string, txType wallet.TransactionType) (*player.Profile, error)

	// AdminCredit credits an arbitrary player outside any session; used by
	// the refund workflow and manual wallet adjustments.
	AdminCredit(ctx context.Context, accountID string, amount int, description, adminID, matchID string) (*player.Profile, error)
}
