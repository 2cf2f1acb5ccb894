package appwrite

import (
	"context"

	"github.com/mana-gg/arena/internal/player"
)

// Client defines the surface of the hosted backend (accounts, sessions and
// the single users document collection). This allows for mock
// implementations to be used in tests.
type Client interface {
	// Accounts and sessions.
	CreateAccount(ctx context.Context, email, password, name string) (*Account, error)
	CreateSession(ctx context.Context, email, password string) (*Session, error)
	CurrentAccount(ctx context.Context, sessionSecret string) (*Account, error)
	DeleteSession(ctx context.Context, sessionSecret string) error

	// Profile documents, keyed by the account id.
	CreateProfile(ctx context.Context, profile player.Profile) (*player.Profile, error)
	GetProfile(ctx context.Context, accountID string) (*player.Profile, error)
	// UpdateProfile persists the profile only if the stored document still
	// carries expectedVersion; otherwise it fails with ErrVersionConflict.
	UpdateProfile(ctx context.Context, profile player.Profile, expectedVersion int64) (*player.Profile, error)
	FindProfileByUsername(ctx context.Context, username string) (*player.Profile, error)
}
