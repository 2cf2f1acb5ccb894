package auth

import (
	"errors"
	"sync"

	"github.com/mana-gg/arena/internal/appwrite"
	"github.com/mana-gg/arena/internal/metrics"
	"github.com/mana-gg/arena/internal/player"
	"github.com/mana-gg/arena/internal/pubsub"
)

// Status is the session lifecycle state.
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticating  Status = "authenticating"
	StatusAuthenticated   Status = "authenticated"
)

// User is the in-memory aggregate of identity-provider account plus the
// attached profile document. Profile is nil in degraded mode: authentication
// succeeded but the document is unavailable, and every consumer must treat
// it as optional. The aggregate is never partially updated; mutations
// replace Profile wholesale.
type User struct {
	Account       appwrite.Account
	SessionSecret string
	Status        Status
	Profile       *player.Profile
}

// Degraded reports whether the session is authenticated without profile data.
func (u *User) Degraded() bool {
	return u != nil && u.Status == StatusAuthenticated && u.Profile == nil
}

// ErrNoSession is returned for operations on an unknown or expired session.
var ErrNoSession = errors.New("no active session")

// ErrNoProfile is returned when a wallet/stats operation runs against a
// degraded session that has no profile document to mutate.
var ErrNoProfile = errors.New("profile unavailable")

// service implements the Facade over the hosted backend.
type service struct {
	backend      appwrite.Client
	pubsub       pubsub.PubSubClient
	metrics      metrics.Metrics
	welcomeBonus int

	mu       sync.RWMutex
	sessions map[string]*User
}
