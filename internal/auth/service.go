package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mana-gg/arena/internal/appwrite"
	"github.com/mana-gg/arena/internal/metrics"
	"github.com/mana-gg/arena/internal/player"
	"github.com/mana-gg/arena/internal/pubsub"
	"github.com/mana-gg/arena/internal/wallet"
)

// maxWriteAttempts bounds the retry-on-conflict loop around profile writes.
const maxWriteAttempts = 3

// WelcomeBonusDescription is the ledger entry text on the registration credit.
const WelcomeBonusDescription = "Welcome bonus for joining MANA Gaming"

// New creates the auth facade.
func New(backend appwrite.Client, ps pubsub.PubSubClient, m metrics.Metrics, welcomeBonus int) Facade {
	return &service{
		backend:      backend,
		pubsub:       ps,
		metrics:      m,
		welcomeBonus: welcomeBonus,
		sessions:     make(map[string]*User),
	}
}

func (s *service) Register(ctx context.Context, email, password, name, username string) (*User, error) {
	account, err := s.backend.CreateAccount(ctx, email, password, name)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	session, err := s.backend.CreateSession(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("registration succeeded but sign-in failed: %w", err)
	}

	user := &User{
		Account:       *account,
		SessionSecret: session.Secret,
		Status:        StatusAuthenticating,
	}

	now := time.Now().UTC()
	seed := player.Profile{
		ID:        account.ID,
		Name:      name,
		Email:     email,
		Username:  username,
		GameStats: player.NewGameStats(),
		Wallet:    wallet.Credit(wallet.Wallet{}, s.welcomeBonus, WelcomeBonusDescription, wallet.TypeCredit, wallet.CreditOptions{}),
		CreatedAt: now,
		UpdatedAt: now,
	}
	profile, err := s.backend.CreateProfile(ctx, seed)
	if err != nil {
		// Deliberate degraded mode: the account and session are live even
		// though the profile document could not be created.
		log.Warn("Profile document creation failed, continuing without profile data",
			"accountID", account.ID, "error", err)
	} else {
		user.Profile = profile
		s.publishSync(profile)
	}

	user.Status = StatusAuthenticated
	s.storeSession(user)
	s.metrics.IncLogins()
	log.Info("Registered new player", "accountID", account.ID, "username", username, "degraded", user.Profile == nil)
	return user, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	session, err := s.backend.CreateSession(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	account, err := s.backend.CurrentAccount(ctx, session.Secret)
	if err != nil {
		return nil, fmt.Errorf("session created but account fetch failed: %w", err)
	}

	user := &User{
		Account:       *account,
		SessionSecret: session.Secret,
		Status:        StatusAuthenticating,
	}

	profile, err := s.backend.GetProfile(ctx, account.ID)
	if err != nil {
		log.Warn("Profile fetch failed on login, continuing without profile data",
			"accountID", account.ID, "error", err)
	} else {
		user.Profile = profile
	}

	user.Status = StatusAuthenticated
	s.storeSession(user)
	s.metrics.IncLogins()
	return user, nil
}

func (s *service) Logout(ctx context.Context, sessionSecret string) error {
	s.dropSession(sessionSecret)
	if err := s.backend.DeleteSession(ctx, sessionSecret); err != nil {
		// The cached aggregate is already discarded; the remote session may
		// outlive us, which the provider expires on its own schedule.
		log.Error("Failed to delete remote session", "error", err)
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *service) Restore(ctx context.Context, sessionSecret string) (*User, error) {
	account, err := s.backend.CurrentAccount(ctx, sessionSecret)
	if err != nil {
		// No valid session is the normal cold-start case, not an error.
		if errors.Is(err, appwrite.ErrUnauthorized) || errors.Is(err, appwrite.ErrNotConfigured) {
			log.Info("No session to restore")
			return nil, nil
		}
		return nil, fmt.Errorf("session check failed: %w", err)
	}

	user := &User{
		Account:       *account,
		SessionSecret: sessionSecret,
		Status:        StatusAuthenticated,
	}
	profile, err := s.backend.GetProfile(ctx, account.ID)
	if err != nil {
		log.Warn("Profile fetch failed on session restore", "accountID", account.ID, "error", err)
	} else {
		user.Profile = profile
	}
	s.storeSession(user)
	return user, nil
}

func (s *service) Current(sessionSecret string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.sessions[sessionSecret]
	return user, ok
}

func (s *service) UpdateProfile(ctx context.Context, sessionSecret string, update ProfileUpdate) (*player.Profile, error) {
	return s.mutate(ctx, sessionSecret, func(p player.Profile) (player.Profile, error) {
		if update.Name != nil {
			p.Name = *update.Name
		}
		if update.Username != nil {
			p.Username = *update.Username
		}
		return p, nil
	})
}

func (s *service) UpdateGameStats(ctx context.Context, sessionSecret string, result player.MatchResult) (*player.Profile, error) {
	return s.mutate(ctx, sessionSecret, func(p player.Profile) (player.Profile, error) {
		p.GameStats = player.ApplyResult(p.GameStats, result)
		return p, nil
	})
}

func (s *service) DeductMatchEntry(ctx context.Context, sessionSecret string, amount int, description, matchID string) (*player.Profile, error) {
	profile, err := s.mutate(ctx, sessionSecret, func(p player.Profile) (player.Profile, error) {
		next, err := wallet.Debit(p.Wallet, amount, description, matchID)
		if err != nil {
			return player.Profile{}, err
		}
		p.Wallet = next
		return p, nil
	})
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientFunds) {
			s.metrics.IncInsufficientFunds()
		}
		return nil, err
	}
	s.metrics.IncWalletDebits()
	return profile, nil
}

func (s *service) AddCredits(ctx context.Context, sessionSecret string, amount int, description string, txType wallet.TransactionType) (*player.Profile, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	profile, err := s.mutate(ctx, sessionSecret, func(p player.Profile) (player.Profile, error) {
		p.Wallet = wallet.Credit(p.Wallet, amount, description, txType, wallet.CreditOptions{})
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncWalletCredits()
	return profile, nil
}

func (s *service) AdminCredit(ctx context.Context, accountID string, amount int, description, adminID, matchID string) (*player.Profile, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	profile, err := s.mutateByAccount(ctx, accountID, func(p player.Profile) (player.Profile, error) {
		p.Wallet = wallet.Credit(p.Wallet, amount, description, wallet.TypeAdminAdjustment, wallet.CreditOptions{
			AdminID: adminID,
			MatchID: matchID,
		})
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncWalletCredits()
	return profile, nil
}

// mutate resolves the session and runs a conditional read-modify-write
// against its profile document.
func (s *service) mutate(ctx context.Context, sessionSecret string, transform func(player.Profile) (player.Profile, error)) (*player.Profile, error) {
	user, ok := s.Current(sessionSecret)
	if !ok {
		return nil, ErrNoSession
	}
	if user.Profile == nil {
		return nil, ErrNoProfile
	}

	profile, err := s.mutateByAccount(ctx, user.Account.ID, transform)
	if err != nil {
		return nil, err
	}

	// Replace the cached aggregate only after the persist succeeded.
	s.mu.Lock()
	if cached, ok := s.sessions[sessionSecret]; ok {
		cached.Profile = profile
	}
	s.mu.Unlock()
	return profile, nil
}

// mutateByAccount is the fetch -> transform -> conditional write loop. A
// version conflict means another writer got there first; we refetch and
// reapply the transform rather than overwrite their change.
func (s *service) mutateByAccount(ctx context.Context, accountID string, transform func(player.Profile) (player.Profile, error)) (*player.Profile, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveWalletWriteDuration(time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		current, err := s.backend.GetProfile(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("fetching profile for update: %w", err)
		}

		next, err := transform(*current)
		if err != nil {
			return nil, err
		}
		next.ID = current.ID
		next.UpdatedAt = time.Now().UTC()

		updated, err := s.backend.UpdateProfile(ctx, next, current.Version)
		if err == nil {
			s.publishSync(updated)
			return updated, nil
		}
		if !errors.Is(err, appwrite.ErrVersionConflict) {
			return nil, err
		}
		s.metrics.IncVersionConflicts()
		log.Warn("Profile write lost a version race, retrying", "accountID", accountID, "attempt", attempt)
		lastErr = err
	}
	return nil, fmt.Errorf("profile update exhausted %d attempts: %w", maxWriteAttempts, lastErr)
}

func (s *service) publishSync(profile *player.Profile) {
	if err := s.pubsub.SendMessage(pubsub.EventProfileSynced, profile); err != nil {
		// The mirror will catch up on the next successful write; the source
		// of truth is already persisted.
		log.Error("Failed to publish profile sync event", "accountID", profile.ID, "error", err)
	}
}

func (s *service) storeSession(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[user.SessionSecret] = user
}

func (s *service) dropSession(sessionSecret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.sessions[sessionSecret]; ok {
		user.Status = StatusUnauthenticated
		user.Profile = nil
	}
	delete(s.sessions, sessionSecret)
}
