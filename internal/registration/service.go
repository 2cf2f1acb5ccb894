package registration

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mana-gg/arena/internal/auth"
	"github.com/mana-gg/arena/internal/metrics"
	"github.com/mana-gg/arena/internal/notifier"
	"github.com/mana-gg/arena/internal/pubsub"
	"github.com/mana-gg/arena/internal/wallet"
)

// InsufficientFundsError reports how far short the wallet fell of the entry
// fee. It unwraps to wallet.ErrInsufficientFunds.
type InsufficientFundsError struct {
	Fee     int `json:"fee"`
	Balance int `json:"balance"`
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("entry fee is %d but balance is %d (short %d)", e.Fee, e.Balance, e.Shortfall())
}

func (e *InsufficientFundsError) Unwrap() error {
	return wallet.ErrInsufficientFunds
}

// Shortfall is the amount missing from the wallet.
func (e *InsufficientFundsError) Shortfall() int {
	return e.Fee - e.Balance
}

// Receipt is returned when a registration is confirmed.
type Receipt struct {
	MatchID  string `json:"match_id" msgpack:"match_id"`
	PlayerID string `json:"player_id" msgpack:"player_id"`
	Mode     Mode   `json:"mode" msgpack:"mode"`
	TeamSize string `json:"team_size" msgpack:"team_size"`
	Slot     string `json:"slot" msgpack:"slot"`
	Tier     string `json:"tier" msgpack:"tier"`
	Fee      int    `json:"fee" msgpack:"fee"`
	Prize    int    `json:"prize" msgpack:"prize"`
	Balance  int    `json:"balance" msgpack:"balance"`
}

// Service runs the registration wizard for authenticated sessions.
type Service struct {
	facade   auth.Facade
	pubsub   pubsub.PubSubClient
	notifier notifier.Notifier
	metrics  metrics.Metrics

	mu      sync.Mutex
	wizards map[string]*Wizard
}

// New creates the registration service.
func New(facade auth.Facade, ps pubsub.PubSubClient, n notifier.Notifier, m metrics.Metrics) *Service {
	return &Service{
		facade:   facade,
		pubsub:   ps,
		notifier: n,
		metrics:  m,
		wizards:  make(map[string]*Wizard),
	}
}

// Wizard returns the wizard for a session, creating it on first use.
func (s *Service) Wizard(sessionSecret string) *Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wizards[sessionSecret]
	if !ok {
		w = &Wizard{}
		s.wizards[sessionSecret] = w
	}
	return w
}

// Discard drops a session's wizard, e.g. on logout.
func (s *Service) Discard(sessionSecret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wizards, sessionSecret)
}

// Confirm charges the entry fee and finalizes the session's registration.
// The wizard must have a selection at every step. On success the wizard is
// reset to the first step and a match-registered event is published.
func (s *Service) Confirm(ctx context.Context, sessionSecret string, dryRun bool) (*Receipt, error) {
	w := s.Wizard(sessionSecret)
	if !w.Complete() {
		return nil, fmt.Errorf("registration incomplete, wizard is on step %d", w.Step())
	}
	sel := w.Selection()
	tier, err := TierByID(sel.Tier)
	if err != nil {
		return nil, err
	}

	matchID := uuid.New().String()
	description := fmt.Sprintf("Entry fee: %s %s at %s", tier.Name, sel.Mode, sel.Slot)
	profile, err := s.facade.DeductMatchEntry(ctx, sessionSecret, tier.Fee, description, matchID)
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientFunds) {
			user, ok := s.facade.Current(sessionSecret)
			if !ok || user.Profile == nil {
				return nil, err
			}
			return nil, &InsufficientFundsError{Fee: tier.Fee, Balance: user.Profile.Wallet.Balance}
		}
		return nil, fmt.Errorf("failed to charge entry fee: %w", err)
	}

	receipt := &Receipt{
		MatchID:  matchID,
		PlayerID: profile.ID,
		Mode:     sel.Mode,
		TeamSize: sel.TeamSize,
		Slot:     sel.Slot,
		Tier:     tier.ID,
		Fee:      tier.Fee,
		Prize:    tier.Prize,
		Balance:  profile.Wallet.Balance,
	}

	if err := s.pubsub.SendMessage(pubsub.EventMatchRegistered, receipt); err != nil {
		log.Error("Failed to publish match-registered event", "matchID", matchID, "error", err)
	}
	if err := s.notifier.SendRegistrationNotice(profile.Name, string(sel.Mode), sel.Slot, tier.Fee, dryRun); err != nil {
		log.Error("Failed to send registration notice", "matchID", matchID, "error", err)
	}
	s.metrics.IncRegistrations()

	w.Reset()
	log.Info("Registration confirmed", "matchID", matchID, "player", profile.ID, "tier", tier.ID, "slot", sel.Slot)
	return receipt, nil
}
