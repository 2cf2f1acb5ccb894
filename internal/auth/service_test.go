package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mana-gg/arena/internal/appwrite"
	"github.com/mana-gg/arena/internal/auth"
	"github.com/mana-gg/arena/internal/metrics"
	"github.com/mana-gg/arena/internal/player"
	"github.com/mana-gg/arena/internal/pubsub"
	"github.com/mana-gg/arena/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFacade(t *testing.T) (auth.Facade, *appwrite.MockClient, *pubsub.MockPubSubClient, *metrics.Mock) {
	t.Helper()
	backend := appwrite.NewMockClient()
	ps := pubsub.NewMock("TEST")
	m := metrics.NewMock()
	return auth.New(backend, ps, m, 1000), backend, ps, m
}

func register(t *testing.T, facade auth.Facade) *auth.User {
	t.Helper()
	user, err := facade.Register(context.Background(), "ada@example.com", "secret123", "Ada", "ada")
	require.NoError(t, err)
	return user
}

func TestRegisterSeedsWalletWithWelcomeBonus(t *testing.T) {
	facade, backend, ps, _ := setupFacade(t)

	user := register(t, facade)

	require.NotNil(t, user.Profile)
	assert.Equal(t, auth.StatusAuthenticated, user.Status)
	assert.Equal(t, 1000, user.Profile.Wallet.Balance)
	assert.Equal(t, 1000, user.Profile.Wallet.TotalEarnings)
	require.Len(t, user.Profile.Wallet.Transactions, 1)
	tx := user.Profile.Wallet.Transactions[0]
	assert.Equal(t, wallet.TypeCredit, tx.Type)
	assert.Equal(t, 1000, tx.Amount)
	assert.Equal(t, auth.WelcomeBonusDescription, tx.Description)

	assert.Equal(t, player.RankBeginner, user.Profile.GameStats.Rank)
	assert.Zero(t, user.Profile.GameStats.GamesPlayed)

	stored, ok := backend.StoredProfile(user.Account.ID)
	require.True(t, ok)
	assert.Equal(t, 1000, stored.Wallet.Balance)

	require.Len(t, ps.SendMessageCalls, 1)
	assert.Equal(t, string(pubsub.EventProfileSynced), ps.SendMessageCalls[0].Topic)
}

func TestRegisterDegradedModeOnProfileFailure(t *testing.T) {
	facade, backend, _, _ := setupFacade(t)
	backend.CreateProfileFunc = func(profile player.Profile) (*player.Profile, error) {
		return nil, errors.New("permission denied")
	}

	user := register(t, facade)

	assert.Equal(t, auth.StatusAuthenticated, user.Status)
	assert.Nil(t, user.Profile)
	assert.True(t, user.Degraded())

	// Wallet operations against a degraded session fail with a typed error.
	_, err := facade.DeductMatchEntry(context.Background(), user.SessionSecret, 50, "entry", "m1")
	assert.ErrorIs(t, err, auth.ErrNoProfile)
}

func TestLoginLoadsProfile(t *testing.T) {
	facade, _, _, m := setupFacade(t)
	register(t, facade)

	user, err := facade.Login(context.Background(), "ada@example.com", "secret123")
	require.NoError(t, err)
	require.NotNil(t, user.Profile)
	assert.Equal(t, "ada", user.Profile.Username)
	assert.Equal(t, 2, m.Logins())
}

func TestLoginBadCredentials(t *testing.T) {
	facade, _, _, _ := setupFacade(t)
	register(t, facade)

	_, err := facade.Login(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, appwrite.ErrUnauthorized)
}

func TestLoginDegradedOnMissingProfile(t *testing.T) {
	facade, backend, _, _ := setupFacade(t)
	user := register(t, facade)

	backend.GetProfileFunc = func(accountID string) (*player.Profile, error) {
		return nil, appwrite.ErrNotFound
	}
	logged, err := facade.Login(context.Background(), "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Nil(t, logged.Profile)
	assert.True(t, logged.Degraded())
	_ = user
}

func TestLogoutDropsSession(t *testing.T) {
	facade, _, _, _ := setupFacade(t)
	user := register(t, facade)

	require.NoError(t, facade.Logout(context.Background(), user.SessionSecret))

	_, ok := facade.Current(user.SessionSecret)
	assert.False(t, ok)
	_, err := facade.DeductMatchEntry(context.Background(), user.SessionSecret, 10, "entry", "m1")
	assert.ErrorIs(t, err, auth.ErrNoSession)
}

func TestRestoreSession(t *testing.T) {
	facade, _, _, _ := setupFacade(t)
	user := register(t, facade)

	// A fresh facade instance simulates a process restart.
	restored, err := facade.Restore(context.Background(), user.SessionSecret)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, user.Account.ID, restored.Account.ID)
	require.NotNil(t, restored.Profile)
}

func TestRestoreWithoutSessionIsNotAnError(t *testing.T) {
	facade, _, _, _ := setupFacade(t)

	restored, err := facade.Restore(context.Background(), "stale-secret")
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestDeductMatchEntry(t *testing.T) {
	facade, backend, _, m := setupFacade(t)
	user := register(t, facade)

	profile, err := facade.DeductMatchEntry(context.Background(), user.SessionSecret, 50, "Entry fee: Bronze tier", "match-42")
	require.NoError(t, err)

	assert.Equal(t, 950, profile.Wallet.Balance)
	assert.Equal(t, 50, profile.Wallet.TotalSpent)
	require.Len(t, profile.Wallet.Transactions, 2)
	assert.Equal(t, wallet.TypeMatchEntry, profile.Wallet.Transactions[0].Type)
	assert.Equal(t, "match-42", profile.Wallet.Transactions[0].MatchID)
	assert.Equal(t, 1, m.WalletDebits())

	// Cache replaced only after persist: stored and cached agree.
	stored, _ := backend.StoredProfile(user.Account.ID)
	cached, _ := facade.Current(user.SessionSecret)
	assert.Equal(t, stored.Wallet.Balance, cached.Profile.Wallet.Balance)
}

func TestDeductMatchEntryInsufficientFunds(t *testing.T) {
	facade, backend, _, m := setupFacade(t)
	user := register(t, facade)

	// Drain the wallet down to 40.
	_, err := facade.DeductMatchEntry(context.Background(), user.SessionSecret, 960, "drain", "m0")
	require.NoError(t, err)

	_, err = facade.DeductMatchEntry(context.Background(), user.SessionSecret, 50, "Entry fee", "m1")
	require.ErrorIs(t, err, wallet.ErrInsufficientFunds)
	assert.Equal(t, 1, m.InsufficientFunds())

	// Nothing was persisted by the failed debit.
	stored, _ := backend.StoredProfile(user.Account.ID)
	assert.Equal(t, 40, stored.Wallet.Balance)
	assert.Len(t, stored.Wallet.Transactions, 2) // welcome bonus + drain
}

func TestAddCredits(t *testing.T) {
	facade, _, _, m := setupFacade(t)
	user := register(t, facade)

	profile, err := facade.AddCredits(context.Background(), user.SessionSecret, 250, "Match reward", wallet.TypeMatchReward)
	require.NoError(t, err)
	assert.Equal(t, 1250, profile.Wallet.Balance)
	assert.Equal(t, 1250, profile.Wallet.TotalEarnings)
	assert.Equal(t, wallet.TypeMatchReward, profile.Wallet.Transactions[0].Type)
	assert.Equal(t, 1, m.WalletCredits())
}

func TestAdminCredit(t *testing.T) {
	facade, backend, _, _ := setupFacade(t)
	user := register(t, facade)

	profile, err := facade.AdminCredit(context.Background(), user.Account.ID, 50, "Refund: canceled match", "ops-1", "match-9")
	require.NoError(t, err)
	assert.Equal(t, 1050, profile.Wallet.Balance)
	tx := profile.Wallet.Transactions[0]
	assert.Equal(t, wallet.TypeAdminAdjustment, tx.Type)
	assert.Equal(t, "ops-1", tx.AdminID)
	assert.Equal(t, "match-9", tx.MatchID)

	stored, _ := backend.StoredProfile(user.Account.ID)
	assert.Equal(t, 1050, stored.Wallet.Balance)
}

func TestUpdateGameStats(t *testing.T) {
	facade, backend, _, _ := setupFacade(t)
	user := register(t, facade)

	// Bring the counters to gamesPlayed=9, wins=4.
	for i := 0; i < 4; i++ {
		_, err := facade.UpdateGameStats(context.Background(), user.SessionSecret, player.ResultWin)
		require.NoError(t, err)
	}
	for i := 0; i < 5; i++ {
		_, err := facade.UpdateGameStats(context.Background(), user.SessionSecret, player.ResultLoss)
		require.NoError(t, err)
	}

	profile, err := facade.UpdateGameStats(context.Background(), user.SessionSecret, player.ResultWin)
	require.NoError(t, err)
	assert.Equal(t, 10, profile.GameStats.GamesPlayed)
	assert.Equal(t, 5, profile.GameStats.Wins)
	assert.Equal(t, 50.0, profile.GameStats.WinRate)
	assert.Equal(t, 4*10+5*5+10, profile.GameStats.Experience)

	stored, _ := backend.StoredProfile(user.Account.ID)
	assert.Equal(t, profile.GameStats, stored.GameStats)
}

func TestUpdateProfileFields(t *testing.T) {
	facade, _, _, _ := setupFacade(t)
	user := register(t, facade)

	newName := "Ada Lovelace"
	profile, err := facade.UpdateProfile(context.Background(), user.SessionSecret, auth.ProfileUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", profile.Name)
	assert.Equal(t, "ada", profile.Username)
}

func TestWriteRetriesOnVersionConflict(t *testing.T) {
	facade, backend, _, m := setupFacade(t)
	user := register(t, facade)

	// First fetch hands back a stale version so the conditional write
	// conflicts; the retry sees the real document and succeeds.
	staleServed := false
	backend.GetProfileFunc = func(accountID string) (*player.Profile, error) {
		backend.GetProfileFunc = nil
		stored, _ := backend.StoredProfile(accountID)
		stale := stored
		stale.Version = stored.Version - 1
		staleServed = true
		return &stale, nil
	}

	profile, err := facade.AddCredits(context.Background(), user.SessionSecret, 10, "drip", wallet.TypeCredit)
	require.NoError(t, err)
	assert.True(t, staleServed)
	assert.Equal(t, 1010, profile.Wallet.Balance)
	assert.Equal(t, 1, m.VersionConflicts())
}
