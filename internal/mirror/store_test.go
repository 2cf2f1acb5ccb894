package mirror_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/mana-gg/arena/internal/database"
	"github.com/mana-gg/arena/internal/mirror"
	"github.com/mana-gg/arena/internal/player"
	"github.com/mana-gg/arena/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary in-memory SQLite database for testing.
func setupTestStore(t *testing.T) (mirror.Store, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := mirror.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}
	return store, teardown
}

func testProfile(version int64) *player.Profile {
	now := time.Now().UTC().Truncate(time.Second)
	return &player.Profile{
		ID:       "acct-1",
		Name:     "Mira",
		Email:    "mira@example.com",
		Username: "mira",
		GameStats: player.GameStats{
			GamesPlayed: 12,
			Wins:        8,
			Losses:      4,
			WinRate:     66.7,
			Rank:        player.RankIntermediate,
			Experience:  85,
		},
		Wallet: wallet.Wallet{
			Balance:       1200,
			TotalEarnings: 1500,
			TotalSpent:    300,
			Transactions: []wallet.Transaction{
				{ID: "tx-2", Type: wallet.TypeMatchEntry, Amount: 100, Description: "Entry fee", MatchID: "match-1", Date: now},
				{ID: "tx-1", Type: wallet.TypeCredit, Amount: 1000, Description: "Welcome bonus", Date: now.Add(-time.Hour)},
			},
		},
		Version:   version,
		UpdatedAt: now,
	}
}

func TestSyncCreatesSnapshot(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	require.NoError(t, store.Sync(testProfile(3)))

	snap, err := store.GetPlayer("acct-1")
	require.NoError(t, err)
	assert.Equal(t, "Mira", snap.Name)
	assert.Equal(t, "mira", snap.Username)
	assert.Equal(t, 12, snap.GamesPlayed)
	assert.Equal(t, 66.7, snap.WinRate)
	assert.Equal(t, string(player.RankIntermediate), snap.Rank)
	assert.Equal(t, 1200, snap.Balance)
	assert.Equal(t, int64(3), snap.Version)
}

func TestSyncIsIdempotent(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	profile := testProfile(3)
	require.NoError(t, store.Sync(profile))
	require.NoError(t, store.Sync(profile))

	entries, err := store.ListTransactions("acct-1")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSyncDropsStaleVersions(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	newer := testProfile(5)
	newer.Wallet.Balance = 900
	require.NoError(t, store.Sync(newer))

	stale := testProfile(4)
	stale.Wallet.Balance = 9999
	require.NoError(t, store.Sync(stale))

	snap, err := store.GetPlayer("acct-1")
	require.NoError(t, err)
	assert.Equal(t, 900, snap.Balance)
	assert.Equal(t, int64(5), snap.Version)
}

func TestListTransactionsNewestFirst(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	require.NoError(t, store.Sync(testProfile(1)))

	entries, err := store.ListTransactions("acct-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "tx-2", entries[0].ID)
	assert.Equal(t, "tx-1", entries[1].ID)
	assert.Equal(t, "match-1", entries[0].MatchID)
	assert.Empty(t, entries[1].MatchID)
}

func TestListTransactionsCapped(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	profile := testProfile(1)
	now := time.Now().UTC()
	profile.Wallet.Transactions = nil
	for i := 0; i < wallet.MaxTransactions+10; i++ {
		profile.Wallet.Transactions = append(profile.Wallet.Transactions, wallet.Transaction{
			ID:     fmt.Sprintf("tx-%03d", i),
			Type:   wallet.TypeCredit,
			Amount: 10,
			Date:   now.Add(time.Duration(-i) * time.Minute),
		})
	}
	require.NoError(t, store.Sync(profile))

	entries, err := store.ListTransactions("acct-1")
	require.NoError(t, err)
	assert.Len(t, entries, wallet.MaxTransactions)
	assert.Equal(t, "tx-000", entries[0].ID)
}

func TestListPlayersOrderedByExperience(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	first := testProfile(1)
	require.NoError(t, store.Sync(first))

	second := testProfile(1)
	second.ID = "acct-2"
	second.Username = "nox"
	second.GameStats.Experience = 500
	second.Wallet.Transactions = nil
	require.NoError(t, store.Sync(second))

	players, err := store.ListPlayers()
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "acct-2", players[0].ID)
	assert.Equal(t, "acct-1", players[1].ID)
}

func TestGetPlayerUnknownID(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	_, err := store.GetPlayer("ghost")
	assert.ErrorIs(t, err, mirror.ErrNotFound)
}
