package wallet_test

import (
	"testing"

	"github.com/mana-gg/arena/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebit(t *testing.T) {
	w := wallet.Wallet{Balance: 100, TotalSpent: 20}

	next, err := wallet.Debit(w, 50, "Match entry", "match-1")
	require.NoError(t, err)

	assert.Equal(t, 50, next.Balance)
	assert.Equal(t, 70, next.TotalSpent)
	require.Len(t, next.Transactions, 1)
	assert.Equal(t, wallet.TypeMatchEntry, next.Transactions[0].Type)
	assert.Equal(t, 50, next.Transactions[0].Amount)
	assert.Equal(t, "match-1", next.Transactions[0].MatchID)
	assert.NotEmpty(t, next.Transactions[0].ID)

	// The input wallet is untouched.
	assert.Equal(t, 100, w.Balance)
	assert.Empty(t, w.Transactions)
}

func TestDebitInsufficientFunds(t *testing.T) {
	w := wallet.Wallet{Balance: 40}

	_, err := wallet.Debit(w, 50, "Match entry", "match-1")
	require.ErrorIs(t, err, wallet.ErrInsufficientFunds)

	assert.Equal(t, 40, w.Balance)
	assert.Empty(t, w.Transactions)
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	w := wallet.Wallet{Balance: 100}

	_, err := wallet.Debit(w, 0, "zero", "")
	assert.Error(t, err)
	_, err = wallet.Debit(w, -10, "negative", "")
	assert.Error(t, err)
}

func TestCredit(t *testing.T) {
	w := wallet.Wallet{Balance: 10, TotalEarnings: 5}

	next := wallet.Credit(w, 1000, "Welcome bonus for joining MANA Gaming", wallet.TypeCredit, wallet.CreditOptions{})

	assert.Equal(t, 1010, next.Balance)
	assert.Equal(t, 1005, next.TotalEarnings)
	require.Len(t, next.Transactions, 1)
	assert.Equal(t, wallet.TypeCredit, next.Transactions[0].Type)
	assert.Equal(t, 1000, next.Transactions[0].Amount)
}

func TestCreditCarriesAdminAndMatchRefs(t *testing.T) {
	next := wallet.Credit(wallet.Wallet{}, 200, "Refund", wallet.TypeAdminAdjustment, wallet.CreditOptions{
		MatchID: "match-7",
		AdminID: "ops-1",
	})

	require.Len(t, next.Transactions, 1)
	assert.Equal(t, "match-7", next.Transactions[0].MatchID)
	assert.Equal(t, "ops-1", next.Transactions[0].AdminID)
}

func TestLedgerCapAndOrdering(t *testing.T) {
	w := wallet.Wallet{Balance: 0}
	for i := 0; i < wallet.MaxTransactions+5; i++ {
		w = wallet.Credit(w, 1, "drip", wallet.TypeCredit, wallet.CreditOptions{})
	}

	assert.Len(t, w.Transactions, wallet.MaxTransactions)

	// Newest entry always sits at index 0.
	next, err := wallet.Debit(w, 3, "entry", "match-9")
	require.NoError(t, err)
	assert.Len(t, next.Transactions, wallet.MaxTransactions)
	assert.Equal(t, wallet.TypeMatchEntry, next.Transactions[0].Type)
	assert.Equal(t, "match-9", next.Transactions[0].MatchID)
}

func TestLedgerGrowsByOneBelowCap(t *testing.T) {
	w := wallet.Wallet{}
	for i := 1; i <= 10; i++ {
		w = wallet.Credit(w, 1, "drip", wallet.TypeCredit, wallet.CreditOptions{})
		assert.Len(t, w.Transactions, i)
	}
}
