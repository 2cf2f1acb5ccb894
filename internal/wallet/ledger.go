package wallet

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInsufficientFunds is returned by Debit when the wallet balance cannot
// cover the requested amount. Callers are expected to branch on it with
// errors.Is and route the player to a top-up, not a generic error banner.
var ErrInsufficientFunds = errors.New("insufficient funds")

// CreditOptions carries the optional fields of a credit transaction.
type CreditOptions struct {
	MatchID string
	AdminID string
}

// Debit computes the next wallet state for a match-entry charge. It is a pure
// transform: the input wallet is never mutated, and on failure the caller must
// not persist anything.
func Debit(w Wallet, amount int, description, matchID string) (Wallet, error) {
	if amount <= 0 {
		return Wallet{}, fmt.Errorf("debit amount must be positive, got %d", amount)
	}
	if w.Balance < amount {
		return Wallet{}, fmt.Errorf("balance %d cannot cover %d: %w", w.Balance, amount, ErrInsufficientFunds)
	}

	next := w
	next.Balance -= amount
	next.TotalSpent += amount
	next.Transactions = prepend(w.Transactions, Transaction{
		ID:          uuid.NewString(),
		Type:        TypeMatchEntry,
		Amount:      amount,
		Description: description,
		Date:        time.Now().UTC(),
		MatchID:     matchID,
	})
	return next, nil
}

// Credit computes the next wallet state for a credit of the given type.
// Credits always succeed; there is no balance precondition.
func Credit(w Wallet, amount int, description string, txType TransactionType, opts CreditOptions) Wallet {
	next := w
	next.Balance += amount
	next.TotalEarnings += amount
	next.Transactions = prepend(w.Transactions, Transaction{
		ID:          uuid.NewString(),
		Type:        txType,
		Amount:      amount,
		Description: description,
		Date:        time.Now().UTC(),
		MatchID:     opts.MatchID,
		AdminID:     opts.AdminID,
	})
	return next
}

// prepend puts tx at index 0 and truncates to the cap, returning a fresh
// slice so the caller's wallet value stays untouched.
func prepend(txs []Transaction, tx Transaction) []Transaction {
	out := make([]Transaction, 0, min(len(txs)+1, MaxTransactions))
	out = append(out, tx)
	for _, t := range txs {
		if len(out) == MaxTransactions {
			break
		}
		out = append(out, t)
	}
	return out
}
