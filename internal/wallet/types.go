package wallet

import "time"

// TransactionType classifies a ledger entry. The amount on a transaction is
// always a positive integer; the direction is implied by the type.
type TransactionType string

const (
	TypeCredit          TransactionType = "credit"
	TypeDebit           TransactionType = "debit"
	TypeMatchEntry      TransactionType = "match_entry"
	TypeMatchReward     TransactionType = "match_reward"
	TypeAdminAdjustment TransactionType = "admin_adjustment"
)

// MaxTransactions is the cap on the embedded ledger. After every append the
// list is truncated to the most recent entries, oldest dropped.
const MaxTransactions = 50

// Transaction is one immutable ledger entry recording a balance-affecting event.
type Transaction struct {
	ID          string          `json:"id" msgpack:"id"`
	Type        TransactionType `json:"type" msgpack:"type"`
	Amount      int             `json:"amount" msgpack:"amount"`
	Description string          `json:"description" msgpack:"description"`
	Date        time.Time       `json:"date" msgpack:"date"`
	MatchID     string          `json:"match_id,omitempty" msgpack:"match_id,omitempty"`
	AdminID     string          `json:"admin_id,omitempty" msgpack:"admin_id,omitempty"`
}

// Wallet is the balance/earnings/spend/ledger aggregate embedded in a player's
// profile document. Transactions are ordered newest first.
type Wallet struct {
	Balance       int           `json:"balance" msgpack:"balance"`
	TotalEarnings int           `json:"total_earnings" msgpack:"total_earnings"`
	TotalSpent    int           `json:"total_spent" msgpack:"total_spent"`
	Transactions  []Transaction `json:"transactions" msgpack:"transactions"`
}
