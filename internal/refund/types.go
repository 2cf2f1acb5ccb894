package refund

import (
	"database/sql"
	"errors"
	"sync"
)

// Status is a refund request's position in its lifecycle. Requests move
// pending -> approved -> credited, or pending -> denied. No other
// transitions exist.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
	StatusCredited Status = "credited"
)

var (
	// ErrInvalidTransition is returned when a request is not in the state
	// the transition requires, or does not exist.
	ErrInvalidTransition = errors.New("invalid refund transition")
	// ErrNotFound is returned when a request id is unknown.
	ErrNotFound = errors.New("refund request not found")
)

// Request is one investment-protection refund request.
type Request struct {
	ID          string  `json:"id" msgpack:"id"`
	PlayerID    string  `json:"player_id" msgpack:"player_id"`
	MatchID     string  `json:"match_id" msgpack:"match_id"`
	Amount      int     `json:"amount" msgpack:"amount"`
	Reason      string  `json:"reason" msgpack:"reason"`
	Status      Status  `json:"status" msgpack:"status"`
	RequestedAt int64   `json:"requested_at" msgpack:"requested_at"`
	ReviewedBy  *string `json:"reviewed_by,omitempty" msgpack:"reviewed_by"`
	ReviewedAt  *int64  `json:"reviewed_at,omitempty" msgpack:"reviewed_at"`
	ProcessedAt *int64  `json:"processed_at,omitempty" msgpack:"processed_at"`
}

// store handles all database operations for refund requests.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
