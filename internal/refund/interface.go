package refund

import (
	"context"

	"github.com/mana-gg/arena/internal/player"
)

// RefundStore defines the interface for interacting with refund requests.
type RefundStore interface {
	Submit(req *Request) error
	Get(id string) (*Request, error)
	List(status Status) ([]*Request, error)
	GetForProcessing() ([]*Request, error)
	Approve(id, reviewedBy string) error
	Deny(id, reviewedBy string) error
	MarkCredited(id string) error
	Clear()
}

// Crediter is the wallet operation the processor needs. The auth facade
// satisfies it.
type Crediter interface {
	AdminCredit(ctx context.Context, accountID string, amount int, description, adminID, matchID string) (*player.Profile, error)
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	SendRefundProcessed(playerName string, amount int, matchID string, dryRun bool) error
}
