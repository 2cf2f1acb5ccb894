package refund

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mana-gg/arena/internal/metrics"
	"github.com/mana-gg/arena/internal/pubsub"
)

// Processor credits approved refund requests back to player wallets.
type Processor struct {
	store    RefundStore
	crediter Crediter
	notifier Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
}

// NewProcessor creates a new Processor.
func NewProcessor(store RefundStore, crediter Crediter, notifier Notifier, m metrics.Metrics, ps pubsub.PubSubClient) *Processor {
	return &Processor{
		store:    store,
		crediter: crediter,
		notifier: notifier,
		metrics:  m,
		pubsub:   ps,
	}
}

// Submit records a new pending request and publishes a refund-requested
// event for the review queue.
func (p *Processor) Submit(req *Request) error {
	if err := p.store.Submit(req); err != nil {
		return err
	}
	if err := p.pubsub.SendMessage(pubsub.EventRefundRequested, req); err != nil {
		log.Error("Failed to publish refund-requested event", "refundID", req.ID, "error", err)
	}
	return nil
}

// ProcessApproved fetches approved requests and credits each one. A failed
// credit leaves the request approved so the next run retries it.
func (p *Processor) ProcessApproved(ctx context.Context, dryRun bool) {
	log.Info("Starting refund processing...")
	requests, err := p.store.GetForProcessing()
	if err != nil {
		log.Error("Failed to get refunds for processing", "error", err)
		return
	}

	if len(requests) == 0 {
		log.Info("No refunds to process.")
		return
	}

	log.Info("Found refunds to process", "count", len(requests))
	for _, req := range requests {
		if err := p.processRefund(ctx, req, dryRun); err != nil {
			log.Error("Failed to process refund", "refundID", req.ID, "error", err)
		}
	}
	log.Info("Refund processing finished.")
}

func (p *Processor) processRefund(ctx context.Context, req *Request, dryRun bool) error {
	if dryRun {
		log.Info("DRY RUN: would credit refund", "refundID", req.ID, "playerID", req.PlayerID, "amount", req.Amount)
		return nil
	}

	adminID := ""
	if req.ReviewedBy != nil {
		adminID = *req.ReviewedBy
	}
	description := fmt.Sprintf("Refund: %s", req.Reason)
	profile, err := p.crediter.AdminCredit(ctx, req.PlayerID, req.Amount, description, adminID, req.MatchID)
	if err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}

	if err := p.store.MarkCredited(req.ID); err != nil {
		// The wallet credit landed but the status update failed. Surface it
		// loudly: re-running would double-credit.
		log.Error("Refund credited but status update failed, manual fix required",
			"refundID", req.ID, "playerID", req.PlayerID, "amount", req.Amount, "error", err)
		return err
	}

	if err := p.notifier.SendRefundProcessed(profile.Name, req.Amount, req.MatchID, dryRun); err != nil {
		log.Error("Failed to send refund notification", "refundID", req.ID, "error", err)
	}
	p.metrics.IncRefundsProcessed()
	log.Info("Refund credited", "refundID", req.ID, "playerID", req.PlayerID, "amount", req.Amount, "newBalance", profile.Wallet.Balance)
	return nil
}
