package notifier

import "github.com/mana-gg/arena/internal/anticheat"

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendRefundProcessed announces a credited investment-protection refund
	// to the operator channel.
	SendRefundProcessed(playerName string, amount int, matchID string, dryRun bool) error
	// SendHighRiskAlert flags a player whose risk score landed in the high
	// band. Informational only; no automated action follows.
	SendHighRiskAlert(eval anticheat.Evaluation, dryRun bool) error
	// SendRegistrationNotice announces a confirmed match registration.
	SendRegistrationNotice(playerName, mode, slot string, fee int, dryRun bool) error
}
