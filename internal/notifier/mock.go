package notifier

import (
	"sync"

	"github.com/mana-gg/arena/internal/anticheat"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	RefundProcessedCalls []RefundProcessedCall
	HighRiskAlertCalls   []anticheat.Evaluation
	RegistrationCalls    []RegistrationCall

	// Spies for overriding behaviour
	SendRefundProcessedFunc func(playerName string, amount int, matchID string, dryRun bool) error
	SendHighRiskAlertFunc   func(eval anticheat.Evaluation, dryRun bool) error
}

// RefundProcessedCall holds the arguments of one SendRefundProcessed call.
type RefundProcessedCall struct {
	PlayerName string
	Amount     int
	MatchID    string
}

// RegistrationCall holds the arguments of one SendRegistrationNotice call.
type RegistrationCall struct {
	PlayerName string
	Mode       string
	Slot       string
	Fee        int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RefundProcessedCalls = nil
	m.HighRiskAlertCalls = nil
	m.RegistrationCalls = nil
}

func (m *Mock) SendRefundProcessed(playerName string, amount int, matchID string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RefundProcessedCalls = append(m.RefundProcessedCalls, RefundProcessedCall{PlayerName: playerName, Amount: amount, MatchID: matchID})
	if m.SendRefundProcessedFunc != nil {
		return m.SendRefundProcessedFunc(playerName, amount, matchID, dryRun)
	}
	return nil
}

func (m *Mock) SendHighRiskAlert(eval anticheat.Evaluation, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HighRiskAlertCalls = append(m.HighRiskAlertCalls, eval)
	if m.SendHighRiskAlertFunc != nil {
		return m.SendHighRiskAlertFunc(eval, dryRun)
	}
	return nil
}

func (m *Mock) SendRegistrationNotice(playerName, mode, slot string, fee int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegistrationCalls = append(m.RegistrationCalls, RegistrationCall{PlayerName: playerName, Mode: mode, Slot: slot, Fee: fee})
	return nil
}

var _ Notifier = (*Mock)(nil)
