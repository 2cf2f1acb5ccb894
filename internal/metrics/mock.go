package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	logins               int
	registrations        int
	walletDebits         int
	walletCredits        int
	insufficientFunds    int
	versionConflicts     int
	refundsProcessed     int
	riskEvaluations      int
	notifSent            int
	notifFailed          int
	walletWriteDurations []float64
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		walletWriteDurations: make([]float64, 0),
	}
}

func (m *Mock) IncLogins() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins++
}

func (m *Mock) IncRegistrations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations++
}

func (m *Mock) IncWalletDebits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.walletDebits++
}

func (m *Mock) IncWalletCredits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.walletCredits++
}

func (m *Mock) IncInsufficientFunds() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insufficientFunds++
}

func (m *Mock) IncVersionConflicts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versionConflicts++
}

func (m *Mock) IncRefundsProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refundsProcessed++
}

func (m *Mock) IncRiskEvaluations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.riskEvaluations++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) ObserveWalletWriteDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.walletWriteDurations = append(m.walletWriteDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Logins returns the number of times IncLogins was called.
func (m *Mock) Logins() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logins
}

// Registrations returns the number of times IncRegistrations was called.
func (m *Mock) Registrations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registrations
}

// WalletDebits returns the number of times IncWalletDebits was called.
func (m *Mock) WalletDebits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.walletDebits
}

// WalletCredits returns the number of times IncWalletCredits was called.
func (m *Mock) WalletCredits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.walletCredits
}

// InsufficientFunds returns the number of times IncInsufficientFunds was called.
func (m *Mock) InsufficientFunds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insufficientFunds
}

// VersionConflicts returns the number of times IncVersionConflicts was called.
func (m *Mock) VersionConflicts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versionConflicts
}

// RefundsProcessed returns the number of times IncRefundsProcessed was called.
func (m *Mock) RefundsProcessed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refundsProcessed
}

// RiskEvaluations returns the number of times IncRiskEvaluations was called.
func (m *Mock) RiskEvaluations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.riskEvaluations
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}

var _ Metrics = (*Mock)(nil)
