package refund

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockStore is an in-memory RefundStore for tests.
type MockStore struct {
	mu       sync.Mutex
	requests map[string]*Request

	// SubmitFunc, when set, overrides Submit.
	SubmitFunc func(req *Request) error
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{requests: make(map[string]*Request)}
}

func (m *MockStore) Submit(req *Request) error {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(req)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if req.Amount <= 0 {
		return fmt.Errorf("refund amount must be positive, got %d", req.Amount)
	}
	req.ID = uuid.New().String()
	req.Status = StatusPending
	req.RequestedAt = time.Now().Unix()
	stored := *req
	m.requests[req.ID] = &stored
	return nil
}

func (m *MockStore) Get(id string) (*Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, fmt.Errorf("refund request %s: %w", id, ErrNotFound)
	}
	copied := *req
	return &copied, nil
}

func (m *MockStore) List(status Status) ([]*Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Request
	for _, req := range m.requests {
		if status == "" || req.Status == status {
			copied := *req
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockStore) GetForProcessing() ([]*Request, error) {
	return m.List(StatusApproved)
}

func (m *MockStore) Approve(id, reviewedBy string) error {
	return m.transition(id, StatusPending, StatusApproved, &reviewedBy)
}

func (m *MockStore) Deny(id, reviewedBy string) error {
	return m.transition(id, StatusPending, StatusDenied, &reviewedBy)
}

func (m *MockStore) MarkCredited(id string) error {
	return m.transition(id, StatusApproved, StatusCredited, nil)
}

func (m *MockStore) transition(id string, from, to Status, reviewedBy *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok || req.Status != from {
		return fmt.Errorf("refund request %s is not %s: %w", id, from, ErrInvalidTransition)
	}
	now := time.Now().Unix()
	req.Status = to
	if reviewedBy != nil {
		req.ReviewedBy = reviewedBy
		req.ReviewedAt = &now
	} else {
		req.ProcessedAt = &now
	}
	return nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = make(map[string]*Request)
}
