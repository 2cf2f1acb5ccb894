package refund

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new RefundStore.
func New(db *sql.DB) RefundStore {
	return &store{
		db: db,
	}
}

// Submit records a new request in the pending state. The ID and timestamps
// are assigned here.
func (s *store) Submit(req *Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Amount <= 0 {
		return fmt.Errorf("refund amount must be positive, got %d", req.Amount)
	}
	req.ID = uuid.New().String()
	req.Status = StatusPending
	req.RequestedAt = time.Now().Unix()

	_, err := s.db.Exec(`
		INSERT INTO refund_requests (id, player_id, match_id, amount, reason, status, requested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, req.ID, req.PlayerID, req.MatchID, req.Amount, req.Reason, req.Status, req.RequestedAt)
	if err != nil {
		return fmt.Errorf("failed to insert refund request: %w", err)
	}
	log.Info("Refund request submitted", "refundID", req.ID, "playerID", req.PlayerID, "amount", req.Amount)
	return nil
}

// Get fetches one request by id.
func (s *store) Get(id string) (*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, player_id, match_id, amount, reason, status, requested_at, reviewed_by, reviewed_at, processed_at
		FROM refund_requests WHERE id = ?
	`, id)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("refund request %s: %w", id, ErrNotFound)
	}
	return req, err
}

// List returns requests in the given status, oldest first. An empty status
// returns everything.
func (s *store) List(status Status) ([]*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, player_id, match_id, amount, reason, status, requested_at, reviewed_by, reviewed_at, processed_at
		FROM refund_requests`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY requested_at ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// GetForProcessing returns approved requests awaiting credit.
func (s *store) GetForProcessing() ([]*Request, error) {
	return s.List(StatusApproved)
}

// Approve moves a pending request to approved.
func (s *store) Approve(id, reviewedBy string) error {
	return s.transition(id, StatusPending, StatusApproved, reviewedBy)
}

// Deny moves a pending request to denied.
func (s *store) Deny(id, reviewedBy string) error {
	return s.transition(id, StatusPending, StatusDenied, reviewedBy)
}

func (s *store) transition(id string, from, to Status, reviewedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE refund_requests SET status = ?, reviewed_by = ?, reviewed_at = ?
		WHERE id = ? AND status = ?
	`, to, reviewedBy, time.Now().Unix(), id, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("refund request %s is not %s: %w", id, from, ErrInvalidTransition)
	}
	log.Info("Refund request reviewed", "refundID", id, "status", to, "reviewedBy", reviewedBy)
	return nil
}

// MarkCredited moves an approved request to credited.
func (s *store) MarkCredited(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE refund_requests SET status = ?, processed_at = ?
		WHERE id = ? AND status = ?
	`, StatusCredited, time.Now().Unix(), id, StatusApproved)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("refund request %s is not %s: %w", id, StatusApproved, ErrInvalidTransition)
	}
	return nil
}

// Clear wipes every request. Test helper.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM refund_requests`); err != nil {
		log.Error("Failed to clear refund requests", "error", err)
	}
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRequest(row scannable) (*Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.PlayerID, &req.MatchID, &req.Amount, &req.Reason, &req.Status,
		&req.RequestedAt, &req.ReviewedBy, &req.ReviewedAt, &req.ProcessedAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
