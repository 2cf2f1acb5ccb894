package http

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mana-gg/arena/internal/anticheat"
	"github.com/mana-gg/arena/internal/refund"
)

// SubmitRefundHandler is the player-facing entry point of the refund queue.
func (s *Server) SubmitRefundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		secret, ok := s.requireSession(w, r)
		if !ok {
			return
		}
		var body struct {
			MatchID string `json:"match_id"`
			Amount  int    `json:"amount"`
			Reason  string `json:"reason"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.Amount <= 0 {
			http.Error(w, "amount must be positive", http.StatusBadRequest)
			return
		}

		user, _ := s.Auth.Current(secret)
		req := &refund.Request{
			PlayerID: user.Account.ID,
			MatchID:  body.MatchID,
			Amount:   body.Amount,
			Reason:   body.Reason,
		}
		if err := s.Refunds.Submit(req); err != nil {
			log.Error("Failed to submit refund request", "error", err)
			http.Error(w, "Failed to submit refund request", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusCreated, req)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Mirror.ListPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from mirror", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, players)
	}
}

func (s *Server) PlayerTransactionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("player_id")
		if playerID == "" {
			http.Error(w, "player_id is required", http.StatusBadRequest)
			return
		}
		entries, err := s.Mirror.ListTransactions(playerID)
		if err != nil {
			http.Error(w, "Failed to get transactions", http.StatusInternalServerError)
			log.Error("Failed to get transactions from mirror", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

// RiskReportHandler scores a batch of telemetry snapshots and returns the
// evaluations sorted by score. High-band players additionally trigger a
// notification so moderators see them without polling the dashboard.
func (s *Server) RiskReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var snapshots []anticheat.StatsSnapshot
		if !decodeJSON(w, r, &snapshots) {
			return
		}
		isDryRun := isDryRunFromContext(r)

		evaluations := anticheat.Evaluate(snapshots)
		s.Metrics.IncRiskEvaluations()
		for _, eval := range evaluations {
			if eval.Band != anticheat.BandHigh {
				break
			}
			if err := s.Notifier.SendHighRiskAlert(eval, isDryRun); err != nil {
				log.Error("Failed to send high risk alert", "playerID", eval.PlayerID, "error", err)
			}
		}
		respondJSON(w, http.StatusOK, evaluations)
	}
}

func (s *Server) AdminCreditHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body struct {
			AccountID   string `json:"account_id"`
			Amount      int    `json:"amount"`
			Description string `json:"description"`
			MatchID     string `json:"match_id"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.AccountID == "" || body.Amount <= 0 {
			http.Error(w, "account_id and a positive amount are required", http.StatusBadRequest)
			return
		}
		if body.Description == "" {
			body.Description = "Manual adjustment"
		}

		profile, err := s.Auth.AdminCredit(r.Context(), body.AccountID, body.Amount, body.Description, adminFromContext(r), body.MatchID)
		if err != nil {
			log.Error("Admin credit failed", "accountID", body.AccountID, "error", err)
			http.Error(w, "Failed to credit wallet", http.StatusBadGateway)
			return
		}
		respondJSON(w, http.StatusOK, profile.Wallet)
	}
}

func (s *Server) ListRefundsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := refund.Status(r.URL.Query().Get("status"))
		requests, err := s.RefundStore.List(status)
		if err != nil {
			http.Error(w, "Failed to list refund requests", http.StatusInternalServerError)
			log.Error("Failed to list refund requests", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, requests)
	}
}

func (s *Server) ReviewRefundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body struct {
			ID       string `json:"id"`
			Decision string `json:"decision"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		reviewer := adminFromContext(r)
		var err error
		switch body.Decision {
		case "approve":
			err = s.RefundStore.Approve(body.ID, reviewer)
		case "deny":
			err = s.RefundStore.Deny(body.ID, reviewer)
		default:
			http.Error(w, "decision must be approve or deny", http.StatusBadRequest)
			return
		}
		if err != nil {
			if errors.Is(err, refund.ErrInvalidTransition) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			log.Error("Refund review failed", "refundID", body.ID, "error", err)
			http.Error(w, "Refund review failed", http.StatusInternalServerError)
			return
		}

		request, err := s.RefundStore.Get(body.ID)
		if err != nil {
			http.Error(w, "Refund review failed", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, request)
	}
}

func (s *Server) ProcessRefundsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		isDryRun := isDryRunFromContext(r)

		s.Refunds.ProcessApproved(r.Context(), isDryRun)

		respondJSON(w, http.StatusOK, map[string]string{"status": "completed"})
	}
}
