package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mana-gg/arena/internal/auth"
	"github.com/mana-gg/arena/internal/player"
	"github.com/mana-gg/arena/internal/wallet"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

// requireSession resolves the bearer token; a missing or unknown token is a
// 401 and the handler should return immediately.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	secret, ok := sessionFromContext(r)
	if !ok {
		http.Error(w, "Missing session token", http.StatusUnauthorized)
		return "", false
	}
	if _, ok := s.Auth.Current(secret); !ok {
		http.Error(w, "Unknown session", http.StatusUnauthorized)
		return "", false
	}
	return secret, true
}

// userResponse is the wire shape of an authenticated session. Degraded means
// the account is live but the profile document could not be loaded.
type userResponse struct {
	AccountID     string          `json:"account_id"`
	SessionSecret string          `json:"session_secret,omitempty"`
	Status        auth.Status     `json:"status"`
	Degraded      bool            `json:"degraded"`
	Profile       *player.Profile `json:"profile,omitempty"`
}

func newUserResponse(user *auth.User, includeSecret bool) userResponse {
	resp := userResponse{
		AccountID: user.Account.ID,
		Status:    user.Status,
		Degraded:  user.Degraded(),
		Profile:   user.Profile,
	}
	if includeSecret {
		resp.SessionSecret = user.SessionSecret
	}
	return resp
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
			Username string `json:"username"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.Email == "" || body.Password == "" || body.Username == "" {
			http.Error(w, "email, password and username are required", http.StatusBadRequest)
			return
		}

		user, err := s.Auth.Register(r.Context(), body.Email, body.Password, body.Name, body.Username)
		if err != nil {
			log.Error("Registration failed", "email", body.Email, "error", err)
			http.Error(w, "Registration failed", http.StatusBadGateway)
			return
		}
		respondJSON(w, http.StatusCreated, newUserResponse(user, true))
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		user, err := s.Auth.Login(r.Context(), body.Email, body.Password)
		if err != nil {
			log.Warn("Login failed", "email", body.Email, "error", err)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		respondJSON(w, http.StatusOK, newUserResponse(user, true))
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		secret, ok := sessionFromContext(r)
		if !ok {
			http.Error(w, "Missing session token", http.StatusUnauthorized)
			return
		}

		s.Registration.Discard(secret)
		if err := s.Auth.Logout(r.Context(), secret); err != nil {
			// The local session is gone either way; the remote session will
			// expire on its own.
			log.Warn("Remote session deletion failed", "error", err)
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Logged out")
	}
}

func (s *Server) RestoreSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret, ok := sessionFromContext(r)
		if !ok {
			http.Error(w, "Missing session token", http.StatusUnauthorized)
			return
		}

		user, err := s.Auth.Restore(r.Context(), secret)
		if err != nil {
			log.Error("Session restore failed", "error", err)
			http.Error(w, "Session restore failed", http.StatusBadGateway)
			return
		}
		if user == nil {
			http.Error(w, "No active session", http.StatusUnauthorized)
			return
		}
		respondJSON(w, http.StatusOK, newUserResponse(user, false))
	}
}

func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret, ok := s.requireSession(w, r)
		if !ok {
			return
		}

		switch r.Method {
		case http.MethodGet:
			user, _ := s.Auth.Current(secret)
			respondJSON(w, http.StatusOK, newUserResponse(user, false))
		case http.MethodPatch:
			var update auth.ProfileUpdate
			if !decodeJSON(w, r, &update) {
				return
			}
			profile, err := s.Auth.UpdateProfile(r.Context(), secret, update)
			if err != nil {
				s.respondProfileError(w, err, "Profile update failed")
				return
			}
			respondJSON(w, http.StatusOK, profile)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) RecordResultHandler() http.HandlerFunc {
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
			Result player.MatchResult `json:"result"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.Result != player.ResultWin && body.Result != player.ResultLoss {
			http.Error(w, "result must be win or loss", http.StatusBadRequest)
			return
		}

		profile, err := s.Auth.UpdateGameStats(r.Context(), secret, body.Result)
		if err != nil {
			s.respondProfileError(w, err, "Failed to record result")
			return
		}
		respondJSON(w, http.StatusOK, profile)
	}
}

func (s *Server) WalletHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret, ok := s.requireSession(w, r)
		if !ok {
			return
		}
		user, _ := s.Auth.Current(secret)
		if user.Profile == nil {
			http.Error(w, "Profile unavailable", http.StatusServiceUnavailable)
			return
		}
		respondJSON(w, http.StatusOK, user.Profile.Wallet)
	}
}

func (s *Server) TransactionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret, ok := s.requireSession(w, r)
		if !ok {
			return
		}
		user, _ := s.Auth.Current(secret)
		if user.Profile == nil {
			http.Error(w, "Profile unavailable", http.StatusServiceUnavailable)
			return
		}

		// The mirror keeps the same capped window as the embedded ledger but
		// survives profile rewrites, so prefer it when it has caught up.
		entries, err := s.Mirror.ListTransactions(user.Account.ID)
		if err != nil || len(entries) == 0 {
			respondJSON(w, http.StatusOK, user.Profile.Wallet.Transactions)
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

func (s *Server) AddCreditsHandler() http.HandlerFunc {
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
			Amount      int    `json:"amount"`
			Description string `json:"description"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.Amount <= 0 {
			http.Error(w, "amount must be positive", http.StatusBadRequest)
			return
		}
		if body.Description == "" {
			body.Description = "Credit purchase"
		}

		profile, err := s.Auth.AddCredits(r.Context(), secret, body.Amount, body.Description, wallet.TypeCredit)
		if err != nil {
			s.respondProfileError(w, err, "Failed to add credits")
			return
		}
		respondJSON(w, http.StatusOK, profile.Wallet)
	}
}

// respondProfileError maps facade errors onto HTTP statuses.
func (s *Server) respondProfileError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, auth.ErrNoSession):
		http.Error(w, "Unknown session", http.StatusUnauthorized)
	case errors.Is(err, auth.ErrNoProfile):
		http.Error(w, "Profile unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, wallet.ErrInsufficientFunds):
		http.Error(w, "Insufficient funds", http.StatusPaymentRequired)
	default:
		log.Error(msg, "error", err)
		http.Error(w, msg, http.StatusBadGateway)
	}
}
