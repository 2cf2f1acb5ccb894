package http

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mana-gg/arena/internal/registration"
)

// RegistrationOptionsHandler lists the static wizard menus. The team-size and
// slot menus depend on earlier choices and are fetched per step via query
// parameters.
func (s *Server) RegistrationOptionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := registration.Mode(r.URL.Query().Get("mode"))
		size := r.URL.Query().Get("team_size")

		switch {
		case mode != "" && size != "":
			slots, err := registration.TimeSlots(mode, size)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			respondJSON(w, http.StatusOK, map[string]any{"slots": slots})
		case mode != "":
			sizes, err := registration.TeamSizes(mode)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			respondJSON(w, http.StatusOK, map[string]any{"team_sizes": sizes})
		default:
			respondJSON(w, http.StatusOK, map[string]any{
				"modes": registration.Modes(),
				"tiers": registration.EntryTiers(),
			})
		}
	}
}

// RegistrationSelectHandler advances the wizard one step. Exactly one of the
// body fields must be set; the wizard itself enforces step order.
func (s *Server) RegistrationSelectHandler() http.HandlerFunc {
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
			Mode     string `json:"mode,omitempty"`
			TeamSize string `json:"team_size,omitempty"`
			Slot     string `json:"slot,omitempty"`
			Tier     string `json:"tier,omitempty"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		wizard := s.Registration.Wizard(secret)
		var err error
		switch {
		case body.Mode != "":
			err = wizard.SelectMode(registration.Mode(body.Mode))
		case body.TeamSize != "":
			err = wizard.SelectTeamSize(body.TeamSize)
		case body.Slot != "":
			err = wizard.SelectSlot(body.Slot)
		case body.Tier != "":
			err = wizard.SelectTier(body.Tier)
		default:
			http.Error(w, "no selection provided", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.respondWizardState(w, wizard)
	}
}

func (s *Server) RegistrationBackHandler() http.HandlerFunc {
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
			Step registration.Step `json:"step"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.Step < registration.StepMode || body.Step > registration.StepTier {
			http.Error(w, "invalid step", http.StatusBadRequest)
			return
		}

		wizard := s.Registration.Wizard(secret)
		wizard.Back(body.Step)
		s.respondWizardState(w, wizard)
	}
}

func (s *Server) RegistrationStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret, ok := s.requireSession(w, r)
		if !ok {
			return
		}
		s.respondWizardState(w, s.Registration.Wizard(secret))
	}
}

func (s *Server) RegistrationConfirmHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		secret, ok := s.requireSession(w, r)
		if !ok {
			return
		}
		isDryRun := isDryRunFromContext(r)

		receipt, err := s.Registration.Confirm(r.Context(), secret, isDryRun)
		if err != nil {
			var short *registration.InsufficientFundsError
			if errors.As(err, &short) {
				respondJSON(w, http.StatusPaymentRequired, map[string]any{
					"error":     "insufficient funds",
					"fee":       short.Fee,
					"balance":   short.Balance,
					"shortfall": short.Shortfall(),
				})
				return
			}
			log.Error("Registration confirm failed", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondJSON(w, http.StatusCreated, receipt)
	}
}

func (s *Server) respondWizardState(w http.ResponseWriter, wizard *registration.Wizard) {
	respondJSON(w, http.StatusOK, map[string]any{
		"step":      wizard.Step(),
		"complete":  wizard.Complete(),
		"selection": wizard.Selection(),
	})
}
