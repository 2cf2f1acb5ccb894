package http

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mana-gg/arena/internal/player"
)

// ProfileSyncedHandler is the push endpoint for profile-synced events. It
// folds the event's profile into the local read model.
func (s *Server) ProfileSyncedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received profile sync message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		profile := player.Profile{}
		if err := s.pubsub.ProcessMessage(rawData, &profile); err != nil {
			log.Error("Failed to decode profile payload", "error", err)
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		if err := s.Mirror.Sync(&profile); err != nil {
			log.Error("Failed to sync profile into mirror", "accountID", profile.ID, "error", err)
			http.Error(w, "Failed to sync profile", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
