package appwrite

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Account is the identity-provider side of a user.
type Account struct {
	ID    string `json:"$id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is one authenticated browser/device session. Secret is the token
// the caller must present on session-bound calls.
type Session struct {
	ID     string    `json:"$id"`
	UserID string    `json:"userId"`
	Secret string    `json:"secret"`
	Expire time.Time `json:"expire"`
}

// Config carries everything the client needs to reach the hosted backend.
// Any of these being empty puts the client into a fail-closed degraded mode
// (ErrNotConfigured) rather than a crash.
type Config struct {
	Endpoint     string
	ProjectID    string
	APIKey       string
	DatabaseID   string
	CollectionID string
	BucketID     string
}

// Configured reports whether the minimum required fields are present.
func (c Config) Configured() bool {
	return c.Endpoint != "" && c.ProjectID != "" && c.DatabaseID != "" && c.CollectionID != ""
}

var (
	// ErrNotConfigured means the backend endpoint/project configuration is
	// missing. Callers treat this as "not authenticated", never as a crash.
	ErrNotConfigured = errors.New("hosted backend is not configured")
	// ErrNotFound marks a missing document or account; for profiles this is
	// the degraded-mode trigger.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict means a conditional profile update lost the race.
	ErrVersionConflict = errors.New("profile version conflict")
	// ErrUnauthorized covers bad credentials and expired sessions.
	ErrUnauthorized = errors.New("unauthorized")
)

// apiError is the backend's error envelope.
type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("backend error %d (%s): %s", e.Code, e.Type, e.Message)
}

// mapStatus translates an HTTP status into the sentinel taxonomy, falling
// back to the raw API error.
func mapStatus(status int, apiErr *apiError) error {
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrVersionConflict, apiErr.Message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
	default:
		return apiErr
	}
}
