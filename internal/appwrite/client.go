package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mana-gg/arena/internal/player"
)

// APIClient is the HTTP implementation of the Client interface.
type APIClient struct {
	httpClient *http.Client
	cfg        Config
}

// NewClient creates a new hosted-backend client. A client built from an
// incomplete Config is still usable; every call just fails closed with
// ErrNotConfigured.
func NewClient(cfg Config) Client {
	if !cfg.Configured() {
		log.Warn("Hosted backend configuration incomplete, auth calls will fail closed",
			"endpoint_set", cfg.Endpoint != "", "project_set", cfg.ProjectID != "")
	}
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cfg:        cfg,
	}
}

// Ensure APIClient implements the Client interface.
var _ Client = (*APIClient)(nil)

func (c *APIClient) CreateAccount(ctx context.Context, email, password, name string) (*Account, error) {
	body := map[string]any{
		"userId":   "unique()",
		"email":    email,
		"password": password,
		"name":     name,
	}
	var account Account
	if err := c.do(ctx, http.MethodPost, "/v1/account", "", body, &account); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}
	log.Info("Created account", "accountID", account.ID)
	return &account, nil
}

func (c *APIClient) CreateSession(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/v1/account/sessions/email", "", body, &session); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return &session, nil
}

func (c *APIClient) CurrentAccount(ctx context.Context, sessionSecret string) (*Account, error) {
	var account Account
	if err := c.do(ctx, http.MethodGet, "/v1/account", sessionSecret, nil, &account); err != nil {
		return nil, fmt.Errorf("fetching current account: %w", err)
	}
	return &account, nil
}

func (c *APIClient) DeleteSession(ctx context.Context, sessionSecret string) error {
	if err := c.do(ctx, http.MethodDelete, "/v1/account/sessions/current", sessionSecret, nil, nil); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (c *APIClient) CreateProfile(ctx context.Context, profile player.Profile) (*player.Profile, error) {
	body := map[string]any{
		"documentId": profile.ID,
		"data":       profile,
	}
	var created player.Profile
	if err := c.do(ctx, http.MethodPost, c.documentsPath(""), "", body, &created); err != nil {
		return nil, fmt.Errorf("creating profile document: %w", err)
	}
	return &created, nil
}

func (c *APIClient) GetProfile(ctx context.Context, accountID string) (*player.Profile, error) {
	var profile player.Profile
	if err := c.do(ctx, http.MethodGet, c.documentsPath(accountID), "", nil, &profile); err != nil {
		return nil, fmt.Errorf("fetching profile document %s: %w", accountID, err)
	}
	return &profile, nil
}

func (c *APIClient) UpdateProfile(ctx context.Context, profile player.Profile, expectedVersion int64) (*player.Profile, error) {
	body := map[string]any{
		"data": profile,
	}
	path := c.documentsPath(profile.ID) + "?expectedVersion=" + strconv.FormatInt(expectedVersion, 10)
	var updated player.Profile
	if err := c.do(ctx, http.MethodPatch, path, "", body, &updated); err != nil {
		return nil, fmt.Errorf("updating profile document %s: %w", profile.ID, err)
	}
	return &updated, nil
}

func (c *APIClient) FindProfileByUsername(ctx context.Context, username string) (*player.Profile, error) {
	query := url.QueryEscape(fmt.Sprintf(`equal("username", ["%s"])`, username))
	path := c.documentsPath("") + "?queries[]=" + query

	var list struct {
		Total     int              `json:"total"`
		Documents []player.Profile `json:"documents"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", nil, &list); err != nil {
		return nil, fmt.Errorf("querying profiles by username: %w", err)
	}
	if len(list.Documents) == 0 {
		return nil, fmt.Errorf("no profile with username %q: %w", username, ErrNotFound)
	}
	return &list.Documents[0], nil
}

func (c *APIClient) documentsPath(documentID string) string {
	path := fmt.Sprintf("/v1/databases/%s/collections/%s/documents", c.cfg.DatabaseID, c.cfg.CollectionID)
	if documentID != "" {
		path += "/" + documentID
	}
	return path
}

// do performs one request against the backend, fails closed when the client
// is unconfigured, and maps error statuses onto the sentinel taxonomy.
func (c *APIClient) do(ctx context.Context, method, path, sessionSecret string, body, out any) error {
	if !c.cfg.Configured() {
		return ErrNotConfigured
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	endpoint := strings.TrimSuffix(c.cfg.Endpoint, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.cfg.ProjectID)
	if c.cfg.APIKey != "" {
		req.Header.Set("X-Appwrite-Key", c.cfg.APIKey)
	}
	if sessionSecret != "" {
		req.Header.Set("X-Appwrite-Session", sessionSecret)
	}

	log.Debug("Hosted backend request", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &apiError{Code: resp.StatusCode}
		if decodeErr := json.NewDecoder(resp.Body).Decode(apiErr); decodeErr != nil {
			apiErr.Message = "unreadable error response"
		}
		log.Error("Hosted backend returned error", "status", resp.StatusCode, "path", path, "message", apiErr.Message)
		return mapStatus(resp.StatusCode, apiErr)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
