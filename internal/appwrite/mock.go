package appwrite

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mana-gg/arena/internal/player"
)

// MockClient is an in-memory implementation of the Client interface for
// testing. It behaves like the hosted backend: accounts, sessions and one
// profile document per account, with the conditional-update check enforced.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	accounts  map[string]*mockAccount // keyed by email
	sessions  map[string]string       // session secret -> account id
	profiles  map[string]player.Profile
	nextError error

	// Spies for overriding behaviour per call.
	CreateProfileFunc func(profile player.Profile) (*player.Profile, error)
	GetProfileFunc    func(accountID string) (*player.Profile, error)

	// Call records.
	UpdateProfileCalls []player.Profile
}

type mockAccount struct {
	account  Account
	password string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{
		accounts: make(map[string]*mockAccount),
		sessions: make(map[string]string),
		profiles: make(map[string]player.Profile),
	}
}

// FailNext makes the next call return err instead of its normal result.
func (m *MockClient) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextError = err
}

// SeedProfile installs a profile document directly, bypassing registration.
func (m *MockClient) SeedProfile(profile player.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.ID] = profile
}

// StoredProfile returns the current document for inspection.
func (m *MockClient) StoredProfile(accountID string) (player.Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[accountID]
	return p, ok
}

func (m *MockClient) takeError() error {
	err := m.nextError
	m.nextError = nil
	return err
}

func (m *MockClient) CreateAccount(_ context.Context, email, password, name string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeError(); err != nil {
		return nil, err
	}
	if _, exists := m.accounts[email]; exists {
		return nil, fmt.Errorf("account with email %s already exists", email)
	}
	account := Account{ID: uuid.NewString(), Email: email, Name: name}
	m.accounts[email] = &mockAccount{account: account, password: password}
	return &account, nil
}

func (m *MockClient) CreateSession(_ context.Context, email, password string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeError(); err != nil {
		return nil, err
	}
	acc, ok := m.accounts[email]
	if !ok || acc.password != password {
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}
	secret := uuid.NewString()
	m.sessions[secret] = acc.account.ID
	return &Session{ID: uuid.NewString(), UserID: acc.account.ID, Secret: secret}, nil
}

func (m *MockClient) CurrentAccount(_ context.Context, sessionSecret string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeError(); err != nil {
		return nil, err
	}
	accountID, ok := m.sessions[sessionSecret]
	if !ok {
		return nil, fmt.Errorf("no active session: %w", ErrUnauthorized)
	}
	for _, acc := range m.accounts {
		if acc.account.ID == accountID {
			account := acc.account
			return &account, nil
		}
	}
	return nil, fmt.Errorf("account vanished: %w", ErrNotFound)
}

func (m *MockClient) DeleteSession(_ context.Context, sessionSecret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeError(); err != nil {
		return err
	}
	delete(m.sessions, sessionSecret)
	return nil
}

func (m *MockClient) CreateProfile(_ context.Context, profile player.Profile) (*player.Profile, error) {
	m.mu.Lock()
	if err := m.takeError(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	// Spies run outside the lock so they may call back into the mock.
	if fn := m.CreateProfileFunc; fn != nil {
		m.mu.Unlock()
		return fn(profile)
	}
	m.profiles[profile.ID] = profile
	stored := profile
	m.mu.Unlock()
	return &stored, nil
}

func (m *MockClient) GetProfile(_ context.Context, accountID string) (*player.Profile, error) {
	m.mu.Lock()
	if err := m.takeError(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if fn := m.GetProfileFunc; fn != nil {
		m.mu.Unlock()
		return fn(accountID)
	}
	profile, ok := m.profiles[accountID]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", accountID, ErrNotFound)
	}
	return &profile, nil
}

func (m *MockClient) UpdateProfile(_ context.Context, profile player.Profile, expectedVersion int64) (*player.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeError(); err != nil {
		return nil, err
	}
	m.UpdateProfileCalls = append(m.UpdateProfileCalls, profile)

	stored, ok := m.profiles[profile.ID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", profile.ID, ErrNotFound)
	}
	if stored.Version != expectedVersion {
		return nil, fmt.Errorf("expected version %d, found %d: %w", expectedVersion, stored.Version, ErrVersionConflict)
	}
	profile.Version = expectedVersion + 1
	m.profiles[profile.ID] = profile
	updated := profile
	return &updated, nil
}

func (m *MockClient) FindProfileByUsername(_ context.Context, username string) (*player.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeError(); err != nil {
		return nil, err
	}
	for _, p := range m.profiles {
		if p.Username == username {
			profile := p
			return &profile, nil
		}
	}
	return nil, fmt.Errorf("username %q: %w", username, ErrNotFound)
}

var _ Client = (*MockClient)(nil)
