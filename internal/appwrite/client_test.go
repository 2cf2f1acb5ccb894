package appwrite_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mana-gg/arena/internal/appwrite"
	"github.com/mana-gg/arena/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) appwrite.Config {
	return appwrite.Config{
		Endpoint:     endpoint,
		ProjectID:    "proj",
		APIKey:       "key",
		DatabaseID:   "db",
		CollectionID: "users",
	}
}

func TestUnconfiguredClientFailsClosed(t *testing.T) {
	client := appwrite.NewClient(appwrite.Config{})

	_, err := client.CreateSession(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, appwrite.ErrNotConfigured)

	_, err = client.GetProfile(context.Background(), "acc-1")
	assert.ErrorIs(t, err, appwrite.ErrNotConfigured)
}

func TestCreateAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/account", r.URL.Path)
		assert.Equal(t, "proj", r.Header.Get("X-Appwrite-Project"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"$id":   "acc-1",
			"email": "ada@example.com",
			"name":  "Ada",
		})
	}))
	defer srv.Close()

	client := appwrite.NewClient(testConfig(srv.URL))
	account, err := client.CreateAccount(context.Background(), "ada@example.com", "secret123", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", account.ID)
	assert.Equal(t, "Ada", account.Name)
}

func TestCreateSessionBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Invalid credentials",
			"code":    401,
			"type":    "user_invalid_credentials",
		})
	}))
	defer srv.Close()

	client := appwrite.NewClient(testConfig(srv.URL))
	_, err := client.CreateSession(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, appwrite.ErrUnauthorized)
}

func TestGetProfileNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Document not found",
			"code":    404,
			"type":    "document_not_found",
		})
	}))
	defer srv.Close()

	client := appwrite.NewClient(testConfig(srv.URL))
	_, err := client.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, appwrite.ErrNotFound)
}

func TestUpdateProfileVersionConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "3", r.URL.Query().Get("expectedVersion"))
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Document was modified",
			"code":    409,
			"type":    "document_conflict",
		})
	}))
	defer srv.Close()

	client := appwrite.NewClient(testConfig(srv.URL))
	_, err := client.UpdateProfile(context.Background(), player.Profile{ID: "acc-1"}, 3)
	assert.ErrorIs(t, err, appwrite.ErrVersionConflict)
}

func TestFindProfileByUsername(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "queries")
		json.NewEncoder(w).Encode(map[string]any{
			"total": 1,
			"documents": []map[string]any{
				{"id": "acc-1", "username": "ada", "name": "Ada"},
			},
		})
	}))
	defer srv.Close()

	client := appwrite.NewClient(testConfig(srv.URL))
	profile, err := client.FindProfileByUsername(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", profile.ID)
	assert.Equal(t, "ada", profile.Username)
}

func TestFindProfileByUsernameEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"total": 0, "documents": []any{}})
	}))
	defer srv.Close()

	client := appwrite.NewClient(testConfig(srv.URL))
	_, err := client.FindProfileByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, appwrite.ErrNotFound)
}
