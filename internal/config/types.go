package config

import "github.com/mana-gg/arena/internal/admin"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	Appwrite      AppwriteConfig
	Slack         SlackConfig
	ProjectID     string
	Operators     []admin.Credential
	WelcomeBonus  int
}

// TursoConfig selects the remote replica for the read model. Empty values
// keep everything on the local SQLite file.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// AppwriteConfig points the backend client at the hosted project. All fields
// are optional: missing values put the client into degraded mode instead of
// failing startup.
type AppwriteConfig struct {
	Endpoint     string
	ProjectID    string
	APIKey       string
	DatabaseID   string
	CollectionID string
	BucketID     string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}
