package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mana-gg/arena/internal/admin"
)

// DefaultWelcomeBonus is the credits a fresh wallet is seeded with.
const DefaultWelcomeBonus = 1000

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	// Optional env vars just come back empty; the Appwrite client treats an
	// incomplete configuration as degraded mode, not a startup failure.
	optEnv := func(key string) string {
		value, ok := os.LookupEnv(key)
		if !ok {
			log.Warn("Optional environment variable not set", "key", key)
		}
		return value
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: "./migrations",
		Port:          getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: optEnv("TURSO_PRIMARY_URL"),
			AuthToken:  optEnv("TURSO_AUTH_TOKEN"),
		},
		Appwrite: AppwriteConfig{
			Endpoint:     optEnv("APPWRITE_ENDPOINT"),
			ProjectID:    optEnv("APPWRITE_PROJECT_ID"),
			APIKey:       optEnv("APPWRITE_API_KEY"),
			DatabaseID:   optEnv("APPWRITE_DATABASE_ID"),
			CollectionID: optEnv("APPWRITE_USERS_COLLECTION_ID"),
			BucketID:     optEnv("APPWRITE_STORAGE_BUCKET_ID"),
		},
		Slack: SlackConfig{
			Token:     optEnv("SLACK_BOT_TOKEN"),
			ChannelID: optEnv("SLACK_CHANNEL_ID"),
		},
		ProjectID:    optEnv("GCP_PROJECT"),
		Operators:    parseOperators(optEnv("OPERATOR_CREDENTIALS")),
		WelcomeBonus: welcomeBonus(optEnv("WELCOME_BONUS")),
	}
	return cfg
}

// parseOperators decodes the operator allowlist from its env encoding:
// "user:pass:role,user:pass:role". Malformed entries are skipped with a
// warning so one typo cannot lock out every operator.
func parseOperators(raw string) []admin.Credential {
	if raw == "" {
		return nil
	}
	var creds []admin.Credential
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			log.Warn("Skipping malformed operator credential entry", "entry", entry)
			continue
		}
		creds = append(creds, admin.Credential{
			Username: parts[0],
			Password: parts[1],
			Role:     admin.Role(parts[2]),
		})
	}
	return creds
}

func welcomeBonus(raw string) int {
	if raw == "" {
		return DefaultWelcomeBonus
	}
	bonus, err := strconv.Atoi(raw)
	if err != nil || bonus < 0 {
		log.Warn("Invalid WELCOME_BONUS value, using default", "value", raw)
		return DefaultWelcomeBonus
	}
	return bonus
}
