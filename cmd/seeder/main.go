package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mana-gg/arena/internal/database"
	"github.com/mana-gg/arena/internal/mirror"
	"github.com/mana-gg/arena/internal/player"
	"github.com/mana-gg/arena/internal/wallet"
)

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken string) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok {
		log.Fatalf("Error: Required environment variable DB_NAME is not set.")
	}
	return dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN")
}

func main() {
	log.Info("Starting database seeder...")
	dbName, primaryURL, authToken := loadConfig()

	db, teardown, err := database.InitDB(dbName, primaryURL, authToken, "./migrations")
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := mirror.New(db)

	names := []struct {
		name     string
		username string
	}{
		{"Seeder Player A", "seed_a"},
		{"Seeder Player B", "seed_b"},
		{"Seeder Player C", "seed_c"},
		{"Seeder Player D", "seed_d"},
	}

	now := time.Now().UTC()
	for i, n := range names {
		wins := rand.Intn(40)
		losses := rand.Intn(40)
		games := wins + losses
		winRate := 0.0
		if games > 0 {
			winRate = float64(wins) / float64(games) * 100
		}
		experience := wins*10 + losses*5

		profile := &player.Profile{
			ID:       fmt.Sprintf("seed-player-%d", i+1),
			Name:     n.name,
			Email:    n.username + "@example.com",
			Username: n.username,
			GameStats: player.GameStats{
				GamesPlayed: games,
				Wins:        wins,
				Losses:      losses,
				WinRate:     winRate,
				Rank:        player.RankForExperience(experience),
				Experience:  experience,
			},
			Wallet: wallet.Wallet{
				Balance:       1000,
				TotalEarnings: 1000,
				Transactions: []wallet.Transaction{
					{
						ID:          uuid.New().String(),
						Type:        wallet.TypeCredit,
						Amount:      1000,
						Description: "Welcome bonus for joining MANA Gaming",
						Date:        now.Add(time.Duration(-i) * time.Hour),
					},
				},
			},
			Version:   1,
			UpdatedAt: now,
		}
		if err := store.Sync(profile); err != nil {
			log.Fatalf("Failed to seed player %s: %s", profile.ID, err)
		}
		log.Info("Seeded player", "id", profile.ID, "wins", wins, "losses", losses)
	}

	log.Info("Seeding complete.")
}
