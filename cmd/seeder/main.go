package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/yoonsp/scrimbot/internal/database"
	"github.com/yoonsp/scrimbot/internal/league"
)

const (
	numPlayers = 15
	numMatches = 200
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"DB_NAME"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], "", "", "./migrations")
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := league.New(db)

	players := make([]league.Player, 0, numPlayers)
	for i := 0; i < numPlayers; i++ {
		players = append(players, league.Player{
			ID:       fmt.Sprintf("U%07d", i+1),
			Nickname: fmt.Sprintf("Seeder Player %d", i+1),
		})
	}
	log.Info("Seeding randomized matches...", "players", numPlayers, "matches", numMatches)
	startTime := time.Now()

	// Matches are recorded through the store so the monthly aggregates stay
	// consistent with what real slash commands would produce.
	now := time.Now().UTC()
	for i := 0; i < numMatches; i++ {
		rand.Shuffle(len(players), func(a, b int) {
			players[a], players[b] = players[b], players[a]
		})
		winner := league.TeamA
		if rand.Intn(2) == 1 {
			winner = league.TeamB
		}
		month := league.CurrentMonth(now.AddDate(0, -rand.Intn(6), 0))
		score := fmt.Sprintf("13-%d", rand.Intn(12))

		if _, err := store.CreateMatch(winner, month, score, players[:5], players[5:10]); err != nil {
			log.Fatalf("Failed to record seeded match: %s", err)
		}

		if (i+1)%50 == 0 || (i+1) == numMatches {
			log.Info("Recorded batch", "completed", i+1, "total", numMatches)
		}
	}

	duration := time.Since(startTime)
	log.Info("Successfully recorded all seeded matches.", "duration", duration)
}
