package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const defaultDuplicateWindowMinutes = 15

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

	windowMinutes := defaultDuplicateWindowMinutes
	if raw, ok := os.LookupEnv("DUPLICATE_WINDOW_MINUTES"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Fatalf("Error: DUPLICATE_WINDOW_MINUTES must be a positive integer, got %q", raw)
		}
		windowMinutes = parsed
	}

	var adminIDs []string
	if raw := os.Getenv("SLACK_ADMIN_USER_IDS"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				adminIDs = append(adminIDs, id)
			}
		}
	}

	cfg := Config{
		DBName:                 getEnv("DB_NAME"),
		MigrationsDir:          "./migrations",
		Port:                   getEnv("PORT"),
		DuplicateWindowMinutes: windowMinutes,
		Slack: SlackConfig{
			Token:            getEnv("SLACK_BOT_TOKEN"),
			ChannelID:        getEnv("SLACK_CHANNEL_ID"),
			SigningSecret:    getEnv("SLACK_SIGNING_SECRET"),
			AllowedChannelID: os.Getenv("ALLOWED_CHANNEL_ID"),
			AdminUserIDs:     adminIDs,
		},
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		ProjectID: getEnv("GCP_PROJECT"),
	}
	return cfg
}

// IsAdmin reports whether the given Slack user may run administrator-gated
// commands.
func (c SlackConfig) IsAdmin(userID string) bool {
	for _, id := range c.AdminUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
