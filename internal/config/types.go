package config

// Config holds all configuration for the application.
type Config struct {
	DBName                 string
	MigrationsDir          string
	Port                   string
	DuplicateWindowMinutes int
	Slack                  SlackConfig
	Turso                  TursoConfig
	ProjectID              string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
	// AllowedChannelID restricts match recording to one channel when set.
	AllowedChannelID string
	// AdminUserIDs are the Slack user ids allowed to run backfill/statset.
	AdminUserIDs []string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
