package cmd

import "time"

// Config carries everything the process needs from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr    string
	RedisChannel string

	CatalogBaseURL string

	GuestCartTTL          time.Duration
	AttentionCutoff       time.Duration
	CartPurgeSchedule     string
	AttentionScanSchedule string
}
