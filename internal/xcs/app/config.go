package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Issuer         string   // Issuer claim for session tokens (default: xcs)
	Audience       []string // Audience claim for session tokens (default: xcs)
	BootstrapToken string   // Optional: token required to perform bootstrap
	NumKeys        int      // Optional: number of signing keys to generate (default: 3, min: 1, max: 10)
	SessionTTL     time.Duration

	StoreDriver   string // sqlite or mongo (default: sqlite)
	DatabaseFile  string // SQLite database file (default: ./xcs.db)
	MongoURI      string // MongoDB connection string, required for the mongo driver
	MongoDatabase string // MongoDB database name (default: xcs)
	PepperFile    string // File containing the pepper for password hashing (default: ./pepper)

	SMTPHost     string // Optional: mail is only logged when unset
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailFromName string

	InviteCredits  int           // Platform invitations granted to new accounts (default: 1)
	WebhookTimeout time.Duration // Access point webhook timeout (default: 5s)
	LinkTimeout    time.Duration // OAuth code exchange timeout (default: 10s)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:         getEnvOrDefault("XCS_ISSUER", "xcs"),
		Audience:       splitList(getEnvOrDefault("XCS_AUDIENCE", "xcs")),
		BootstrapToken: os.Getenv("XCS_BOOTSTRAP_TOKEN"), // Optional: if set, required to perform bootstrap
		NumKeys:        getEnvIntOrDefault("XCS_NUM_KEYS", 0),
		SessionTTL:     getEnvDurationOrDefault("XCS_SESSION_TTL", time.Hour),

		StoreDriver:   strings.ToLower(getEnvOrDefault("XCS_STORE_DRIVER", "sqlite")),
		DatabaseFile:  getEnvOrDefault("XCS_DATABASE_FILE", "xcs.db"),
		MongoURI:      os.Getenv("XCS_MONGO_URI"),
		MongoDatabase: getEnvOrDefault("XCS_MONGO_DATABASE", "xcs"),
		PepperFile:    getEnvOrDefault("XCS_PEPPER_FILE", "pepper"),

		SMTPHost:     os.Getenv("XCS_SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("XCS_SMTP_PORT", 587),
		SMTPUsername: os.Getenv("XCS_SMTP_USERNAME"),
		SMTPPassword: os.Getenv("XCS_SMTP_PASSWORD"),
		MailFrom:     getEnvOrDefault("XCS_MAIL_FROM", "no-reply@xcs.local"),
		MailFromName: getEnvOrDefault("XCS_MAIL_FROM_NAME", "XCS"),

		InviteCredits:  getEnvIntOrDefault("XCS_INVITE_CREDITS", 1),
		WebhookTimeout: getEnvDurationOrDefault("XCS_WEBHOOK_TIMEOUT", 5*time.Second),
		LinkTimeout:    getEnvDurationOrDefault("XCS_LINK_TIMEOUT", 10*time.Second),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// splitList parses a comma separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
