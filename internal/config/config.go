package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	DB struct {
		DSN string
	}
	Kafka struct {
		Broker  string
		Topic   string
		GroupID string
	}
	Email struct {
		SMTPServer    string
		SMTPPort      int
		Username      string
		Password      string
		FromName      string
		RatePerSecond int
	}
	API struct {
		Port     string
		BasePath string
	}
	Scheduler struct {
		ScanAt          string        // wall-clock HH:MM for the expiration scan
		CleanupAt       string        // wall-clock HH:MM for the retention purge
		ProcessInterval time.Duration // queue processor tick
		ShutdownGrace   time.Duration
	}
	Logging struct {
		Dir   string
		Level string
	}
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	cfg.DB.DSN = os.Getenv("DB_DSN")

	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")
	cfg.Kafka.GroupID = os.Getenv("KAFKA_GROUP_ID")

	cfg.Email.SMTPServer = os.Getenv("EMAIL_SMTP_SERVER")
	if p, err := strconv.Atoi(os.Getenv("EMAIL_SMTP_PORT")); err == nil {
		cfg.Email.SMTPPort = p
	}
	cfg.Email.Username = os.Getenv("EMAIL_USERNAME")
	cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	cfg.Email.FromName = os.Getenv("EMAIL_FROM_NAME")
	if r, err := strconv.Atoi(os.Getenv("EMAIL_RATE_PER_SECOND")); err == nil {
		cfg.Email.RatePerSecond = r
	}

	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	cfg.Scheduler.ScanAt = os.Getenv("SCAN_AT")
	cfg.Scheduler.CleanupAt = os.Getenv("CLEANUP_AT")
	if d, err := time.ParseDuration(os.Getenv("PROCESS_INTERVAL")); err == nil {
		cfg.Scheduler.ProcessInterval = d
	}
	if d, err := time.ParseDuration(os.Getenv("SHUTDOWN_GRACE")); err == nil {
		cfg.Scheduler.ShutdownGrace = d
	}

	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	// Validate required settings
	missing := []string{}
	if cfg.DB.DSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if cfg.Kafka.Broker == "" {
		missing = append(missing, "KAFKA_BROKER")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configurations: %v", missing)
	}

	// Apply defaults
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "contract_events"
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "contract-service"
	}
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v0"
	}
	if cfg.Scheduler.ScanAt == "" {
		cfg.Scheduler.ScanAt = "09:00"
	}
	if cfg.Scheduler.CleanupAt == "" {
		cfg.Scheduler.CleanupAt = "03:00"
	}
	if cfg.Scheduler.ProcessInterval == 0 {
		cfg.Scheduler.ProcessInterval = 5 * time.Minute
	}
	if cfg.Scheduler.ShutdownGrace == 0 {
		cfg.Scheduler.ShutdownGrace = 10 * time.Second
	}
	if cfg.Email.RatePerSecond == 0 {
		cfg.Email.RatePerSecond = 5
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}
