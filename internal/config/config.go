package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DatabaseURL string
	JWTSecret   string

	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		Sender   string
	}
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	cfg := &Config{
		ServerPort:  serverPort,
		DatabaseURL: databaseURL,
		JWTSecret:   jwtSecret,
	}

	// SMTP is optional: with no host the mailer runs in log-only mode.
	cfg.SMTP.Host = os.Getenv("SMTP_HOST")
	if cfg.SMTP.Host != "" {
		port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if err != nil {
			return nil, fmt.Errorf("SMTP_PORT must be a number when SMTP_HOST is set")
		}
		cfg.SMTP.Port = port
		cfg.SMTP.Username = os.Getenv("SMTP_USER")
		cfg.SMTP.Password = os.Getenv("SMTP_PASS")
		cfg.SMTP.Sender = os.Getenv("SENDER_EMAIL")
		if cfg.SMTP.Sender == "" {
			return nil, fmt.Errorf("SENDER_EMAIL must be set when SMTP_HOST is set")
		}
	}

	return cfg, nil
}
