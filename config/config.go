package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadENV loads variables from .env unless GO_ENV says otherwise.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" || goEnv == "development" {
		if err := godotenv.Load(); err != nil {
			// A missing .env is fine in development; the system
			// environment still applies.
			return nil
		}
	}
	return nil
}

// EnvironmentVariable holds the process configuration.
type EnvironmentVariable struct {
	GO_ENV string
	PORT   int

	// Database
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string

	// JWT
	JWT_SECRET string
	JWT_ISSUER string

	// Redis (login lockouts)
	REDIS_URL string

	// CORS / frontend
	ALLOWED_ORIGINS string
	FRONTEND_URL    string
}

// IsProduction reports whether the process runs in production mode.
func (e *EnvironmentVariable) IsProduction() bool {
	return e.GO_ENV == "production"
}

// Get reads the environment into a config struct, applying defaults.
func Get() (*EnvironmentVariable, error) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	return &EnvironmentVariable{
		GO_ENV:          os.Getenv("GO_ENV"),
		PORT:            port,
		DB_USER_NAME:    os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:     os.Getenv("DB_PASSWORD"),
		DB_NAME:         os.Getenv("DB_NAME"),
		DB_HOST:         dbHost,
		DB_PORT:         dbPort,
		DB_SSL_MODE:     os.Getenv("DB_SSL_MODE"),
		JWT_SECRET:      os.Getenv("JWT_SECRET"),
		JWT_ISSUER:      os.Getenv("JWT_ISSUER"),
		REDIS_URL:       os.Getenv("REDIS_URL"),
		ALLOWED_ORIGINS: os.Getenv("ALLOWED_ORIGINS"),
		FRONTEND_URL:    frontendURL,
	}, nil
}
