package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings the application runs with.
type Configuration struct {
	InitMode              bool   `env:"INITMODE" envDefault:"false"`               // Seed default data on startup
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Server listen address
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // Database connection URL
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"energie_crm"`   // Database name
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Allowed origins (comma separated, * = all)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Allow credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Max requests per window (0 = disable)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Window length (seconds)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Toggle rate limiting

	// Domain behavior
	TicketSequencePerYear    bool `env:"TICKET_SEQUENCE_PER_YEAR" envDefault:"false"`   // Ticket sequence resets each year instead of running across all years
	EnforceMonotonicReadings bool `env:"ENFORCE_MONOTONIC_READINGS" envDefault:"true"`  // Reject meter readings below the current latest value
	GuardNumberCollisions    bool `env:"GUARD_NUMBER_COLLISIONS" envDefault:"false"`    // Re-draw generated customer numbers on collision
	NumberCollisionRetries   int  `env:"NUMBER_COLLISION_RETRIES" envDefault:"5"`       // Bounded retries when re-drawing numbers

	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Serve HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Path to certificate file (.crt or .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Path to private key file (.key)
}

// getEnvPath returns the env file path for the current environment.
func getEnvPath() string {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// fmt.Printf because the logger may not be initialized yet
		fmt.Printf("Cannot determine working directory: %v\n", err)
		return ""
	}

	// Walk up until a config/env directory is found
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig loads the configuration from the environment file.
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		fmt.Printf("config/env directory not found\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		fmt.Printf("Cannot load env file at %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Failed to parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
