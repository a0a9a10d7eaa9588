package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mhenders/baize/internal/calibration"
)

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

	// Optional env var with a default.
	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:          getEnv("DB_NAME"),
		MigrationsDir:   getEnvOr("MIGRATIONS_DIR", "./migrations"),
		Port:            getEnvOr("PORT", "8090"),
		CalibrationPath: os.Getenv("CALIBRATION_CONFIG"),
		// Turso is optional: unset means a purely local database.
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
	}
	return cfg
}

// LoadCalibration returns the calibration tuning: the compiled-in defaults,
// overlaid with whatever keys the YAML file at path sets. An empty path means
// defaults only.
func LoadCalibration(path string) (calibration.Config, error) {
	cfg := calibration.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading calibration config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing calibration config %s: %w", path, err)
	}
	return cfg, nil
}
