package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	// CalibrationPath optionally names a YAML file overriding the
	// compiled-in calibration tuning.
	CalibrationPath string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
