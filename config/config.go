package config

import "os"

// Config holds the environment-driven settings.
type Config struct {
	Port       string
	DBPath     string
	JWTSecret  string
	CORSOrigin string
}

// Load reads configuration from the environment, falling back to
// development defaults.
func Load() Config {
	return Config{
		Port:       getenv("PORT", "5000"),
		DBPath:     getenv("DB_PATH", "pocketbank.db"),
		JWTSecret:  getenv("JWT_SECRET", "dev-secret-change-me"),
		CORSOrigin: getenv("CORS_ORIGIN", "http://localhost:5173"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
