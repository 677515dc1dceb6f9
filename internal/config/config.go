// Package config reads the HTTP server settings from the environment.
package config

import (
	"os"
	"strings"

	"github.com/julianstephens/fitcoach/internal/constants"
)

type Config struct {
	Port           string
	Store          string   // store location; see cli.OpenStore for the accepted forms
	GeminiAPIKey   string   // empty means fall back to the OS keyring
	GeminiModel    string
	AllowedOrigins []string // CORS origins; "*" when unset
	Environment    string   // ENV: production, development, etc.
}

// Load reads the process environment. Call godotenv.Load first to pick up a
// .env file.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", constants.DefaultServerPort),
		Store:          getEnv("FITCOACH_STORE", constants.DefaultServerStore),
		GeminiAPIKey:   strings.TrimSpace(getEnv("GEMINI_API_KEY", getEnv("API_KEY", ""))),
		GeminiModel:    getEnv("GEMINI_MODEL", constants.DefaultGeminiModel),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		Environment:    strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
