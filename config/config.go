package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port          string
	DBPath        string
	SessionTTL    time.Duration
	AdminEmail    string
	AdminPassword string
	CookieSecure  bool
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	ttlHours, err := strconv.Atoi(get("SESSION_TTL_HOURS", "72"))
	if err != nil || ttlHours <= 0 {
		ttlHours = 72
	}
	cfg := AppConfig{
		Port:          get("PORT", "8080"),
		DBPath:        get("DB_PATH", "cms.db"),
		SessionTTL:    time.Duration(ttlHours) * time.Hour,
		AdminEmail:    get("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: get("ADMIN_PASSWORD", ""),
		CookieSecure:  get("COOKIE_SECURE", "false") == "true",
	}
	log.Printf("[cfg] port=%s db=%s session_ttl=%s", cfg.Port, cfg.DBPath, cfg.SessionTTL)
	return cfg
}
