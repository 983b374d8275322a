package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	FirebaseProject string
	Environment     string

	// Lead unlock and notification tuning. Defaults match product rules;
	// overridable per environment.
	LeadUnlockCost       int
	PriceDropCooldownMin int64
	OpportunityWindowHrs int64
	PriceScanIntervalMin int64

	// SiteURL is the public frontend base, used to build links in
	// notifications and emails.
	SiteURL string

	// Bootstrap SMTP settings, used until an admin saves a config.
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	SMTPFromEmail string
	SMTPFromName  string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),
		Environment:     getEnv("ENVIRONMENT", "development"),

		LeadUnlockCost:       int(getEnvAsInt64("LEAD_UNLOCK_COST", 5)),
		PriceDropCooldownMin: getEnvAsInt64("PRICE_DROP_COOLDOWN_MINUTES", 24*60),
		OpportunityWindowHrs: getEnvAsInt64("OPPORTUNITY_WINDOW_HOURS", 7*24),
		PriceScanIntervalMin: getEnvAsInt64("PRICE_SCAN_INTERVAL_MINUTES", 60),

		SiteURL: getEnv("SITE_URL", "https://agromarket.com.br"),

		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      int(getEnvAsInt64("SMTP_PORT", 587)),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@agromarket.com.br"),
		SMTPFromName:  getEnv("SMTP_FROM_NAME", "AgroMarket"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
