package main

import (
	"os"

	"github.com/joho/godotenv"
)

// Config is the environment-backed server configuration. Mailgun
// credentials may legitimately be absent; the contact relay then
// rejects every submission.
type Config struct {
	Addr          string
	DiagAddr      string
	DatabasePath  string
	MailgunAPIKey string
	MailgunDomain string
	ContactInbox  string
	CORSOrigin    string
	PublicDir     string
	Seed          bool
}

func loadConfig() Config {
	_ = godotenv.Load() // load .env if present (ok if missing in prod)

	return Config{
		Addr:          getEnv(ServiceName+"_ADDR", ":3333"),
		DiagAddr:      getEnv(ServiceName+"_DIAG_ADDR", ":9999"),
		DatabasePath:  getEnv("DATABASE_PATH", "data/skriptnetworks.db"),
		MailgunAPIKey: os.Getenv("MAILGUN_API_KEY"),
		MailgunDomain: os.Getenv("MAILGUN_DOMAIN"),
		ContactInbox:  getEnv("CONTACT_INBOX", "info@skriptnetworks.com"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:5173"),
		PublicDir:     getEnv("PUBLIC_DIR", "public"),
		Seed:          getEnvBool(ServiceName+"_SEED", false),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "yes":
		return true
	case "0", "false", "FALSE", "no":
		return false
	}

	return def
}
