// internal/infra/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all environment configuration for the service.
type Config struct {
	Port           string
	AllowedOrigins []string

	// Postgres (catalog, categories, orders)
	DBHost    string
	DBPort    string
	DBUser    string
	DBName    string
	DBSSLMode string
	// DBPassword is used as-is when set; otherwise DBPasswordSecret names a
	// Secret Manager resource to resolve at boot.
	DBPassword       string
	DBPasswordSecret string

	// Cart store backend: "firestore" (default) or "redis".
	CartStore     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	GCSBucket string
	GCPCreds  string

	// SendGrid order notification mail. Empty key disables mail.
	SendGridAPIKey       string
	SendGridAPIKeySecret string
	MailFrom             string
	MailTo               string

	// WhatsAppNumber is the shop number the checkout deep link targets,
	// digits only with country code (e.g. 5511999999999).
	WhatsAppNumber string
}

// Load reads the environment and returns the Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "ardulimp-loja")

	cfg := &Config{
		Port:           getenvDefault("PORT", "8080"),
		AllowedOrigins: splitCSV(getenvDefault("CORS_ALLOWED_ORIGINS", "*")),

		DBHost:           getenvDefault("DB_HOST", "localhost"),
		DBPort:           getenvDefault("DB_PORT", "5432"),
		DBUser:           getenvDefault("DB_USER", "ardulimp"),
		DBName:           getenvDefault("DB_NAME", "ardulimp"),
		DBSSLMode:        getenvDefault("DB_SSLMODE", "disable"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBPasswordSecret: os.Getenv("DB_PASSWORD_SECRET"),

		CartStore:     getenvDefault("CART_STORE", "firestore"),
		RedisAddr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getenvInt("REDIS_DB", 0),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		GCSBucket: os.Getenv("GCS_BUCKET"),
		GCPCreds:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		SendGridAPIKey:       os.Getenv("SENDGRID_API_KEY"),
		SendGridAPIKeySecret: os.Getenv("SENDGRID_API_KEY_SECRET"),
		MailFrom:             getenvDefault("MAIL_FROM", "pedidos@ardulimp.com.br"),
		MailTo:               os.Getenv("MAIL_TO"),

		WhatsAppNumber: os.Getenv("WHATSAPP_NUMBER"),
	}

	return cfg
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
