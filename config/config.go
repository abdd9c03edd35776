package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	JWTSecret   string
	FrontendURL string

	// Object storage (AWS S3 or Wasabi)
	StorageProvider  string
	StorageAccessKey string
	StorageSecretKey string
	StorageRegion    string
	StorageBucket    string
	StorageEndpoint  string
	PresignTTL       time.Duration

	// Path to the agency logo stamped on rendered CVs.
	LogoPath string
}

func LoadConfig() (*Config, error) {
	// Effective locally; ignored in production when the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		StorageProvider:  getEnv("STORAGE_PROVIDER", "aws"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY_ID", ""),
		StorageSecretKey: getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
		StorageRegion:    getEnv("STORAGE_REGION", "eu-central-1"),
		StorageBucket:    getEnv("STORAGE_BUCKET", ""),
		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", ""),
		PresignTTL:       time.Duration(getEnvInt("PRESIGN_TTL_MINUTES", 15)) * time.Minute,

		LogoPath: getEnv("LOGO_PATH", "assets/logo.png"),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Protected routes will reject every request.")
	}
	if cfg.StorageAccessKey == "" || cfg.StorageSecretKey == "" || cfg.StorageBucket == "" {
		log.Println("WARNING: object storage is not fully configured. File endpoints will be unavailable.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
