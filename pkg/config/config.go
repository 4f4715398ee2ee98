package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	PostgresConnStr         string
	JWTSecret               string
	FirebaseCredentialsPath string
	AWSRegion               string
	SESFromAddress          string
}

// Load reads .env (if present) and environment variables. Every consumer
// gets its settings from the returned Config; nothing re-reads the
// environment after this.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		AWSRegion:               getEnv("AWS_REGION", "us-east-1"),
		SESFromAddress:          getEnv("SES_EMAIL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
