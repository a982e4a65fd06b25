package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration loaded from the environment
type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	MongoURI                string
	MongoDatabase           string
	JWTSecret               string
}

// Load reads configuration from the environment, falling back to a .env file
// when present
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		MongoURI:                getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:           getEnv("MONGO_DATABASE", "buzznet"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
