package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Settings holds the server configuration, sourced from environment
// variables. A .env file is loaded first when present so local runs don't
// need an exported environment.
type Settings struct {
	Port         string
	AWSRegion    string
	S3Bucket     string
	AllowedCORS  string
	SuperlikeCap int
}

const defaultSuperlikeCap = 5

// Load reads the settings from the environment.
func Load() Settings {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	s := Settings{
		Port:         getEnv("PORT", "8080"),
		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:     os.Getenv("S3_BUCKET_NAME"),
		AllowedCORS:  getEnv("CORS_ALLOWED_ORIGINS", "*"),
		SuperlikeCap: getEnvInt("SUPERLIKE_DAILY_CAP", defaultSuperlikeCap),
	}
	return s
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
