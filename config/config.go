package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config returns the value for key, loading .env once if present.
func Config(key string) string {
	godotenv.Load(".env")
	return os.Getenv(key)
}
