package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file
func LoadEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

// GetEnv retrieves environment variables with a fallback
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// ShippingMockMode reports whether the shipping provider is the mock variant.
// The selection happens once at startup, not per request.
func ShippingMockMode() bool {
	return GetEnv("SHIPROCKET_MODE", "live") == "mock"
}
