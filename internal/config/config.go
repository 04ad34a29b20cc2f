package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxFileSize  int64

	// Logging configuration
	LogFormat string
	LogLevel  string

	// Extraction configuration
	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file. Using environment variables.")
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	// Create and populate config
	config := &Config{
		// Server configuration
		Port:         getEnvInt("PORT", 8080),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 120)) * time.Second,
		MaxFileSize:  int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 10)) * 1024 * 1024,

		// Logging configuration
		LogFormat: getEnvString("LOG_FORMAT", "pretty"),
		LogLevel:  getEnvString("LOG_LEVEL", "info"),

		// Extraction configuration
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnvString("GEMINI_MODEL", "gemini-3-flash-preview"),
		GeminiTimeout: time.Duration(getEnvInt("GEMINI_TIMEOUT", 60)) * time.Second,
	}

	// Validate critical configuration
	validateConfig(config)

	return config, nil
}

// validateConfig checks if critical configuration values are set and logs
// warnings if they're missing
func validateConfig(config *Config) {
	if config.GeminiAPIKey == "" {
		log.Println("Warning: No Gemini API key provided. Extraction requests will fail.")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean from an environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
