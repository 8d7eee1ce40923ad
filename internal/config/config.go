package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the bot's runtime configuration
type Config struct {
	// DiscordToken is the bot token used to authenticate with Discord
	DiscordToken string

	// Redis connection settings
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		log.Fatal("Error: DISCORD_TOKEN environment variable not set")
	}

	redisDBStr := getEnv("REDIS_DB", "0")
	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil {
		log.Printf("Warning: Invalid REDIS_DB value %q, using 0. Error: %v", redisDBStr, err)
		redisDB = 0
	}

	return &Config{
		DiscordToken:  token,
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
	}, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
