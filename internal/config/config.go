package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	DatabaseURL  string
	TablePrefix  string
	DBAuthURL    string
	DBAuthToken  string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	JWTSecret    string
	OpenAIAPIKey string
	SwaggerHost  string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "3001"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		TablePrefix:  os.Getenv("TABLE_PREFIX"),
		DBAuthURL:    os.Getenv("DB_AUTH_URL"),
		DBAuthToken:  os.Getenv("DB_AUTH_TOKEN"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:    getEnv("JWT_SECRET", "travel-planner-secret-key"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
