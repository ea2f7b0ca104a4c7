package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	SwaggerHost string

	// Cache TTL tiers.
	CacheTTLShort    time.Duration
	CacheTTLMedium   time.Duration
	CacheTTLLong     time.Duration
	CacheTTLVeryLong time.Duration
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/trustmart?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   getEnv("JWT_SECRET", "supersecretkey"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),

		CacheTTLShort:    getEnvSeconds("CACHE_TTL_SHORT", 60),
		CacheTTLMedium:   getEnvSeconds("CACHE_TTL_MEDIUM", 300),
		CacheTTLLong:     getEnvSeconds("CACHE_TTL_LONG", 1800),
		CacheTTLVeryLong: getEnvSeconds("CACHE_TTL_VERY_LONG", 3600),
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

func getEnvSeconds(key string, def int) time.Duration {
	return time.Duration(getEnvInt(key, def)) * time.Second
}
