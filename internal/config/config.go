package config

import "os"

// Config holds all runtime configuration, sourced from the environment
type Config struct {
	Port              string
	MongoURI          string
	MongoDBName       string
	RedisAddr         string
	RedisPassword     string
	JWTSecret         string
	OrganizerUsername string
	OrganizerPassword string
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		MongoURI:          getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:       getEnvOrDefault("MONGO_DB_NAME", "formflow"),
		RedisAddr:         getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", "dev-secret-change-me"),
		OrganizerUsername: getEnvOrDefault("ORGANIZER_USERNAME", "admin"),
		OrganizerPassword: getEnvOrDefault("ORGANIZER_PASSWORD", "admin"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
