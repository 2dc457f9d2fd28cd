// Package config collects all configuration of the backend from the
// environment.
package config

import (
	"os"
)

type Config struct {
	// HTTP server
	Port string

	// Database. When DBHost is set, PostgreSQL is used, otherwise the
	// SQLite file at DBPath.
	DBPath string
	DBHost string

	// AMQP event publishing. Disabled when AMQPURL is empty.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Port:   getEnv("PORT", "8080"),
		DBPath: getEnv("DB_PATH", "data/backend.db"),
		DBHost: getEnv("DB_HOST", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "pennyflow"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "finance_events"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
