package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost string
	RedisPort string

	SessionSecret string
	GinMode       string

	// VAPID key pair for browser push. Delivery falls back to logging
	// when either key is empty.
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubscriber string

	// AMQPURL points at the RabbitMQ broker carrying delivery tasks.
	// Empty means deliveries run inline in the dispatcher process.
	AMQPURL string

	// DispatchCron is a cron expression for the in-process notification
	// dispatcher (e.g. "* * * * *"). Empty disables the scheduler; the
	// calctl dispatch-notifications command covers external scheduling.
	DispatchCron string
}

func Load() *Config {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "calendar"),
		DBPassword:      getEnv("DB_PASSWORD", "calendar"),
		DBName:          getEnv("DB_NAME", "household_calendar"),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		SessionSecret:   getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		VAPIDPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
		VAPIDSubscriber: getEnv("VAPID_SUBSCRIBER", "mailto:admin@localhost"),
		AMQPURL:         getEnv("AMQP_URL", ""),
		DispatchCron:    getEnv("DISPATCH_CRON", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
