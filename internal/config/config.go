package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config holds environment-based settings
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	JWTSecret      string
	ServerAddress  string
	AppEnv         string
	LogLevel       string

	RedisAddress  string
	RedisUsername string
	RedisPassword string
	CacheTTL      time.Duration

	MQTTBrokerURL string
	MQTTClientID  string

	// Location evaluates weekday and time-of-day rules; nil keeps the
	// location of the evaluated instant.
	Location         *time.Location
	TimelineMaxSteps int
}

func (c *Config) Development() bool {
	return c.AppEnv == "development"
}

// Load reads configuration from environment variables, after loading files
// (default ".env") into the environment. Missing files are ignored and
// variables already set win.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	jwt := os.Getenv("JWT_SECRET")
	if jwt == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttl, err := durationEnv("CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	maxSteps, err := intEnv("TIMELINE_MAX_STEPS", 10000)
	if err != nil {
		return nil, err
	}

	var loc *time.Location
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("TIMEZONE: %w", err)
		}
	}

	return &Config{
		DatabaseURL:      dbURL,
		MigrationsPath:   stringEnv("MIGRATIONS_PATH", "./migrations"),
		JWTSecret:        jwt,
		ServerAddress:    stringEnv("SERVER_ADDRESS", ":8080"),
		AppEnv:           os.Getenv("APP_ENV"),
		LogLevel:         stringEnv("LOG_LEVEL", "info"),
		RedisAddress:     os.Getenv("REDIS_ADDRESS"),
		RedisUsername:    os.Getenv("REDIS_USERNAME"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		CacheTTL:         ttl,
		MQTTBrokerURL:    os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:     stringEnv("MQTT_CLIENT_ID", "medusa-scheduler"),
		Location:         loc,
		TimelineMaxSteps: maxSteps,
	}, nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
