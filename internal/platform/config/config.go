package config

import (
	"os"
	"strings"
	"time"

	platformstrings "wastebot/pkg/platform/strings"
)

// Server captures configuration for the API server process.
type Server struct {
	Addr          string
	JWTSigningKey string
	TokenTTL      time.Duration
	PostgresURL   string
	Redis         RedisConfig
	KafkaBrokers  []string
	AuditTopic    string
}

// RedisConfig controls the optional stats cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Gateway captures configuration for the edge gateway process.
type Gateway struct {
	Addr string
	// Upstreams maps a logical service name to one or more base URLs,
	// comma-separated in the environment.
	Upstreams map[string][]string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("WASTEBOT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	tokenTTL := time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			tokenTTL = d
		}
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		TokenTTL:      tokenTTL,
		PostgresURL:   os.Getenv("POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		AuditTopic:   envOr("AUDIT_TOPIC", "wastebot.audit"),
	}
}

// GatewayFromEnv builds a Gateway config. Each upstream list is comma
// separated; defaults point at a local API server for development.
func GatewayFromEnv() Gateway {
	addr := os.Getenv("GATEWAY_ADDR")
	if addr == "" {
		addr = ":8000"
	}

	def := envOr("API_UPSTREAMS", "http://localhost:8080")
	return Gateway{
		Addr: addr,
		Upstreams: map[string][]string{
			"admin-service": splitList(envOr("ADMIN_UPSTREAMS", def)),
			"robot-service": splitList(envOr("ROBOT_UPSTREAMS", def)),
			"waste-service": splitList(envOr("WASTE_UPSTREAMS", def)),
		},
	}
}

// StatsCacheTTL bounds staleness of the cached waste stats aggregate.
var StatsCacheTTL = 30 * time.Second

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return platformstrings.DedupeAndTrim(strings.Split(raw, ","))
}
