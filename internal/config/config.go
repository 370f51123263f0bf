package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// APIBaseURL is the backend REST API root. The default matches the
	// reverse-proxy layout where the backend is mounted under /api.
	APIBaseURL  string
	HTTPTimeout time.Duration

	// TokenFile is where the encrypted credential pair lives when the
	// file-backed store is used.
	TokenFile string

	// RedisAddress switches the token store to Redis when non-empty
	// (shared-terminal deployments).
	RedisAddress  string
	RedisPassword string

	// RabbitMQURL enables session event auditing when non-empty.
	RabbitMQURL       string
	SessionEventQueue string

	GatewayAddr        string
	CORSAllowedOrigins []string
	DeviceID           string
	NoticeTTL          time.Duration
}

func Load() *Config {
	return &Config{
		APIBaseURL:         getenv("MESS_API_URL", "/api"),
		HTTPTimeout:        getenvDuration("HTTP_TIMEOUT", 15*time.Second),
		TokenFile:          getenv("MESS_TOKEN_FILE", defaultTokenFile()),
		RedisAddress:       os.Getenv("REDIS_ADDRESS"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RabbitMQURL:        os.Getenv("RABBITMQ_URL"),
		SessionEventQueue:  getenv("SESSION_EVENT_QUEUE", "session-events"),
		GatewayAddr:        getenv("GATEWAY_ADDR", ":8080"),
		CORSAllowedOrigins: getenvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		DeviceID:           getenv("MESS_DEVICE_ID", hostnameDeviceID()),
		NoticeTTL:          getenvDuration("NOTICE_TTL", 5*time.Second),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mess-client/tokens"
	}
	return filepath.Join(home, ".mess-client", "tokens")
}

func hostnameDeviceID() string {
	host, err := os.Hostname()
	if err != nil {
		return "unknown-device"
	}
	return host
}
