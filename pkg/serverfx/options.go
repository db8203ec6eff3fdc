package serverfx

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Options allow per-deployment env keys/defaults without code duplication.
type Options struct {
	Service         string // for logs only
	CatalogEnv      string // e.g. "ACTIVITIES_CATALOG"; embedded catalog when unset
	ListenAddrEnv   string // e.g. "SERVER_LISTEN_ADDRESS"
	DefaultListen   string // e.g. ":8000"
	TLSCertEnv      string // e.g. "SSL_SERVER_CERTIFICATE"
	TLSKeyEnv       string // e.g. "SSL_SERVER_KEY"
	StaticDirEnv    string // e.g. "STATIC_DIR"
	KafkaBrokersEnv string // e.g. "KAFKA_BROKERS"; events disabled when empty
	KafkaTopicEnv   string // e.g. "KAFKA_TOPIC"
	TimeoutEnv      string // e.g. "REQUEST_TIMEOUT_MS"
	DefaultTimeout  time.Duration
	LogDirEnv       string // e.g. "LOG_DIR"
}

// DefaultOptions returns the env keys used by cmd/activities.
func DefaultOptions() Options {
	return Options{
		Service:         "activities",
		CatalogEnv:      "ACTIVITIES_CATALOG",
		ListenAddrEnv:   "SERVER_LISTEN_ADDRESS",
		DefaultListen:   ":8000",
		TLSCertEnv:      "SSL_SERVER_CERTIFICATE",
		TLSKeyEnv:       "SSL_SERVER_KEY",
		StaticDirEnv:    "STATIC_DIR",
		KafkaBrokersEnv: "KAFKA_BROKERS",
		KafkaTopicEnv:   "KAFKA_TOPIC",
		TimeoutEnv:      "REQUEST_TIMEOUT_MS",
		DefaultTimeout:  10 * time.Second,
		LogDirEnv:       "LOG_DIR",
	}
}

// ---- helpers ----

func envOr(k, def string) string {
	if k == "" {
		return def
	}
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envMillis(k string, def time.Duration) time.Duration {
	v := envOr(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return time.Duration(n) * time.Millisecond
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
