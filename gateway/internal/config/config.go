package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr    string
	DBServiceURL  string
	LogServiceURL string
	JWTSecret     []byte
	TokenTTL      time.Duration
	LogLevel      string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(v string, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}

func Load() *Config {
	ttlSeconds, err := strconv.Atoi(getenv("TOKEN_TTL_SECONDS", "3600"))
	if err != nil {
		log.Fatalf("env TOKEN_TTL_SECONDS is not an integer: %v", err)
	}

	return &Config{
		ListenAddr:    getenv("GATEWAY_ADDR", ":8080"),
		DBServiceURL:  must(os.Getenv("DB_SERVICE_URL"), "DB_SERVICE_URL"),
		LogServiceURL: must(os.Getenv("LOG_SERVICE_URL"), "LOG_SERVICE_URL"),
		JWTSecret:     []byte(must(os.Getenv("JWT_SECRET"), "JWT_SECRET")),
		TokenTTL:      time.Duration(ttlSeconds) * time.Second,
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}
}
