package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	ListenAddr  string
	DatabaseURL string
	PoolMin     int
	PoolMax     int
	LogLevel    string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("env %s is not an integer: %v", k, err)
	}
	return n
}

func must(v string, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}

func Load() *Config {
	return &Config{
		ListenAddr:  ":" + getenv("SERVER_PORT", "50051"),
		DatabaseURL: must(os.Getenv("DATABASE_URL"), "DATABASE_URL"),
		PoolMin:     getenvInt("POOL_MIN_CONNS", 1),
		PoolMax:     getenvInt("POOL_MAX_CONNS", 10),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
}
