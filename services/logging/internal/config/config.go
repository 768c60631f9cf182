package config

import (
	"log"
	"os"
	"strings"
)

type Config struct {
	ListenAddr   string
	KafkaBrokers []string
	KafkaTopic   string
	ESURL        string
	ESUser       string
	ESPassword   string
	ESLogIndex   string
	LogLevel     string
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
	return &Config{
		ListenAddr:   ":" + getenv("SERVER_PORT", "50052"),
		KafkaBrokers: strings.Split(must(os.Getenv("KAFKA_BROKERS"), "KAFKA_BROKERS"), ","),
		KafkaTopic:   getenv("KAFKA_LOG_TOPIC", "merch-logs"),
		ESURL:        os.Getenv("ES_URL"),
		ESUser:       os.Getenv("ES_USER"),
		ESPassword:   os.Getenv("ES_PASSWORD"),
		ESLogIndex:   getenv("ES_LOG_INDEX", "merch-logs"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
	}
}
