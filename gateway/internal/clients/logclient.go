package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type LogEvent struct {
	ServiceName string `json:"service_name"`
	Level       string `json:"level"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
}

type PushStatus struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// LogClient streams log events to the logging service's client-streaming
// ingestion call, one JSON value per line of the request body.
type LogClient struct {
	baseURL     string
	serviceName string
	httpClient  *http.Client
}

func NewLogClient(logServiceURL, serviceName string) *LogClient {
	return &LogClient{
		baseURL:     strings.TrimRight(logServiceURL, "/"),
		serviceName: serviceName,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *LogClient) NewEvent(level, message string) LogEvent {
	return LogEvent{
		ServiceName: c.serviceName,
		Level:       level,
		Message:     message,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

func (c *LogClient) Push(ctx context.Context, events []LogEvent) (*PushStatus, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, ev := range events {
		if err := enc.Encode(ev); err != nil {
			return nil, fmt.Errorf("encode event: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/logs/stream", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("push failed with status: %d", resp.StatusCode)
	}

	var status PushStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &status, nil
}
