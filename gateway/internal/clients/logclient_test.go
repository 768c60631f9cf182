package clients

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogClient_StreamsNDJSON(t *testing.T) {
	t.Parallel()

	var lines []LogEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/logs/stream", r.URL.Path)
		require.Equal(t, "application/x-ndjson", r.Header.Get("Content-Type"))

		sc := bufio.NewScanner(r.Body)
		for sc.Scan() {
			var ev LogEvent
			require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
			lines = append(lines, ev)
		}
		_ = json.NewEncoder(w).Encode(PushStatus{Success: true, Count: len(lines)})
	}))
	t.Cleanup(srv.Close)

	client := NewLogClient(srv.URL, "api_service")
	events := []LogEvent{
		client.NewEvent("INFO", "one"),
		client.NewEvent("INFO", "two"),
		client.NewEvent("WARN", "three"),
	}

	status, err := client.Push(context.Background(), events)
	require.NoError(t, err)
	assert.True(t, status.Success)
	assert.Equal(t, 3, status.Count)

	require.Len(t, lines, 3)
	assert.Equal(t, "api_service", lines[0].ServiceName)
	assert.Equal(t, "one", lines[0].Message)

	_, err = time.Parse(time.RFC3339, lines[0].Timestamp)
	assert.NoError(t, err)
}

func TestLogClient_PushFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := NewLogClient(srv.URL, "api_service")
	_, err := client.Push(context.Background(), []LogEvent{client.NewEvent("INFO", "m")})
	assert.Error(t, err)
}
