package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/merchstore/merch-store/pkg/logging"
	"github.com/merchstore/merch-store/services/logging/internal/transport"
)

// Sink is the asynchronous broker producer the pipeline forwards into.
type Sink interface {
	Enqueue(ctx context.Context, key, value string) error
	Flush(ctx context.Context) error
}

// Indexer is an optional secondary sink (Elasticsearch in production).
type Indexer interface {
	IndexLine(ctx context.Context, serviceName, line string) error
}

type IngestService struct {
	Sink    Sink
	Indexer Indexer
}

func FormatLine(ev *transport.LogEvent) string {
	return fmt.Sprintf("[%s] [%s] %s - %s", ev.Level, ev.ServiceName, ev.Timestamp, ev.Message)
}

// Ingest drains one finite event stream, forwarding each event to the sink
// keyed by service name, in arrival order. The sink is flushed before
// returning, even when the stream breaks mid-read, so already-accepted
// events are never abandoned. Enqueue and flush failures are logged and
// absorbed: the aggregate result only reports how many events were
// processed.
func (s *IngestService) Ingest(ctx context.Context, next func() (*transport.LogEvent, error)) (int, error) {
	l := logging.FromContext(ctx).With("svc", "logging.ingest")

	flush := func() {
		if err := s.Sink.Flush(ctx); err != nil {
			l.Error("flush failed", "error", err)
		}
	}

	count := 0
	for {
		ev, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			flush()
			return count, fmt.Errorf("read stream: %w", err)
		}

		line := FormatLine(ev)
		if err := s.Sink.Enqueue(ctx, ev.ServiceName, line); err != nil {
			l.Error("enqueue failed", "service_name", ev.ServiceName, "error", err)
		}
		if s.Indexer != nil {
			if err := s.Indexer.IndexLine(ctx, ev.ServiceName, line); err != nil {
				l.Warn("es index failed", "service_name", ev.ServiceName, "error", err)
			}
		}
		count++
	}

	flush()
	return count, nil
}
