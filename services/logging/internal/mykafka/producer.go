package mykafka

import (
	"context"
	"log/slog"
	"sync"

	"github.com/segmentio/kafka-go"
)

// Producer wraps an async kafka-go writer. Messages are keyed so that a
// broker partitioning by key keeps per-key ordering; delivery results come
// back only through the completion callback.
type Producer struct {
	writer *kafka.Writer
	logger *slog.Logger

	mu          sync.Mutex
	outstanding int
	idle        chan struct{}
}

func NewProducer(brokers []string, topic string, logger *slog.Logger) *Producer {
	p := &Producer{logger: logger}
	p.writer = &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion:             p.onDelivery,
	}
	return p
}

// track adjusts the in-flight count and releases any Flush waiters once it
// drains to zero.
func (p *Producer) track(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outstanding += n
	if p.outstanding == 0 && p.idle != nil {
		close(p.idle)
		p.idle = nil
	}
}

func (p *Producer) onDelivery(messages []kafka.Message, err error) {
	if err != nil {
		// Recorded here and nowhere else: delivery failure never reaches
		// the caller that enqueued the message.
		p.logger.Error("kafka delivery failed", "messages", len(messages), "error", err)
	}
	p.track(-len(messages))
}

// Enqueue hands one message to the writer and returns without waiting for
// delivery.
func (p *Producer) Enqueue(ctx context.Context, key, value string) error {
	p.track(1)
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: []byte(value),
	})
	if err != nil {
		p.track(-1)
		return err
	}
	return nil
}

// Flush blocks until every outstanding message has been acknowledged or
// failed, or the context expires. An expired call just stops waiting on the
// shared idle channel; it spawns nothing that could outlive it.
func (p *Producer) Flush(ctx context.Context) error {
	p.mu.Lock()
	if p.outstanding == 0 {
		p.mu.Unlock()
		return nil
	}
	if p.idle == nil {
		p.idle = make(chan struct{})
	}
	idle := p.idle
	p.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
