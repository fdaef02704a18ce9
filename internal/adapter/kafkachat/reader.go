package kafkachat

import (
	"context"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
)

// Reader consumes user messages from the inbound chat topic as part of a
// consumer group. Offsets are committed explicitly after each turn completes.
type Reader struct {
	reader *kafkago.Reader
	logger *slog.Logger
}

// NewReader creates a Kafka consumer for the inbound chat topic.
func NewReader(brokers []string, topic, groupID string, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
		// Chat traffic is low-volume; fetch eagerly rather than batching.
		MinBytes: 1,
		MaxBytes: 1 << 20,
	})
	return &Reader{reader: r, logger: logger}
}

// FetchMessage blocks until a message is available or the context ends.
func (r *Reader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	return r.reader.FetchMessage(ctx)
}

// CommitMessages marks the given messages as processed in the consumer group.
func (r *Reader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	return r.reader.CommitMessages(ctx, msgs...)
}

func (r *Reader) Close() error {
	return r.reader.Close()
}
