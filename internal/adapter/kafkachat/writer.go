package kafkachat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces bot replies to the outbound chat topic.
// It implements the bridge's ReplySender.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the outbound chat topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Send publishes one reply keyed by user id, so a user's replies stay on one
// partition and arrive in order.
func (w *Writer) Send(ctx context.Context, userID, text string) error {
	data, err := json.Marshal(OutboundMessage{UserID: userID, Text: text})
	if err != nil {
		return fmt.Errorf("serialize reply: %w", err)
	}
	return w.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(userID),
		Value: data,
	})
}

func (w *Writer) Close() error {
	return w.writer.Close()
}
