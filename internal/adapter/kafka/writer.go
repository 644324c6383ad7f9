package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/aero-refdb/internal/config"
	"github.com/couchcryptid/aero-refdb/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes every entry of a built database to Kafka, one message per
// entry keyed by identifier, on topic "<prefix>.<database>".
// It implements pipeline.Sink.
type Writer struct {
	writer *kafkago.Writer
	prefix string
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured brokers. The topic is
// chosen per message.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, prefix: cfg.KafkaTopicPrefix, logger: logger}
}

func (w *Writer) Name() string { return "kafka" }

// Topic returns the topic a database is published to.
func (w *Writer) Topic(database string) string {
	return w.prefix + "." + database
}

// Publish serializes and writes all entries in a single WriteMessages call.
func (w *Writer) Publish(ctx context.Context, ds pipeline.Dataset) error {
	if ds.Len == 0 {
		return nil
	}
	msgs, err := serializeDataset(w.Topic(ds.Name()), ds)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d messages to %s: %w", len(msgs), w.Topic(ds.Name()), err)
	}
	w.logger.Debug("database published", "topic", w.Topic(ds.Name()), "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func serializeDataset(topic string, ds pipeline.Dataset) ([]kafkago.Message, error) {
	msgs := make([]kafkago.Message, 0, ds.Len)
	for id, entry := range ds.Entries {
		msg, err := serializeToMessage(topic, ds.Name(), ds.Meta.BuiltAt, id, entry)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// serializeToMessage marshals one database entry into a Kafka message.
func serializeToMessage(topic, database string, builtAt time.Time, id string, entry any) (kafkago.Message, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s entry %s: %w", database, id, err)
	}
	return kafkago.Message{
		Topic: topic,
		Key:   []byte(id),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "database", Value: []byte(database)},
			{Key: "built_at", Value: []byte(builtAt.Format(time.RFC3339))},
		},
	}, nil
}
