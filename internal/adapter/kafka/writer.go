package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/quake-report/internal/config"
	"github.com/couchcryptid/quake-report/internal/domain"
	"github.com/couchcryptid/quake-report/internal/report"
	kafkago "github.com/segmentio/kafka-go"
)

// Message kinds carried in the "kind" header.
const (
	KindMonthlyExtreme = "monthly_extreme"
	KindSummary        = "summary"
)

// messageWriter is the subset of *kafkago.Writer the sink uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes report summaries to a Kafka topic: one message per
// monthly extreme followed by one message holding the whole summary.
// It implements pipeline.Loader.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

func (w *Writer) Name() string { return "kafka" }

// Load serializes the summary and publishes all messages in a single
// WriteMessages call.
func (w *Writer) Load(ctx context.Context, s domain.Summary) error {
	msgs, err := buildMessages(s)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish summary: %w", err)
	}
	w.logger.Info("summary published", "run_id", s.RunID, "messages", len(msgs))
	return nil
}

// Published reports how many messages Load sends for s.
func (w *Writer) Published(s domain.Summary) int {
	return messageCount(s)
}

func messageCount(s domain.Summary) int {
	return len(s.MonthlyExtremes) + 1
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func buildMessages(s domain.Summary) ([]kafkago.Message, error) {
	msgs := make([]kafkago.Message, 0, messageCount(s))
	for _, m := range s.MonthlyExtremes {
		msg, err := serializeExtreme(s, m)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	msg, err := serializeSummary(s)
	if err != nil {
		return nil, err
	}
	return append(msgs, msg), nil
}

// serializeExtreme marshals a MonthlyExtreme into a message keyed by its
// year-month so reruns of the same month land on the same partition.
func serializeExtreme(s domain.Summary, m domain.MonthlyExtreme) (kafkago.Message, error) {
	data, err := json.Marshal(report.NewExtremeView(m))
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize monthly extreme: %w", err)
	}
	return kafkago.Message{
		Key:     []byte(fmt.Sprintf("%04d-%02d", m.Year, m.Month)),
		Value:   data,
		Headers: headers(s, KindMonthlyExtreme),
	}, nil
}

func serializeSummary(s domain.Summary) (kafkago.Message, error) {
	data, err := json.Marshal(report.NewSummaryView(s))
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize summary: %w", err)
	}
	return kafkago.Message{
		Key:     []byte(s.RunID),
		Value:   data,
		Headers: headers(s, KindSummary),
	}, nil
}

func headers(s domain.Summary, kind string) []kafkago.Header {
	return []kafkago.Header{
		{Key: "kind", Value: []byte(kind)},
		{Key: "run_id", Value: []byte(s.RunID)},
		{Key: "generated_at", Value: []byte(s.GeneratedAt.UTC().Format(time.RFC3339))},
	}
}
