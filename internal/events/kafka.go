package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"investwise/internal/logger"
	"investwise/internal/metrics"
	"investwise/internal/services"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaRecomputer publishes recompute requests for the worker.
type KafkaRecomputer struct {
	writer  messageWriter
	source  string
	timeout time.Duration
}

// NewKafkaRecomputer creates a publisher on topic. Messages are keyed by user
// so one user's requests stay on one partition.
func NewKafkaRecomputer(brokers []string, topic, source string) *KafkaRecomputer {
	return &KafkaRecomputer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
		},
		source:  source,
		timeout: 5 * time.Second,
	}
}

var _ services.Recomputer = (*KafkaRecomputer)(nil)

// Publish writes one recompute request.
func (p *KafkaRecomputer) Publish(ctx context.Context, payload RecomputePayload) error {
	ev, err := NewRecomputeEvent(p.source, payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.UserID),
		Value: data,
	}); err != nil {
		return fmt.Errorf("publish recompute event: %w", err)
	}
	return nil
}

// Trigger publishes a sale-triggered request. Failures are logged; the sale is
// already committed.
func (p *KafkaRecomputer) Trigger(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.Publish(ctx, RecomputePayload{UserID: userID, Trigger: services.TriggerSale}); err != nil {
		metrics.RecordRecompute("kafka", "publish_error")
		logger.With("user_id", userID).Errorw("failed to publish recompute request", "error", err)
		return
	}
	metrics.RecordRecompute("kafka", "published")
}

// Close flushes and closes the writer.
func (p *KafkaRecomputer) Close() error {
	return p.writer.Close()
}

// Consumer feeds recompute requests from Kafka into a Valuator.
type Consumer struct {
	reader   messageReader
	valuator Valuator
	timeout  time.Duration
}

// NewConsumer creates a consumer-group reader on topic.
func NewConsumer(brokers []string, topic, groupID string, valuator Valuator, timeout time.Duration) *Consumer {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		valuator: valuator,
		timeout:  timeout,
	}
}

// Run processes messages until ctx is cancelled. Each message is committed
// after one attempt, whether or not the valuation succeeded.
func (c *Consumer) Run(ctx context.Context) error {
	log := logger.Get()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			log.Warnw("kafka fetch failed", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		c.handle(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Warnw("kafka commit failed", "offset", msg.Offset, "partition", msg.Partition, "error", err)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg kafka.Message) {
	ev, payload, err := DecodeRecompute(msg.Value)
	if err != nil {
		metrics.RecordRecompute("kafka", "malformed")
		logger.Get().Warnw("dropping malformed recompute event", "offset", msg.Offset, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	log := logger.With("user_id", payload.UserID, "event_id", ev.EventID)
	trigger := payload.Trigger
	if trigger == "" {
		trigger = services.TriggerSale
	}
	val, err := c.valuator.ComputeAndSnapshot(ctx, payload.UserID, trigger)
	if err != nil {
		metrics.RecordRecompute("kafka", "error")
		log.Errorw("recompute failed", "error", err)
		return
	}
	metrics.RecordRecompute("kafka", "ok")
	log.Infow("recompute complete", "status", val.Status)
}

// Close closes the reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
