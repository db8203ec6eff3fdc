package events

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/steeze-activities/pkg/codec"
)

const publishTimeout = 5 * time.Second

// DefaultTopic receives roster events when no topic is configured.
const DefaultTopic = "activities.roster"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes roster events to a single topic, keyed by activity
// name so one activity's events stay ordered within a partition.
type KafkaPublisher struct {
	w     messageWriter
	codec codec.Codec
}

// NewKafkaPublisher creates a synchronous writer for topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Compression:            kafka.Snappy,
		AllowAutoTopicCreation: true,
		Async:                  false,
	})
}

func newKafkaPublisher(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{w: w, codec: codec.JSON}
}

// Publish encodes ev as JSON and writes it, bounded by publishTimeout.
func (p *KafkaPublisher) Publish(ctx context.Context, ev RosterEvent) error {
	value, err := p.codec.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode roster event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(ev.Activity),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "X-Event-Type", Value: []byte(ev.Type)},
			{Key: "Content-Type", Value: []byte(p.codec.ContentType())},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write roster event: %w", err)
	}
	return nil
}

// Close flushes and releases the writer.
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
