// internal/infrastructure/messaging/kafka/publisher.go
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stephenombuya/Velixa/internal/pkg/events"
)

// Writer limits: a lone event is flushed after batchTimeout, and a write gives up after writeTimeout
const (
	batchTimeout = 10 * time.Millisecond
	writeTimeout = 2 * time.Second
)

// Publisher writes domain events to Kafka, one writer per topic
type Publisher struct {
	brokers []string
	prefix  string

	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

// NewPublisher creates a publisher for the given brokers
func NewPublisher(brokers []string, prefix string) *Publisher {
	return &Publisher{
		brokers: brokers,
		prefix:  prefix,
		writers: make(map[string]*kafka.Writer),
	}
}

// TopicName returns the full topic name for a service topic
func (p *Publisher) TopicName(topic string) string {
	if p.prefix == "" {
		return topic
	}
	return p.prefix + "." + topic
}

// Publish serializes the event as JSON keyed by its entity id
func (p *Publisher) Publish(ctx context.Context, topic string, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EntityID),
		Value: data,
		Time:  time.Now().UTC(),
	}
	if err := p.writer(topic).WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.TopicName(topic), err)
	}
	return nil
}

// Close flushes and closes every writer
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close writer for %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]*kafka.Writer)
	return firstErr
}

func (p *Publisher) writer(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(p.brokers...),
		Topic:                  p.TopicName(topic),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}
	p.writers[topic] = w
	return w
}
