package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher defines the interface for publishing quiz events
type EventPublisher interface {
	Publish(ctx context.Context, event *QuizEvent) error
	Close() error
}

// WatermillEventPublisher publishes events through any watermill publisher
type WatermillEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// NewKafkaEventPublisher creates a new Kafka-based event publisher using Watermill
func NewKafkaEventPublisher(config PublisherConfig) (*WatermillEventPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisherConfig := kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}

	publisher, err := kafka.NewPublisher(publisherConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return NewWatermillEventPublisher(publisher, config.TopicName, config.Logger), nil
}

// NewGoChannelEventPublisher publishes to an in-process watermill pub/sub.
// The returned GoChannel can be used to subscribe to the topic.
func NewGoChannelEventPublisher(topicName string, logger *slog.Logger) (*WatermillEventPublisher, *gochannel.GoChannel) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(logger))
	return NewWatermillEventPublisher(pubSub, topicName, logger), pubSub
}

func NewWatermillEventPublisher(publisher message.Publisher, topicName string, logger *slog.Logger) *WatermillEventPublisher {
	return &WatermillEventPublisher{
		publisher: publisher,
		logger:    logger,
		topicName: topicName,
	}
}

// Publish marshals the event and sends it to the configured topic
func (p *WatermillEventPublisher) Publish(ctx context.Context, event *QuizEvent) error {
	msg, err := NewMessage(event)
	if err != nil {
		return err
	}
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish quiz event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish quiz event: %w", err)
	}

	p.logger.Info("Published quiz event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)

	return nil
}

// Close closes the publisher and releases resources
func (p *WatermillEventPublisher) Close() error {
	return p.publisher.Close()
}

// NewMessage builds the watermill message of an event, with routing metadata.
func NewMessage(event *QuizEvent) (*message.Message, error) {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quiz event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))
	return msg, nil
}

// DecodeMessage is the inverse of NewMessage. Data is left as decoded JSON.
func DecodeMessage(msg *message.Message) (*QuizEvent, error) {
	var event QuizEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quiz event: %w", err)
	}
	return &event, nil
}

// DefaultMockRetention is how many events a MockEventPublisher keeps.
const DefaultMockRetention = 1000

// MockEventPublisher is a mock implementation for testing. It keeps the most
// recent Retention events.
type MockEventPublisher struct {
	mu        sync.Mutex
	Events    []QuizEvent
	Logger    *slog.Logger
	Retention int
	// Err, when set, is returned by every Publish call
	Err error
}

// NewMockEventPublisher creates a new mock event publisher
func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{
		Events:    make([]QuizEvent, 0),
		Logger:    logger,
		Retention: DefaultMockRetention,
	}
}

// Publish stores the event in memory (for testing)
func (m *MockEventPublisher) Publish(ctx context.Context, event *QuizEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, *event)
	if m.Retention > 0 && len(m.Events) > m.Retention {
		m.Events = append([]QuizEvent(nil), m.Events[len(m.Events)-m.Retention:]...)
	}
	m.Logger.Info("Mock: Published quiz event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns a copy of all published events (for testing)
func (m *MockEventPublisher) GetPublishedEvents() []QuizEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]QuizEvent(nil), m.Events...)
}

// ClearEvents clears all published events (for testing)
func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = make([]QuizEvent, 0)
}
