package config

import (
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/quiz-engine/internal/events"
)

// EventConfig holds configuration for event publishing
type EventConfig struct {
	Enabled      bool   // EVENTS_ENABLED
	Publisher    string // EVENTS_PUBLISHER: kafka, memory or mock
	KafkaBrokers string // KAFKA_BROKERS, comma separated
	QuizTopic    string // QUIZ_EVENTS_TOPIC
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, events stay in process", "topic", c.QuizTopic)
		return c.inProcessPublisher(logger), nil
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.QuizTopic)

		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.QuizTopic,
			Logger:       logger,
		})
	case "memory":
		logger.Info("Using in-process event publisher", "topic", c.QuizTopic)
		return c.inProcessPublisher(logger), nil
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, falling back to in-process", "publisher", c.Publisher)
		return c.inProcessPublisher(logger), nil
	}
}

// FallbackPublisher is used when the configured publisher cannot be created.
// Events without subscribers are dropped, so it holds no memory over time.
func (c *EventConfig) FallbackPublisher(logger *slog.Logger) events.EventPublisher {
	return c.inProcessPublisher(logger)
}

func (c *EventConfig) inProcessPublisher(logger *slog.Logger) *events.WatermillEventPublisher {
	publisher, _ := events.NewGoChannelEventPublisher(c.QuizTopic, logger)
	return publisher
}
