package config

import (
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/phrase-sort-service/internal/events"
)

// EventConfig holds configuration for exercise event publishing
type EventConfig struct {
	Enabled       bool   `env:"EVENTS_ENABLED" envDefault:"false"`
	Publisher     string `env:"EVENTS_PUBLISHER" envDefault:"kafka"` // kafka or noop
	KafkaBrokers  string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	ExerciseTopic string `env:"EXERCISE_TOPIC" envDefault:"exercise-events"`
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	brokers := strings.Split(c.KafkaBrokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	return brokers
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled")
		return events.NewNoopEventPublisher(logger), nil
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.ExerciseTopic)

		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.ExerciseTopic,
			Logger:       logger,
		})
	case "noop":
		logger.Info("Using no-op event publisher")
		return events.NewNoopEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, events will be dropped", "publisher", c.Publisher)
		return events.NewNoopEventPublisher(logger), nil
	}
}
