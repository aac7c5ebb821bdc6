// Package alerts handles Kafka event production for high-risk asteroid
// detections.
package alerts

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/cosmicwatch/neo-backend/model"
)

// DefaultTopic is the Kafka topic hazard alerts are published to.
const DefaultTopic = "hazard-alerts"

// HazardAlertEvent is the event contract for a high-risk asteroid detection.
type HazardAlertEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`
	AsteroidID    string    `json:"asteroid_id"`
	Name          string    `json:"name"`
	RiskScore     int       `json:"risk_score"`
	RiskLevel     string    `json:"risk_level"`
	IsHazardous   bool      `json:"is_hazardous"`
}

// Producer handles sending hazard alert events to Kafka.
type Producer struct {
	Writer *kafka.Writer
}

// NewProducer initializes a new Kafka writer for hazard alert events.
func NewProducer(brokers []string, topic string) *Producer {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Producer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish sends a hazard alert event for the asteroid to the Kafka topic.
func (p *Producer) Publish(ctx context.Context, asteroid model.Asteroid) error {
	event := HazardAlertEvent{
		EventType:     "asteroid.hazard.detected",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		AsteroidID:    asteroid.ID,
		Name:          asteroid.Name,
		IsHazardous:   asteroid.IsPotentiallyHazardous,
	}
	if asteroid.RiskAnalysis != nil {
		event.RiskScore = asteroid.RiskAnalysis.Score
		event.RiskLevel = asteroid.RiskAnalysis.Level
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(asteroid.ID),
		Value: payload,
	})
}

// Close cleans up the Kafka writer.
func (p *Producer) Close() error {
	return p.Writer.Close()
}
