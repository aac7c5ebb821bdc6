// Package kafka runs the hazard alert relay: it consumes the hazard alert
// topic and pushes each event to every connected websocket client.
package kafka

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	"github.com/cosmicwatch/neo-backend/events/modules/alerts"
)

// Broadcaster fans an event out to every connected client. The chat hub
// satisfies it.
type Broadcaster interface {
	BroadcastAll(event string, payload interface{})
}

// RunAlertRelay connects a consumer to the hazard alert topic and relays
// each event to the broadcaster until the context is cancelled.
func RunAlertRelay(ctx context.Context, hub Broadcaster) error {
	brokersEnv := os.Getenv("KAFKA_BROKERS")
	var brokers []string
	if brokersEnv != "" {
		brokers = strings.Split(brokersEnv, ",")
	} else {
		brokers = []string{"localhost:9092"}
	}

	username := os.Getenv("KAFKA_API_KEY")
	password := os.Getenv("KAFKA_API_SECRET")

	var dialer *kafka.Dialer

	// SASL/TLS only when credentials are provided; plain dialer for local
	// development.
	if username != "" && password != "" {
		mechanism := plain.Mechanism{
			Username: username,
			Password: password,
		}

		dialer = &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			SASLMechanism: mechanism,
			TLS:           &tls.Config{},
		}
	} else {
		dialer = &kafka.Dialer{
			Timeout:   10 * time.Second,
			DualStack: true,
		}
	}

	topic := os.Getenv("KAFKA_ALERT_TOPIC")
	if topic == "" {
		topic = alerts.DefaultTopic
	}

	var conn *kafka.Conn
	var err error

	// Retry logic: 3 tries
	for i := 1; i <= 3; i++ {
		log.Printf("Kafka connection attempt %d/3...", i)
		conn, err = dialer.DialContext(ctx, "tcp", brokers[0])
		if err == nil {
			conn.Close()
			break
		}
		if i < 3 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		return err
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  "neo-backend-worker",
		Topic:    topic,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	go func() {
		defer reader.Close()

		log.Println("Kafka alert relay started. Listening for hazard alerts...")

		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := reader.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					continue
				}

				var event alerts.HazardAlertEvent
				if err := json.Unmarshal(msg.Value, &event); err != nil {
					log.Printf("Dropping malformed hazard alert: %v", err)
					continue
				}
				hub.BroadcastAll("hazard-alert", event)
			}
		}
	}()

	return nil
}
