package gateevents

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"easypark/pkg/logger"

	"github.com/IBM/sarama"
)

// Publisher is the observability collaborator gate operations report to
type Publisher interface {
	Publish(ctx context.Context, event *GateEvent) error
	Close() error
}

// KafkaPublisherConfig contains configuration for the Kafka gate event
// publisher
type KafkaPublisherConfig struct {
	Brokers      []string
	Topic        string
	RetryMax     int
	TimeoutMs    int
	RequiredAcks sarama.RequiredAcks
}

// DefaultKafkaPublisherConfig returns a default publisher configuration
func DefaultKafkaPublisherConfig() *KafkaPublisherConfig {
	return &KafkaPublisherConfig{
		Brokers:      []string{"localhost:9092"},
		Topic:        "gate-events",
		RetryMax:     3,
		TimeoutMs:    10000,
		RequiredAcks: sarama.WaitForAll,
	}
}

// KafkaPublisher publishes gate events to Kafka
type KafkaPublisher struct {
	producer sarama.SyncProducer
	config   *KafkaPublisherConfig
}

// NewKafkaPublisher creates a Kafka-backed gate event publisher
func NewKafkaPublisher(config *KafkaPublisherConfig) (Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond

	// per-facility ordering via the hash partitioner
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaPublisher{
		producer: producer,
		config:   config,
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event *GateEvent) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal gate event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.Topic,
		Key:       sarama.StringEncoder(event.PartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Timestamp: event.OccurredAt,
	}

	if _, _, err := p.producer.SendMessage(message); err != nil {
		return fmt.Errorf("failed to send gate event to Kafka: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// LogPublisher writes gate events to the application log. Used when Kafka is
// not configured: gate operations must still complete and inconsistencies
// must still surface somewhere visible.
type LogPublisher struct {
	logger *logger.Logger
}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{logger: logger.GetDefault()}
}

func (p *LogPublisher) Publish(ctx context.Context, event *GateEvent) error {
	attrs := []any{
		slog.String("event_id", event.ID.String()),
		slog.String("type", string(event.Type)),
		slog.String("facility_id", event.FacilityID.String()),
		slog.String("session_id", event.SessionID.String()),
		slog.String("vehicle_class", event.VehicleClass),
	}
	if event.Detail != "" {
		attrs = append(attrs, slog.String("detail", event.Detail))
	}

	if event.Type == EventSlotInventoryInconsistent {
		p.logger.Error("gate event", attrs...)
	} else {
		p.logger.Info("gate event", attrs...)
	}
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
