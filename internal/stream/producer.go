package stream

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"seatlab/pkg/logger"
)

// Producer interface defines the contract for publishing layout events
type Producer interface {
	PublishEvent(ctx context.Context, event *LayoutEvent) error
	PublishBatch(ctx context.Context, events []*LayoutEvent) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// KafkaProducerConfig contains configuration for the Kafka layout event producer
type KafkaProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "layout-events",
		RetryMax:         3,
		TimeoutMs:        10000,             // 10 seconds
		RequiredAcks:     sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaProducer publishes layout events to Kafka
type KafkaProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
	log      *logger.Logger
}

// NewKafkaProducer creates a new Kafka layout event producer
func NewKafkaProducer(config *KafkaProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()

	// Producer configuration
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	// Enable idempotent producer
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps per-layout ordering
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	kp := &KafkaProducer{
		producer: producer,
		config:   config,
		log:      logger.GetDefault(),
	}

	kp.log.Info("Kafka layout event producer created", "topic", config.Topic)
	return kp, nil
}

// PublishEvent publishes a single layout event to Kafka
func (kp *KafkaProducer) PublishEvent(ctx context.Context, event *LayoutEvent) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal layout event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kp.config.Topic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   kp.createHeaders(event),
		Timestamp: event.CreatedAt,
	}

	partition, offset, err := kp.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send layout event to Kafka: %w", err)
	}

	kp.log.Info("layout event published",
		"topic", kp.config.Topic,
		"partition", partition,
		"offset", offset,
		"type", string(event.Type),
		"layout_id", event.LayoutID.String(),
	)

	return nil
}

// PublishBatch publishes multiple layout events in one round trip
func (kp *KafkaProducer) PublishBatch(ctx context.Context, events []*LayoutEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]*sarama.ProducerMessage, 0, len(events))
	for _, event := range events {
		messageBytes, err := event.ToJSON()
		if err != nil {
			kp.log.Warn("skipping unmarshalable layout event", "layout_id", event.LayoutID.String(), "error", err)
			continue
		}

		messages = append(messages, &sarama.ProducerMessage{
			Topic:     kp.config.Topic,
			Key:       sarama.StringEncoder(event.GetPartitionKey()),
			Value:     sarama.ByteEncoder(messageBytes),
			Headers:   kp.createHeaders(event),
			Timestamp: event.CreatedAt,
		})
	}

	if err := kp.producer.SendMessages(messages); err != nil {
		return fmt.Errorf("failed to send batch layout events to Kafka: %w", err)
	}

	kp.log.Info("layout event batch published", "count", len(messages), "topic", kp.config.Topic)
	return nil
}

// createHeaders creates Kafka headers for layout events
func (kp *KafkaProducer) createHeaders(event *LayoutEvent) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(event.ID.String())},
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("layout_id"), Value: []byte(event.LayoutID.String())},
		{Key: []byte("actor_id"), Value: []byte(event.ActorID)},
		{Key: []byte("version"), Value: []byte(fmt.Sprintf("%d", event.Version))},
		{Key: []byte("producer"), Value: []byte("seatlab-layouts")},
		{Key: []byte("created_at"), Value: []byte(event.CreatedAt.Format(time.RFC3339))},
	}
}

// Close closes the Kafka producer
func (kp *KafkaProducer) Close() error {
	if kp.producer != nil {
		if err := kp.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		kp.log.Info("Kafka layout event producer closed")
	}
	return nil
}

// HealthCheck validates the producer configuration and serialization path
func (kp *KafkaProducer) HealthCheck(ctx context.Context) error {
	if kp.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}
	if kp.config.Topic == "" {
		return fmt.Errorf("health check failed - topic not configured")
	}

	// Exercise the marshaling path without producing noise on the topic
	testEvent := NewLayoutEvent(LayoutEventSaved, uuid.Nil, "health-check", 0, 0)
	if _, err := testEvent.ToJSON(); err != nil {
		return fmt.Errorf("health check failed - JSON marshaling error: %w", err)
	}

	return nil
}
