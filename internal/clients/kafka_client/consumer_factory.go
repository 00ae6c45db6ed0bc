package kafka_client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// topicHandlers maps a topic to the loop that processes it. The worker
// registers its analysis loop here before calling StartConsumer.
var topicHandlers = make(map[string]func(context.Context, *kafka.Consumer))

func RegisterConsumer(topic string, handler func(context.Context, *kafka.Consumer)) {
	topicHandlers[topic] = handler
}

// StartConsumer subscribes to the configured request topic and hands the
// consumer to the registered loop. It blocks until the loop returns.
func StartConsumer(ctx context.Context) error {
	cfg := GetKafkaConfig()
	handler, registered := topicHandlers[cfg.Topic]
	if !registered {
		return fmt.Errorf("[ConsumerFactory] no handler registered for topic: %s", cfg.Topic)
	}

	consumer, err := NewConsumer()
	if err != nil {
		return fmt.Errorf("[ConsumerFactory] failed to initialize consumer: %w", err)
	}
	defer consumer.Close()

	slog.Info("[ConsumerFactory] Consuming analysis requests", slog.String("topic", cfg.Topic))
	handler(ctx, consumer)

	return nil
}
