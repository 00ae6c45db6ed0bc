package kafka_client

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// KafkaMessageIterator pulls analysis requests off the wire one at a time,
// retrying transient read failures so the loop only sees real messages or
// terminal errors.
type KafkaMessageIterator struct {
	ctx      context.Context
	consumer *kafka.Consumer
}

func NewKafkaMessageIterator(ctx context.Context, consumer *kafka.Consumer) *KafkaMessageIterator {
	return &KafkaMessageIterator{
		ctx:      ctx,
		consumer: consumer,
	}
}

func (it *KafkaMessageIterator) Next() (*kafka.Message, error) {
	if it.consumer == nil {
		return nil, errors.New("[KafkaIterator] consumer has not been initialized")
	}

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		select {
		case <-it.ctx.Done():
			slog.Warn("[KafkaIterator] Shutting down, stopping reads")
			return nil, it.ctx.Err()
		default:
			msg, err := it.consumer.ReadMessage(-1)
			if err != nil {
				if kafkaErr, ok := err.(kafka.Error); ok && kafkaErr.Code() == kafka.ErrAllBrokersDown {
					slog.Error("[KafkaIterator] All brokers down, stopping reads")
					return nil, err
				}

				slog.Warn("[KafkaIterator] Read failed, retrying",
					slog.Int("attempt", attempt),
					slog.Int("max_retries", MAX_RETRIES),
					slog.String("error", err.Error()))

				time.Sleep(RETRY_DELAY)
				continue
			}
			return msg, nil
		}
	}
	return nil, errors.New("[KafkaIterator] read failed after retries")
}
