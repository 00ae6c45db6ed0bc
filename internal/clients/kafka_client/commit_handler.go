package kafka_client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// KafkaCommitHandler commits a request's offset only after its assessment
// has been published and stored, retrying transient broker failures.
type KafkaCommitHandler struct {
	ctx      context.Context
	consumer *kafka.Consumer
}

func NewCommitHandler(ctx context.Context, consumer *kafka.Consumer) *KafkaCommitHandler {
	return &KafkaCommitHandler{
		ctx:      ctx,
		consumer: consumer,
	}
}

func (ch *KafkaCommitHandler) Commit(msg *kafka.Message) error {
	if ch.consumer == nil {
		return errors.New("[KafkaCommitHandler] consumer has not been initialized")
	}

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		select {
		case <-ch.ctx.Done():
			slog.Warn("[KafkaCommitHandler] Shutting down, abandoning commit")
			return ch.ctx.Err()
		default:
			_, err := ch.consumer.CommitMessage(msg)
			if err == nil {
				slog.Info("[KafkaCommitHandler] Committed request offset",
					slog.String("partition", fmt.Sprintf("%d", msg.TopicPartition.Partition)),
					slog.String("offset", fmt.Sprintf("%d", msg.TopicPartition.Offset)))
				return nil
			}

			// retrying a commit with no brokers left is pointless
			if kafkaErr, ok := err.(kafka.Error); ok && kafkaErr.Code() == kafka.ErrAllBrokersDown {
				slog.Error("[KafkaCommitHandler] All brokers down, abandoning commit")
				return err
			}

			slog.Warn("[KafkaCommitHandler] Commit failed, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
				slog.String("partition", fmt.Sprintf("%d", msg.TopicPartition.Partition)),
				slog.String("offset", fmt.Sprintf("%d", msg.TopicPartition.Offset)))

			time.Sleep(RETRY_DELAY)
		}
	}

	return fmt.Errorf("[KafkaCommitHandler] commit failed after %d attempts", MAX_RETRIES)
}
