package consumers

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

func TestConsumerWrapperFlagLifecycle(t *testing.T) {
	var flag atomic.Bool
	var sawHealthy bool

	loop := func(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool) {
		if len(health) != 1 {
			t.Fatalf("loop received %d health flags, want 1", len(health))
		}
		sawHealthy = health[0].Load()
	}

	handler := WrapConsumer(loop, &flag).Handler()
	handler(context.Background(), nil)

	if !sawHealthy {
		t.Error("flag should be healthy while the loop runs")
	}
	if flag.Load() {
		t.Error("flag should be degraded after the loop returns")
	}
}

func TestConsumerWrapperNoFlags(t *testing.T) {
	ran := false
	handler := WrapConsumer(func(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool) {
		ran = true
	}).Handler()
	handler(context.Background(), nil)

	if !ran {
		t.Error("wrapped loop did not run")
	}
}
