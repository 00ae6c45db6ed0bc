package consumers

import (
	"context"
	"sync/atomic"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// ConsumerWrapper binds a consumer loop to the health flags the /health
// endpoint reads, so a loop that exits marks its component degraded.
type ConsumerWrapper struct {
	loop  func(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool)
	flags []*atomic.Bool
}

func WrapConsumer(loop func(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool), flags ...*atomic.Bool) ConsumerWrapper {
	return ConsumerWrapper{
		loop:  loop,
		flags: flags,
	}
}

// Handler adapts the wrapped loop to the registry signature. The flags go
// healthy when the loop starts and degraded when it returns.
func (cw ConsumerWrapper) Handler() func(ctx context.Context, consumer *kafka.Consumer) {
	return func(ctx context.Context, consumer *kafka.Consumer) {
		for _, flag := range cw.flags {
			flag.Store(true)
		}
		defer func() {
			for _, flag := range cw.flags {
				flag.Store(false)
			}
		}()
		cw.loop(ctx, consumer, cw.flags...)
	}
}
