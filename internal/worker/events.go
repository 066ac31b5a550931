package worker

import (
	"context"
	"sync"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/pickup-notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=events.go -destination=../mocks/worker/mock.go -package=mocks
type eventConsumer interface {
	Consume(ctx context.Context, out chan<- queue.OrderEvent, strategy retry.Strategy) error
}

type eventHandler interface {
	HandleMessage(ctx context.Context, evt queue.OrderEvent, strategy retry.Strategy)
}

// OrderEvents feeds order lifecycle events from the broker to a pool of handlers.
type OrderEvents struct {
	queue   eventConsumer
	handler eventHandler
}

func NewOrderEvents(q eventConsumer, h eventHandler) *OrderEvents {
	return &OrderEvents{
		queue:   q,
		handler: h,
	}
}

// Run consumes events with workerCount goroutines and blocks until ctx is done
// and every worker has returned.
func (n *OrderEvents) Run(ctx context.Context, strategy retry.Strategy, workerCount int) {
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	events := make(chan queue.OrderEvent, workerCount*10)

	go func() {
		if err := n.queue.Consume(ctx, events, strategy); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to consume order events")
		}
	}()

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func(id int) {
			defer wg.Done()

			zlog.Logger.Info().Int("worker", id).Msg("order event worker started")

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Info().Int("worker", id).Msg("order event worker shutting down")
					return
				case evt, ok := <-events:
					if !ok {
						return
					}

					n.handler.HandleMessage(ctx, evt, strategy)
				}
			}
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
	zlog.Logger.Info().Msg("order event workers stopped")
}
