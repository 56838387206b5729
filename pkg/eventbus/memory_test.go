package eventbus_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/cardex/cardex/pkg/eventbus"
	"github.com/stretchr/testify/assert"
)

type testEvent struct {
	payload string
}

func (testEvent) EventType() string { return "TestEvent" }

func newTestBus() *eventbus.MemoryEventBus {
	return eventbus.NewMemoryEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	bus := newTestBus()
	var got []string
	bus.Subscribe("TestEvent", func(ctx context.Context, e eventbus.Event) {
		got = append(got, e.(testEvent).payload)
	})
	bus.Subscribe("TestEvent", func(ctx context.Context, e eventbus.Event) {
		got = append(got, "second:"+e.(testEvent).payload)
	})

	bus.Publish(context.Background(), testEvent{payload: "hello"})

	assert.Equal([]string{"hello", "second:hello"}, got, "handlers run synchronously in order")
}

func TestPublishSkipsOtherEventTypes(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	bus := newTestBus()
	called := false
	bus.Subscribe("SomethingElse", func(ctx context.Context, e eventbus.Event) {
		called = true
	})

	bus.Publish(context.Background(), testEvent{})
	assert.False(called, "handlers only see their own event type")
}

func TestConcurrentSubscribeAndPublish(t *testing.T) {
	t.Parallel()

	bus := newTestBus()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Subscribe("TestEvent", func(ctx context.Context, e eventbus.Event) {})
		}()
		go func() {
			defer wg.Done()
			bus.Publish(context.Background(), testEvent{})
		}()
	}
	wg.Wait()
}
