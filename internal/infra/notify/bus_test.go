//go:build unit

package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"academy-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(kind shared.EntityKind, action shared.Action) shared.Event {
	return shared.Event{Kind: kind, Action: action, ID: uuid.New(), OccurredAt: time.Now().UTC()}
}

type collector struct {
	mu  sync.Mutex
	got []string
	wg  sync.WaitGroup
}

func (c *collector) fn(ev shared.Event) {
	c.mu.Lock()
	c.got = append(c.got, ev.Topic())
	c.mu.Unlock()
	c.wg.Done()
}

func (c *collector) topics() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.got...)
}

func TestBus_FiltersByKind(t *testing.T) {
	bus := NewBus(8)
	defer bus.Close()

	var all, bookings collector
	all.wg.Add(2)
	bookings.wg.Add(1)
	bus.Subscribe("", all.fn)
	bus.Subscribe(shared.KindBooking, bookings.fn)

	bus.Publish(context.Background(),
		event(shared.KindSession, shared.ActionCreated),
		event(shared.KindBooking, shared.ActionCancelled),
	)
	all.wg.Wait()
	bookings.wg.Wait()

	assert.Equal(t, []string{"session.created", "booking.cancelled"}, all.topics())
	assert.Equal(t, []string{"booking.cancelled"}, bookings.topics())
}

func TestBus_SlowSubscriberNeverBlocksPublisher(t *testing.T) {
	bus := NewBus(1)

	release := make(chan struct{})
	bus.Subscribe("", func(shared.Event) { <-release })

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			bus.Publish(context.Background(), event(shared.KindBooking, shared.ActionCreated))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
	close(release)
	bus.Close()
}

func TestBus_UnsubscribeAndClose(t *testing.T) {
	bus := NewBus(4)

	var c collector
	c.wg.Add(1)
	unsubscribe := bus.Subscribe("", c.fn)
	bus.Publish(context.Background(), event(shared.KindMember, shared.ActionUpdated))
	c.wg.Wait()

	unsubscribe()
	unsubscribe()
	bus.Publish(context.Background(), event(shared.KindMember, shared.ActionUpdated))

	bus.Close()
	bus.Close()
	assert.Len(t, c.topics(), 1)

	// subscribing after close is a no-op
	noop := bus.Subscribe("", func(shared.Event) { t.Error("closed bus delivered an event") })
	bus.Publish(context.Background(), event(shared.KindMember, shared.ActionUpdated))
	noop()
}

func TestBus_PanickingSubscriberKeepsRunning(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()

	var c collector
	c.wg.Add(2)
	first := true
	bus.Subscribe("", func(ev shared.Event) {
		c.fn(ev)
		if first {
			first = false
			panic("boom")
		}
	})
	bus.Publish(context.Background(), event(shared.KindSettings, shared.ActionUpdated), event(shared.KindSettings, shared.ActionUpdated))
	c.wg.Wait()
	require.Len(t, c.topics(), 2)
}
