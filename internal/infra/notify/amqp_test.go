//go:build unit

package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"academy-booking/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	mu     sync.Mutex
	sent   []published
	fail   error
	closed bool
	wg     sync.WaitGroup
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	defer f.wg.Done()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPForwarder_RoutesByTopic(t *testing.T) {
	bus := NewBus(8)
	defer bus.Close()

	ch := &fakeChannel{}
	fwd := newAMQPForwarder(ch, "academy.events")
	fwd.Attach(bus)

	ev := event(shared.KindBooking, shared.ActionCreated)
	ch.wg.Add(1)
	bus.Publish(context.Background(), ev)
	ch.wg.Wait()

	ch.mu.Lock()
	defer ch.mu.Unlock()
	require.Len(t, ch.sent, 1)
	got := ch.sent[0]
	assert.Equal(t, "academy.events", got.exchange)
	assert.Equal(t, "booking.created", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)

	var decoded shared.Event
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, ev.ID, decoded.ID)
}

func TestAMQPForwarder_FailureIsSwallowed(t *testing.T) {
	bus := NewBus(8)
	ch := &fakeChannel{fail: errors.New("channel/connection is not open")}
	fwd := newAMQPForwarder(ch, "academy.events")
	fwd.Attach(bus)

	ch.wg.Add(2)
	bus.Publish(context.Background(), event(shared.KindSession, shared.ActionDeleted), event(shared.KindSession, shared.ActionDeleted))
	ch.wg.Wait()

	require.NoError(t, fwd.Close())
	assert.True(t, ch.closed)
	bus.Close()
}
