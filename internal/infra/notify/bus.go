// Package notify fans committed change events out to in-process subscribers.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"academy-booking/internal/usecase/shared"
)

type subscriber struct {
	id   uint64
	kind shared.EntityKind
	ch   chan shared.Event
}

// Bus never blocks a publisher: a subscriber whose buffer is full misses the
// event and a warning is logged.
type Bus struct {
	mu      sync.RWMutex
	subs    map[uint64]*subscriber
	nextID  uint64
	buffer  int
	closed  bool
	running sync.WaitGroup
}

func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 1
	}
	return &Bus{subs: make(map[uint64]*subscriber), buffer: buffer}
}

// Subscribe registers fn for events of kind; an empty kind receives everything.
// fn runs on a goroutine owned by the subscription. The returned function
// unsubscribes and may be called more than once.
func (b *Bus) Subscribe(kind shared.EntityKind, fn func(shared.Event)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return func() {}
	}

	b.nextID++
	sub := &subscriber{id: b.nextID, kind: kind, ch: make(chan shared.Event, b.buffer)}
	b.subs[sub.id] = sub

	b.running.Add(1)
	go func() {
		defer b.running.Done()
		for ev := range sub.ch {
			dispatch(fn, ev)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(sub.id) })
	}
}

func dispatch(fn func(shared.Event), ev shared.Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event subscriber panicked", "topic", ev.Topic(), "panic", r)
		}
	}()
	fn(ev)
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.ch)
	}
}

func (b *Bus) Publish(_ context.Context, events ...shared.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ev := range events {
		for _, sub := range b.subs {
			if sub.kind != "" && sub.kind != ev.Kind {
				continue
			}
			select {
			case sub.ch <- ev:
			default:
				slog.Warn("event dropped, subscriber buffer full",
					"topic", ev.Topic(), "subscriber", sub.id)
			}
		}
	}
}

// Close stops accepting events, lets subscribers drain and waits for them.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
	}
	b.mu.Unlock()

	b.running.Wait()
}
