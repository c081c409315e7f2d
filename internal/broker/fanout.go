package broker

import "sync"

// Fanout delivers every published value to all current subscribers. Delivery
// is non-blocking: a subscriber that has fallen behind misses the value
// instead of stalling the publisher, which keeps store commits cheap. Missed
// notifications are fine for the store's use case since subscribers re-read
// the full state on every wake-up anyway.
type Fanout[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan T
}

func NewFanout[T any]() *Fanout[T] {
	return &Fanout[T]{
		subs: make(map[int]chan T),
	}
}

// Subscribe registers a new subscriber. The returned cancel function must be
// called to release the subscription; afterwards the channel is closed.
func (f *Fanout[T]) Subscribe() (<-chan T, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	channel := make(chan T, 1)
	f.subs[id] = channel

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if c, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(c)
		}
	}
	return channel, cancel
}

// Publish sends the value to every subscriber whose buffer has room.
func (f *Fanout[T]) Publish(value T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, channel := range f.subs {
		select {
		case channel <- value:
		default:
		}
	}
}
