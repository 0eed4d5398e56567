// Package refresh is the task synchronization coordinator. Producers
// that mutate tasks indirectly (the chat flow) notify the hub; views
// that render tasks subscribe a refetch func for their lifetime.
//
// Subscription replaces the parent-held imperative handles of the
// original design: the producer does not need to know its consumers,
// and a view that has not subscribed yet simply is not called.
package refresh

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Func reloads one view's data from the backend.
type Func func(ctx context.Context) error

// Hub fans a refresh notification out to every subscribed view.
type Hub struct {
	log zerolog.Logger

	mu      sync.Mutex
	nextID  int
	subs    map[int]sub
	notifys int
}

type sub struct {
	name string
	fn   Func
}

// NewHub creates an empty hub. Notifying an empty hub is a no-op; there
// is no queuing or deferred delivery for views that subscribe later.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{log: log, subs: make(map[int]sub)}
}

// Subscribe registers a refresh func under a view name and returns its
// cancel func. Subscribing happens once per view mount; the returned
// cancel is called on unmount.
func (h *Hub) Subscribe(name string, fn Func) (cancel func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = sub{name: name, fn: fn}
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Notify invokes every current subscriber in turn. Subscriber failures
// go to the diagnostic log, never to the user; a refresh is a
// background reload and the next one may succeed.
func (h *Hub) Notify(ctx context.Context) {
	h.mu.Lock()
	h.notifys++
	subs := make([]sub, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		if err := s.fn(ctx); err != nil {
			h.log.Debug().Err(err).Str("view", s.name).Msg("refresh failed")
		}
	}
}

// Notifications returns how many times Notify has been invoked.
func (h *Hub) Notifications() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.notifys
}
