// Package sse streams events to clients that cannot use a websocket. The
// admin order feed is published both here and on pkg/ws:
//
//	broker := sse.NewBroker()
//	r.Get("/admin/orders/stream", "admin.orders.stream", func(w http.ResponseWriter, r *http.Request) {
//	    sse.Serve(w, r, broker, 30*time.Second)
//	})
//	broker.Publish("order.created", payload)
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ruangkopi/cafe/pkg/logger"
)

// Stream represents an active SSE connection to one client.
type Stream struct {
	w       http.ResponseWriter
	r       *http.Request
	flusher http.Flusher
}

// New sets the event-stream headers and flushes them so the client sees the
// response immediately. Returns nil if the ResponseWriter cannot flush.
func New(w http.ResponseWriter, r *http.Request) *Stream {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return nil
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Stream{w: w, r: r, flusher: flusher}
}

// Send writes a named event whose data is already JSON.
func (s *Stream) Send(event string, data []byte) error {
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Comment writes an SSE comment, used as a keepalive.
func (s *Stream) Comment(msg string) error {
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", msg); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Event is one message queued for subscribers.
type Event struct {
	Name string
	Data []byte
}

// Broker fans published events out to every subscribed stream.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: map[chan Event]struct{}{}}
}

// Subscribe registers a new listener. Call the returned func to leave.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 32)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
		})
	}
}

// Count returns the number of subscribers.
func (b *Broker) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish JSON-encodes v and queues it for every subscriber. A subscriber
// whose buffer is full misses the event.
func (b *Broker) Publish(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sse: marshal: %w", err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- Event{Name: name, Data: data}:
		default:
			logger.Warn("sse: subscriber lagging, event dropped", "event", name)
		}
	}
	return nil
}

// Serve streams broker events to the client until it disconnects, writing a
// keepalive comment every heartbeat.
func Serve(w http.ResponseWriter, r *http.Request, b *Broker, heartbeat time.Duration) {
	stream := New(w, r)
	if stream == nil {
		return
	}
	events, leave := b.Subscribe()
	defer leave()

	tick := time.NewTicker(heartbeat)
	defer tick.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			if err := stream.Send(ev.Name, ev.Data); err != nil {
				return
			}
		case <-tick.C:
			if err := stream.Comment("ping"); err != nil {
				return
			}
		}
	}
}
