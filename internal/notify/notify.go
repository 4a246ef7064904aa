// Package notify is the one-way user notification channel.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier receives short human-readable messages after user-facing
// outcomes. Fire-and-forget: no return value, no delivery guarantee.
type Notifier interface {
	Notify(msg string)
}

// Func adapts a function to the Notifier interface.
type Func func(msg string)

func (f Func) Notify(msg string) { f(msg) }

// Writer prints notifications to an io.Writer, one per line.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer notifier.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (n *Writer) Notify(msg string) {
	fmt.Fprintln(n.w, msg)
}

// Discard drops all notifications.
var Discard Notifier = Func(func(string) {})

// Hub forwards notifications to a swappable sink, so an interactive
// surface can take over the channel from the default writer.
type Hub struct {
	mu   sync.Mutex
	sink Notifier
}

// NewHub creates a Hub with the given initial sink.
func NewHub(sink Notifier) *Hub {
	if sink == nil {
		sink = Discard
	}
	return &Hub{sink: sink}
}

// SetSink replaces the sink for all future notifications.
func (h *Hub) SetSink(sink Notifier) {
	if sink == nil {
		sink = Discard
	}
	h.mu.Lock()
	h.sink = sink
	h.mu.Unlock()
}

func (h *Hub) Notify(msg string) {
	h.mu.Lock()
	sink := h.sink
	h.mu.Unlock()
	sink.Notify(msg)
}
