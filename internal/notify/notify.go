// Package notify carries the transient, fire-and-forget user signals of
// the client: toast-style notifications and cross-component events such
// as the unread-count badge update.
package notify

import (
	"log/slog"
	"sync"
)

// Notifier surfaces transient user-facing messages. Implementations
// must never block and never fail the operation that emitted them.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// LogNotifier is a Notifier that writes notifications to a logger.
// The CLI uses it as its toast surface.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Success(msg string) { n.Logger.Info("notice", "kind", "success", "msg", msg) }
func (n LogNotifier) Error(msg string)   { n.Logger.Warn("notice", "kind", "error", "msg", msg) }
func (n LogNotifier) Info(msg string)    { n.Logger.Info("notice", "kind", "info", "msg", msg) }

// Nop is a Notifier that discards everything.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Error(string)   {}
func (Nop) Info(string)    {}

// Event kinds broadcast on the Bus.
const (
	// EventNotificationsUpdated carries the current unread count.
	EventNotificationsUpdated = "notifications-updated"
	// EventOpenNotifications asks the notifications panel to open.
	EventOpenNotifications = "open-notifications"
	// EventOpenChat asks the chat panel to open.
	EventOpenChat = "open-chat"
)

// Event is a broadcast signal between UI components.
type Event struct {
	Kind        string
	UnreadCount int
}

// Bus is a non-blocking broadcast channel between components. Delivery
// is best-effort: a subscriber that has fallen behind drops events
// rather than stalling the publisher.
type Bus struct {
	mu   sync.Mutex
	subs []chan Event
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe returns a channel receiving future events, plus a cancel
// function that detaches the subscriber. Callers must cancel when done
// or the bus keeps delivering to a channel nobody drains. The channel
// is buffered; events published while the buffer is full are dropped
// for that subscriber.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, sub := range b.subs {
			if sub == ch {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
	return ch, cancel
}

// SubscriberCount reports the number of attached subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish broadcasts an event to all subscribers without blocking.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// PublishUnread broadcasts the current unread notification count.
func (b *Bus) PublishUnread(count int) {
	b.Publish(Event{Kind: EventNotificationsUpdated, UnreadCount: count})
}
