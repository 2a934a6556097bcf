// Package notify implements the console's transient notification slot. At
// most one message is live at a time; publishing a new one overwrites the
// current message and restarts the expiry clock, so an observer can never see
// two messages queued behind each other.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is the expiry applied when no TTL is configured.
const DefaultTTL = 3 * time.Second

// Notification is a single user-visible message with an expiry deadline.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Notifier holds the single live notification and publishes emissions to
// subscribers so tests can observe outcomes without rendering anything.
type Notifier struct {
	mu          sync.Mutex
	ttl         time.Duration
	current     *Notification
	subscribers []chan Notification
}

// NewNotifier constructs a Notifier with the given expiry window.
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl}
}

// Notify replaces any live message and restarts the expiry timer.
func (n *Notifier) Notify(message string) {
	n.mu.Lock()
	notification := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		ExpiresAt: time.Now().Add(n.ttl),
	}
	n.current = &notification
	subs := make([]chan Notification, len(n.subscribers))
	copy(subs, n.subscribers)
	n.mu.Unlock()

	// Expiry only clears the slot when no later Notify superseded it.
	time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		if n.current != nil && n.current.ID == notification.ID {
			n.current = nil
		}
		n.mu.Unlock()
	})

	for _, ch := range subs {
		select {
		case ch <- notification:
		default:
		}
	}
}

// Current returns the live notification, or nil after expiry.
func (n *Notifier) Current() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	if time.Now().After(n.current.ExpiresAt) {
		n.current = nil
		return nil
	}
	copied := *n.current
	return &copied
}

// Subscribe registers a buffered channel receiving every emission.
func (n *Notifier) Subscribe() <-chan Notification {
	ch := make(chan Notification, 16)
	n.mu.Lock()
	n.subscribers = append(n.subscribers, ch)
	n.mu.Unlock()
	return ch
}
