// Package notify carries fire-and-forget change events from the sync and
// session layers to connected clients. Publishing never blocks and never
// reports delivery: slow subscribers simply miss events.
package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Event types published by the core services.
const (
	EventGraphUpdated   = "graph.updated"
	EventSessionStarted = "session.started"
	EventSessionPaused  = "session.paused"
	EventSessionResumed = "session.resumed"
	EventSessionStopped = "session.stopped"
	EventEntryAdded     = "entry.added"
)

// Event is one dashboard change notification.
type Event struct {
	Type        string    `json:"type"`
	Repository  string    `json:"repository,omitempty"`
	IssueNumber int       `json:"issueNumber,omitempty"`
	UserID      string    `json:"userId,omitempty"`
	Time        time.Time `json:"time"`
	Payload     any       `json:"payload,omitempty"`
}

// Notifier is the push channel the core publishes into.
type Notifier interface {
	Publish(Event)
}

// Broadcaster fans events out to in-process subscribers over buffered
// channels. Sends are non-blocking; a full subscriber drops the event.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	logger *slog.Logger
}

// NewBroadcaster creates an empty Broadcaster.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		subs:   make(map[int]chan Event),
		logger: logger,
	}
}

// Subscribe registers a listener. The returned cancel func removes it and
// closes the channel.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber that has buffer room.
func (b *Broadcaster) Publish(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.logger.Warn("dropping event for slow subscriber", "subscriber", id, "type", ev.Type)
		}
	}
}

// LogNotifier logs events instead of delivering them; used by the CLI
// where no clients are connected.
type LogNotifier struct {
	Logger *slog.Logger
}

// Publish implements Notifier.
func (n *LogNotifier) Publish(ev Event) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("event",
		"type", ev.Type, "repository", ev.Repository,
		"issue", ev.IssueNumber, "user", ev.UserID)
}
