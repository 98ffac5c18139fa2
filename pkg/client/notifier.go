package client

import "sync"

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one message published on the bus, typically surfaced
// to a person as a toast or log line.
type Notification struct {
	Level   Level
	Message string
}

// Notifier is a small subscribe/publish bus for mutation outcomes.
// Subscribers are invoked synchronously in Publish; handlers should be
// quick and must not call back into the notifier.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Notification)
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Notification))}
}

// Subscribe registers fn for every future notification and returns a
// function that removes the subscription.
func (n *Notifier) Subscribe(fn func(Notification)) (unsubscribe func()) {
	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = fn
	n.mu.Unlock()
	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

// Publish delivers msg to every current subscriber.
func (n *Notifier) Publish(msg Notification) {
	n.mu.Lock()
	fns := make([]func(Notification), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn(msg)
	}
}

func (n *Notifier) success(msg string) { n.Publish(Notification{Level: LevelSuccess, Message: msg}) }
func (n *Notifier) failure(msg string) { n.Publish(Notification{Level: LevelError, Message: msg}) }
