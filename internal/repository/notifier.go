package repository

import "sync"

// ChangeKind identifies what happened to a row.
type ChangeKind int

const (
	ChangeInsert ChangeKind = iota
	ChangeUpdate
	ChangeDelete
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeInsert:
		return "insert"
	case ChangeUpdate:
		return "update"
	case ChangeDelete:
		return "delete"
	}
	return "unknown"
}

// ChangeEvent is a coarse row-changed notification. Consumers re-read the
// full set; no per-row diff is carried.
type ChangeEvent struct {
	Kind ChangeKind
	ID   string
}

// Notifier fans change events out to subscriber channels. A slow subscriber
// loses events rather than blocking the writer; that is acceptable because
// consumers re-fetch everything on any event.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan ChangeEvent
	next int
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan ChangeEvent)}
}

// Subscribe returns a channel of change events and a cancel function that
// releases the channel. Cancel is safe to call more than once.
func (n *Notifier) Subscribe() (<-chan ChangeEvent, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan ChangeEvent, 16)
	n.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			if sub, ok := n.subs[id]; ok {
				delete(n.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber without blocking.
func (n *Notifier) Publish(ev ChangeEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
