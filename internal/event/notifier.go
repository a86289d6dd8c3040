package event

import "sync"

// Handler receives an event. For a cancellable type, returning false is a
// vote to cancel; for any other type the return value is ignored.
type Handler func(Event) bool

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	id  uint64
	typ Type
}

type registration struct {
	id uint64
	fn Handler
}

// Notifier dispatches events synchronously to registered listeners.
//
// Listeners for a type run in registration order, in the firer's goroutine,
// before Fire returns. All listeners run even after one votes to cancel; the
// aggregate verdict is reported by Fire's return value.
type Notifier struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Type][]registration

	fired       uint64
	cancelled   uint64
	handlersRun uint64
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[Type][]registration)}
}

// Subscribe registers a handler for the given type. Handlers are delivered
// in FIFO registration order.
func (n *Notifier) Subscribe(t Type, h Handler) (Subscription, error) {
	if h == nil {
		return Subscription{}, ErrNilHandler
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	n.subs[t] = append(n.subs[t], registration{id: n.nextID, fn: h})
	return Subscription{id: n.nextID, typ: t}, nil
}

// Unsubscribe removes a previously registered handler.
func (n *Notifier) Unsubscribe(sub Subscription) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	regs := n.subs[sub.typ]
	for i, reg := range regs {
		if reg.id == sub.id {
			n.subs[sub.typ] = append(regs[:i:i], regs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Fire delivers the event to every listener registered for its type and
// reports whether the operation may proceed. For a non-cancellable type the
// result is always true. For a cancellable type the result is false if any
// listener returned false; listeners after a cancelling one still run.
func (n *Notifier) Fire(e Event) bool {
	n.mu.Lock()
	regs := n.subs[e.Type]
	// Snapshot so handlers may subscribe or unsubscribe re-entrantly.
	pending := make([]registration, len(regs))
	copy(pending, regs)
	n.fired++
	n.mu.Unlock()

	proceed := true
	for _, reg := range pending {
		ok := reg.fn(e)
		n.mu.Lock()
		n.handlersRun++
		n.mu.Unlock()
		if !ok {
			proceed = false
		}
	}

	if !e.Type.Cancellable() {
		return true
	}
	if !proceed {
		n.mu.Lock()
		n.cancelled++
		n.mu.Unlock()
	}
	return proceed
}

// Stats reports dispatch counters.
type Stats struct {
	// EventsFired is the number of Fire calls.
	EventsFired uint64

	// EventsCancelled is the number of cancellable events vetoed.
	EventsCancelled uint64

	// HandlersRun is the total number of handler invocations.
	HandlersRun uint64
}

// Stats returns current dispatch counters.
func (n *Notifier) Stats() Stats {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Stats{
		EventsFired:     n.fired,
		EventsCancelled: n.cancelled,
		HandlersRun:     n.handlersRun,
	}
}
