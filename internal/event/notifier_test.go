package event

import (
	"errors"
	"testing"
)

func TestSubscribeNilHandler(t *testing.T) {
	n := NewNotifier()

	_, err := n.Subscribe(MoveTo, nil)
	if !errors.Is(err, ErrNilHandler) {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
}

func TestFireDeliversInRegistrationOrder(t *testing.T) {
	n := NewNotifier()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		if _, err := n.Subscribe(MoveTo, func(Event) bool {
			order = append(order, i)
			return true
		}); err != nil {
			t.Fatalf("subscribe failed: %v", err)
		}
	}

	n.Fire(New(MoveTo, At(0)))

	if len(order) != 5 {
		t.Fatalf("expected 5 deliveries, got %d", len(order))
	}
	for i, got := range order {
		if got != i {
			t.Errorf("delivery %d went to listener %d", i, got)
		}
	}
}

func TestFireOnlyMatchingType(t *testing.T) {
	n := NewNotifier()

	fired := false
	if _, err := n.Subscribe(Discard, func(Event) bool {
		fired = true
		return true
	}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	n.Fire(New(Modified, At(0)))

	if fired {
		t.Error("listener for Discard received a Modified event")
	}
}

func TestCancellableAggregateVote(t *testing.T) {
	n := NewNotifier()

	var ran []string
	mustSubscribe(t, n, BeforeDiscard, func(Event) bool { ran = append(ran, "a"); return true })
	mustSubscribe(t, n, BeforeDiscard, func(Event) bool { ran = append(ran, "b"); return false })
	mustSubscribe(t, n, BeforeDiscard, func(Event) bool { ran = append(ran, "c"); return true })

	if n.Fire(New(BeforeDiscard, At(1))) {
		t.Error("expected fire to report cancellation")
	}

	// No short-circuit: listeners after the cancelling one still run.
	if len(ran) != 3 {
		t.Errorf("expected all 3 listeners to run, got %v", ran)
	}
}

func TestNonCancellableIgnoresVotes(t *testing.T) {
	n := NewNotifier()

	mustSubscribe(t, n, MoveTo, func(Event) bool { return false })

	if !n.Fire(New(MoveTo, At(0))) {
		t.Error("non-cancellable event must always proceed")
	}
}

func TestUnsubscribe(t *testing.T) {
	n := NewNotifier()

	count := 0
	sub := mustSubscribe(t, n, MoveTo, func(Event) bool { count++; return true })

	n.Fire(New(MoveTo, At(0)))
	if err := n.Unsubscribe(sub); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}
	n.Fire(New(MoveTo, At(0)))

	if count != 1 {
		t.Errorf("expected 1 delivery, got %d", count)
	}

	if err := n.Unsubscribe(sub); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestReentrantSubscribe(t *testing.T) {
	n := NewNotifier()

	mustSubscribe(t, n, MoveTo, func(Event) bool {
		// Subscribing from inside a handler must not corrupt dispatch.
		_, _ = n.Subscribe(MoveTo, func(Event) bool { return true })
		return true
	})

	n.Fire(New(MoveTo, At(0)))
	n.Fire(New(MoveTo, At(0)))

	stats := n.Stats()
	if stats.EventsFired != 2 {
		t.Errorf("expected 2 events fired, got %d", stats.EventsFired)
	}
	// First fire runs 1 handler, second runs 2.
	if stats.HandlersRun != 3 {
		t.Errorf("expected 3 handler runs, got %d", stats.HandlersRun)
	}
}

func TestStatsCountsCancellations(t *testing.T) {
	n := NewNotifier()
	mustSubscribe(t, n, BeforeOverwrite, func(Event) bool { return false })

	n.Fire(New(BeforeOverwrite, At(0)))

	if got := n.Stats().EventsCancelled; got != 1 {
		t.Errorf("expected 1 cancellation, got %d", got)
	}
}

func mustSubscribe(t *testing.T, n *Notifier, typ Type, h Handler) Subscription {
	t.Helper()
	sub, err := n.Subscribe(typ, h)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	return sub
}
