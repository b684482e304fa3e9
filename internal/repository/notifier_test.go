package repository

import (
	"testing"
	"time"
)

func TestNotifier_FanOut(t *testing.T) {
	n := NewNotifier()

	first, cancelFirst := n.Subscribe()
	second, cancelSecond := n.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	n.Publish(ChangeEvent{Kind: ChangeInsert, ID: "a"})

	for name, ch := range map[string]<-chan ChangeEvent{"first": first, "second": second} {
		select {
		case ev := <-ch:
			if ev.Kind != ChangeInsert || ev.ID != "a" {
				t.Errorf("%s subscriber got %+v", name, ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s subscriber got nothing", name)
		}
	}
}

func TestNotifier_UnsubscribeClosesChannel(t *testing.T) {
	n := NewNotifier()

	ch, cancel := n.Subscribe()
	cancel()
	cancel() // safe to call twice

	if _, ok := <-ch; ok {
		t.Error("channel still open after cancel")
	}

	// Publishing after unsubscribe must not panic.
	n.Publish(ChangeEvent{Kind: ChangeDelete, ID: "gone"})
}

func TestNotifier_SlowSubscriberDoesNotBlock(t *testing.T) {
	n := NewNotifier()

	_, cancel := n.Subscribe()
	defer cancel()

	// Overflow the buffer; Publish must never block even with no reader.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			n.Publish(ChangeEvent{Kind: ChangeUpdate})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}
