package realtime

import (
	"testing"
)

func TestBroadcaster_PublishDeliversToEverySubscriber(t *testing.T) {
	b := NewBroadcaster[string]()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	defer b.Unsubscribe(ch1)
	defer b.Unsubscribe(ch2)

	b.Publish("results")
	if got := <-ch1; got != "results" {
		t.Errorf("ch1 got %q, want results", got)
	}
	if got := <-ch2; got != "results" {
		t.Errorf("ch2 got %q, want results", got)
	}
}

func TestBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster[string]()
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	if _, open := <-ch; open {
		t.Error("channel should be closed after Unsubscribe")
	}
	if n := b.Subscribers(); n != 0 {
		t.Errorf("Subscribers %d, want 0", n)
	}
	// Second call is a no-op.
	b.Unsubscribe(ch)
}

func TestBroadcaster_PublishDropsWhenSubscriberIsFull(t *testing.T) {
	b := NewBroadcaster[int]()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for i := 0; i < subscriberBuffer+5; i++ {
		b.Publish(i)
	}
	if len(ch) != subscriberBuffer {
		t.Errorf("buffered %d events, want %d", len(ch), subscriberBuffer)
	}
	if got := <-ch; got != 0 {
		t.Errorf("first event %d, want 0", got)
	}
}
