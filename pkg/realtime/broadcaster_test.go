package realtime

import (
	"testing"
)

func TestNewBroadcaster(t *testing.T) {
	b := NewBroadcaster()
	if b == nil {
		t.Fatal("NewBroadcaster returned nil")
	}
	if b.Count() != 0 {
		t.Errorf("Count %d, want 0", b.Count())
	}
}

func TestBroadcaster_PublishDeliversToSubscriber(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Message{Event: "snapshot", Data: "{}"})
	got := <-ch
	if got.Event != "snapshot" || got.Data != "{}" {
		t.Errorf("got %+v, want snapshot/{}", got)
	}
}

func TestBroadcaster_PublishDeliversToMultipleSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	defer b.Unsubscribe(ch1)
	defer b.Unsubscribe(ch2)

	b.Publish(Message{Event: "win_triggered"})
	if got := <-ch1; got.Event != "win_triggered" {
		t.Errorf("ch1 got %q, want win_triggered", got.Event)
	}
	if got := <-ch2; got.Event != "win_triggered" {
		t.Errorf("ch2 got %q, want win_triggered", got.Event)
	}
	if b.Count() != 2 {
		t.Errorf("Count %d, want 2", b.Count())
	}
}

func TestBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	_, open := <-ch
	if open {
		t.Error("channel should be closed after Unsubscribe")
	}
	// Second unsubscribe must be a no-op.
	b.Unsubscribe(ch)
}

func TestBroadcaster_PublishDropsWhenSubscriberLags(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for i := 0; i < cap(ch)+5; i++ {
		b.Publish(Message{Event: "reel_stopped"})
	}
	if len(ch) != cap(ch) {
		t.Errorf("buffered %d, want %d", len(ch), cap(ch))
	}
}
