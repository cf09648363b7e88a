package services

import (
	"testing"
	"time"
)

func timeout(t *testing.T) <-chan time.Time {
	t.Helper()
	return time.After(2 * time.Second)
}

func TestHubEmitToUser(t *testing.T) {
	h := NewHub()
	chA := h.Subscribe("user-a")
	chB := h.Subscribe("user-b")

	h.EmitToUser("user-a", Event{Type: EventMemberUpdated})

	select {
	case ev := <-chA:
		if ev.Type != EventMemberUpdated {
			t.Errorf("event type = %q, want %q", ev.Type, EventMemberUpdated)
		}
	default:
		t.Fatal("subscriber for user-a received nothing")
	}

	select {
	case ev := <-chB:
		t.Fatalf("user-b received %v, want nothing", ev)
	default:
	}
}

func TestHubBroadcastReachesAllConnections(t *testing.T) {
	h := NewHub()
	chA := h.Subscribe("user-a")
	chA2 := h.Subscribe("user-a")
	chB := h.Subscribe("user-b")

	h.Broadcast(Event{Type: EventSessionCreated})

	for i, ch := range []chan Event{chA, chA2, chB} {
		select {
		case <-ch:
		default:
			t.Errorf("connection %d missed the broadcast", i)
		}
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe("user-a")
	h.Unsubscribe("user-a", ch)

	if _, open := <-ch; open {
		t.Error("channel still open after unsubscribe")
	}
	if h.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", h.ClientCount())
	}

	// Emitting to a fully unsubscribed user must not panic.
	h.EmitToUser("user-a", Event{Type: EventMemberUpdated})
}

func TestHubSlowConsumerDoesNotBlock(t *testing.T) {
	h := NewHub()
	h.Subscribe("user-a")

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			h.EmitToUser("user-a", Event{Type: EventAttendanceMarked})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-timeout(t):
		t.Fatal("publisher blocked on a slow consumer")
	}
}
