package stream

import (
	"fmt"
	"testing"
	"time"
)

func waitForHubCount(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Count() != want {
		if time.Now().After(deadline) {
			t.Fatalf("hub count = %d, want %d", h.Count(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_EvictsSlowSubscriber(t *testing.T) {
	h := newHub()
	defer h.close()

	fast := &subscriber{id: "fast", send: make(chan []byte, sendQueue)}
	slow := &subscriber{id: "slow", send: make(chan []byte, 1)}
	h.add(fast)
	h.add(slow)
	waitForHubCount(t, h, 2)

	// Nobody drains slow's queue: once it is full the next broadcast must
	// kick the subscriber instead of stalling the loop.
	deadline := time.Now().Add(2 * time.Second)
	for i := 0; h.Count() != 1; i++ {
		if time.Now().After(deadline) {
			t.Fatal("slow subscriber never evicted")
		}
		h.Broadcast(fmt.Appendf(nil, `{"n":%d}`, i))
		time.Sleep(5 * time.Millisecond)
	}

	// The evicted subscriber's channel is closed behind its queued frames.
	closed := false
	drain := time.After(time.Second)
	for !closed {
		select {
		case _, ok := <-slow.send:
			closed = !ok
		case <-drain:
			t.Fatal("send channel not closed after eviction")
		}
	}

	// The healthy subscriber is untouched and still receives frames.
	select {
	case msg, ok := <-fast.send:
		if !ok {
			t.Fatal("fast subscriber's channel closed")
		}
		if len(msg) == 0 {
			t.Error("fast subscriber received empty frame")
		}
	case <-time.After(time.Second):
		t.Fatal("fast subscriber received nothing")
	}
}
