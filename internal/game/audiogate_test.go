package game

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestAudioGateAckMatchesCorrelationID(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gate := newAudioGate(clock, func(string) {})

	gate.arm("clip-1", 8*time.Second)

	if gate.ack("clip-0") {
		t.Fatal("ack accepted for the wrong correlation id")
	}
	if !gate.ack("clip-1") {
		t.Fatal("ack rejected for the armed correlation id")
	}
	if gate.ack("clip-1") {
		t.Fatal("duplicate ack accepted")
	}
}

func TestAudioGateFallbackFires(t *testing.T) {
	clock := clockwork.NewFakeClock()
	fired := make(chan string, 1)
	gate := newAudioGate(clock, func(id string) { fired <- id })

	gate.arm("clip-2", 8*time.Second)
	clock.Advance(8 * time.Second)

	select {
	case id := <-fired:
		if id != "clip-2" {
			t.Fatalf("fallback fired for %q, want clip-2", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("fallback never fired")
	}
}

func TestAudioGateAckCancelsFallback(t *testing.T) {
	clock := clockwork.NewFakeClock()
	fired := make(chan string, 1)
	gate := newAudioGate(clock, func(id string) { fired <- id })

	gate.arm("clip-3", 8*time.Second)
	gate.ack("clip-3")
	clock.Advance(10 * time.Second)

	select {
	case <-fired:
		t.Fatal("fallback fired after acknowledgment")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestAudioGateRearmReplacesPending(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gate := newAudioGate(clock, func(string) {})

	gate.arm("old", 8*time.Second)
	gate.arm("new", 8*time.Second)

	if gate.ack("old") {
		t.Fatal("ack accepted for a replaced correlation id")
	}
	if !gate.ack("new") {
		t.Fatal("ack rejected for the current correlation id")
	}
}
