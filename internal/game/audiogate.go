package game

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// audioGate withholds buzzer activation until narration playback is
// acknowledged. Each narration carries a correlation id; only the matching
// acknowledgment opens the gate. If no acknowledgment ever arrives, a bounded
// fallback timeout opens the buzzer anyway so the game cannot stall.
type audioGate struct {
	clock   clockwork.Clock
	fire    func(audioID string) // fallback expiry, fed into the engine loop
	pending *gateHandle
}

type gateHandle struct {
	audioID string
	stop    chan struct{}
}

func newAudioGate(clock clockwork.Clock, fire func(audioID string)) *audioGate {
	return &audioGate{clock: clock, fire: fire}
}

// arm registers the correlation id to wait for and starts the fallback
// countdown. A previously armed gate is replaced.
func (g *audioGate) arm(audioID string, fallback time.Duration) {
	g.disarm()

	h := &gateHandle{audioID: audioID, stop: make(chan struct{})}
	g.pending = h

	timer := g.clock.NewTimer(fallback)
	go func() {
		defer timer.Stop()
		select {
		case <-timer.Chan():
			g.fire(audioID)
		case <-h.stop:
		}
	}()
}

// ack resolves a playback acknowledgment. It returns true only for the
// correlation id currently armed; duplicates and strays return false.
func (g *audioGate) ack(audioID string) bool {
	if g.pending == nil || g.pending.audioID != audioID {
		return false
	}
	g.disarm()
	return true
}

// expired reports whether a fallback expiry still refers to the armed id.
func (g *audioGate) expired(audioID string) bool {
	return g.pending != nil && g.pending.audioID == audioID
}

func (g *audioGate) disarm() {
	if g.pending != nil {
		close(g.pending.stop)
		g.pending = nil
	}
}
