package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type timerKind int

const (
	buzzTimer timerKind = iota
	answerTimer
	finalCollect
)

func (k timerKind) String() string {
	switch k {
	case buzzTimer:
		return "buzz"
	case answerTimer:
		return "answer"
	default:
		return "final_collect"
	}
}

// timerExpiry is fed back into the engine command stream when a countdown
// fires. The engine discards it unless clueID still matches the active clue
// instance, so a timer that loses the race with a transition is a no-op.
type timerExpiry struct {
	kind   timerKind
	clueID uuid.UUID
}

// timerBank runs the cancellable countdowns: the buzz-in window, the answer
// window and the final bet collection window. At most one of each is active.
// start and stop are only called from the engine loop.
type timerBank struct {
	clock   clockwork.Clock
	fire    func(timerExpiry)
	handles map[timerKind]*timerHandle
}

type timerHandle struct {
	clueID uuid.UUID
	stop   chan struct{}
}

func newTimerBank(clock clockwork.Clock, fire func(timerExpiry)) *timerBank {
	return &timerBank{
		clock:   clock,
		fire:    fire,
		handles: make(map[timerKind]*timerHandle),
	}
}

// start arms the countdown of the given kind for a clue instance, replacing
// any countdown of that kind still running.
func (b *timerBank) start(kind timerKind, clueID uuid.UUID, d time.Duration) {
	b.stop(kind)

	h := &timerHandle{clueID: clueID, stop: make(chan struct{})}
	b.handles[kind] = h

	timer := b.clock.NewTimer(d)
	go func() {
		defer timer.Stop()
		select {
		case <-timer.Chan():
			b.fire(timerExpiry{kind: kind, clueID: clueID})
		case <-h.stop:
		}
	}()
}

// stop cancels the countdown of the given kind if one is armed.
func (b *timerBank) stop(kind timerKind) {
	if h, ok := b.handles[kind]; ok {
		close(h.stop)
		delete(b.handles, kind)
	}
}

func (b *timerBank) stopAll() {
	b.stop(buzzTimer)
	b.stop(answerTimer)
	b.stop(finalCollect)
}
