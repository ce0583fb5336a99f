package game

// ledger holds per-contestant scores. Scores survive disconnects: a
// contestant re-registering under the same name picks their balance back up.
// Mutations happen only inside the engine loop, one judged event at a time.
type ledger struct {
	scores map[string]int
}

func newLedger() *ledger {
	return &ledger{scores: make(map[string]int)}
}

// ensure creates a zero balance for a new name. Existing balances are kept.
func (l *ledger) ensure(name string) {
	if _, ok := l.scores[name]; !ok {
		l.scores[name] = 0
	}
}

// apply adds delta to the contestant's balance and returns the new score.
// There is no floor; scores go negative.
func (l *ledger) apply(name string, delta int) int {
	l.scores[name] += delta
	return l.scores[name]
}

func (l *ledger) score(name string) int {
	return l.scores[name]
}

// snapshot returns a copy of every balance. Broadcasts always carry the full
// snapshot so a reconnecting participant resynchronizes without replay.
func (l *ledger) snapshot() map[string]int {
	out := make(map[string]int, len(l.scores))
	for name, score := range l.scores {
		out[name] = score
	}
	return out
}
