package game

import "testing"

func TestLedgerApplyGoesNegative(t *testing.T) {
	l := newLedger()
	l.ensure("alice")

	if got := l.apply("alice", -400); got != -400 {
		t.Fatalf("score = %d, want -400", got)
	}
	if got := l.apply("alice", 1000); got != 600 {
		t.Fatalf("score = %d, want 600", got)
	}
}

func TestLedgerEnsureKeepsBalance(t *testing.T) {
	l := newLedger()
	l.ensure("bob")
	l.apply("bob", 800)

	// Re-registration under the same name must not reset the balance.
	l.ensure("bob")
	if got := l.score("bob"); got != 800 {
		t.Fatalf("score = %d after ensure, want 800", got)
	}
}

func TestLedgerSnapshotIsACopy(t *testing.T) {
	l := newLedger()
	l.ensure("carol")

	snap := l.snapshot()
	snap["carol"] = 9999

	if got := l.score("carol"); got != 0 {
		t.Fatalf("mutating the snapshot changed the ledger: score = %d", got)
	}
}
