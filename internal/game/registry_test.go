package game

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestRegistryRejectsDuplicateName(t *testing.T) {
	r := newRegistry()
	if _, err := r.register(uuid.New(), "alice"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := r.register(uuid.New(), "alice"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("err = %v, want ErrDuplicateName", err)
	}
}

func TestRegistryNameFreedAfterUnregister(t *testing.T) {
	r := newRegistry()
	conn := uuid.New()
	r.register(conn, "bob")
	r.unregister(conn)

	if _, err := r.register(uuid.New(), "bob"); err != nil {
		t.Fatalf("re-registration after disconnect failed: %v", err)
	}
}

func TestRegistryRosterJoinOrder(t *testing.T) {
	r := newRegistry()
	for _, name := range []string{"carol", "alice", "bob"} {
		r.register(uuid.New(), name)
	}

	roster := r.roster()
	want := []string{"carol", "alice", "bob"}
	if len(roster) != len(want) {
		t.Fatalf("roster has %d names, want %d", len(roster), len(want))
	}
	for i := range want {
		if roster[i] != want[i] {
			t.Fatalf("roster = %v, want %v", roster, want)
		}
	}
}

func TestRegistryUnregisterUnknownConn(t *testing.T) {
	r := newRegistry()
	if p := r.unregister(uuid.New()); p != nil {
		t.Fatalf("unregister of unknown conn returned %v", p)
	}
}
