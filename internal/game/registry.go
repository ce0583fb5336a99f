package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrDuplicateName rejects a registration whose name collides, case
// sensitively, with a still-connected participant.
var ErrDuplicateName = errors.New("name already registered")

type participant struct {
	name   string
	conn   uuid.UUID
	joined int // join sequence, for stable roster order
}

// registry maps connections to registered participants. It is owned by the
// engine loop and must not be touched from other goroutines.
type registry struct {
	byConn map[uuid.UUID]*participant
	byName map[string]*participant
	seq    int
}

func newRegistry() *registry {
	return &registry{
		byConn: make(map[uuid.UUID]*participant),
		byName: make(map[string]*participant),
	}
}

func (r *registry) register(conn uuid.UUID, name string) (*participant, error) {
	if _, taken := r.byName[name]; taken {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	r.seq++
	p := &participant{name: name, conn: conn, joined: r.seq}
	r.byConn[conn] = p
	r.byName[name] = p
	return p, nil
}

// unregister releases the seat for a connection. Returns the participant that
// held it, or nil if the connection never registered.
func (r *registry) unregister(conn uuid.UUID) *participant {
	p, ok := r.byConn[conn]
	if !ok {
		return nil
	}
	delete(r.byConn, conn)
	delete(r.byName, p.name)
	return p
}

func (r *registry) lookupConn(conn uuid.UUID) (*participant, bool) {
	p, ok := r.byConn[conn]
	return p, ok
}

func (r *registry) lookupName(name string) (*participant, bool) {
	p, ok := r.byName[name]
	return p, ok
}

func (r *registry) count() int {
	return len(r.byName)
}

// roster returns connected participant names in join order.
func (r *registry) roster() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && r.byName[names[j-1]].joined > r.byName[names[j]].joined; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}
