package mirror

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/sc2ctl/jeopardy/internal/protocol"
)

// ErrReconnectFailed is returned once every reconnect attempt has been
// exhausted.
var ErrReconnectFailed = errors.New("reconnect attempts exhausted")

const (
	reconnectBase     = time.Second
	reconnectCap      = 10 * time.Second
	reconnectAttempts = 5
)

// Client maintains a mirrored game state over a WebSocket subscription,
// reconnecting with exponential backoff when the link drops. On every
// reconnect the local state is discarded; the coordinator's resync frames
// rebuild it.
type Client struct {
	url    string
	dialer *websocket.Dialer
	clock  clockwork.Clock

	mu    sync.RWMutex
	state State

	// OnState, when set, is invoked after every applied frame with a copy
	// of the new state. Called from the client's read goroutine.
	OnState func(State)
}

func NewClient(url string) *Client {
	return &Client{
		url:    url,
		dialer: websocket.DefaultDialer,
		clock:  clockwork.NewRealClock(),
		state:  New(),
	}
}

// NewClientWithClock injects the clock driving reconnect backoff.
func NewClientWithClock(url string, clock clockwork.Clock) *Client {
	c := NewClient(url)
	c.clock = clock
	return c
}

// State returns a snapshot of the mirrored state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Run subscribes and mirrors until the context is cancelled or reconnection
// fails permanently.
func (c *Client) Run(ctx context.Context) error {
	attempt := 0
	for {
		conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			attempt++
			if attempt > reconnectAttempts {
				return ErrReconnectFailed
			}
			delay := backoff(attempt)
			log.Warn().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("dial failed, retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.clock.After(delay):
			}
			continue
		}
		attempt = 0

		// Fresh link: drop everything and rebuild from the resync frames.
		c.reset()
		err = c.readLoop(ctx, conn)
		conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Err(err).Msg("connection lost, reconnecting")
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		env, err := protocol.Unmarshal(message)
		if err != nil {
			log.Warn().Err(err).Msg("malformed frame skipped")
			continue
		}
		c.apply(env)
	}
}

func (c *Client) apply(env protocol.Envelope) {
	c.mu.Lock()
	c.state = Apply(c.state, env)
	snapshot := c.state
	c.mu.Unlock()

	if c.OnState != nil {
		c.OnState(snapshot)
	}
}

func (c *Client) reset() {
	c.mu.Lock()
	c.state = New()
	c.mu.Unlock()
}

// backoff doubles from the base up to the cap, with jitter so a fleet of
// clients does not reconnect in lockstep.
func backoff(attempt int) time.Duration {
	d := reconnectBase << (attempt - 1)
	if d > reconnectCap {
		d = reconnectCap
	}
	jitter := time.Duration(rand.Int63n(int64(d) / 4))
	return d + jitter
}
