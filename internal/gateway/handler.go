package gateway

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sc2ctl/jeopardy/internal/game"
	"github.com/sc2ctl/jeopardy/internal/protocol"
)

// Handler bridges WebSocket frames and the game engine. Every inbound frame
// is decoded and validated here; the typed result is enqueued into the
// engine's serialized command stream.
type Handler struct {
	manager *Manager
	engine  *game.Engine
}

func NewHandler(manager *Manager, engine *game.Engine) *Handler {
	return &Handler{manager: manager, engine: engine}
}

// ServeWS upgrades the request and runs the connection's pumps. The
// controller connects with ?role=admin; everyone else is a participant.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	admin := r.URL.Query().Get("role") == "admin"

	conn, err := h.manager.upgrade(w, r, admin)
	if err != nil {
		return
	}

	go conn.writePump()
	go conn.readPump(h.dispatch, func(c *Connection) {
		h.engine.Disconnected(c.ID)
	})

	h.engine.Connected(conn.ID)
}

// dispatch routes one inbound frame to the engine. Unknown topics are logged
// and dropped; malformed payloads get an error frame back and the connection
// stays up.
func (h *Handler) dispatch(c *Connection, message []byte) {
	env, err := protocol.Unmarshal(message)
	if err != nil {
		log.Warn().Err(err).Str("connection_id", c.ID.String()).Msg("malformed frame dropped")
		return
	}

	payload, err := protocol.DecodeInbound(env)
	if err != nil {
		if errors.Is(err, protocol.ErrUnknownTopic) {
			log.Warn().Str("topic", env.Topic).Msg("unknown topic dropped")
			return
		}
		log.Warn().Err(err).Str("topic", env.Topic).Msg("invalid payload rejected")
		h.manager.SendTo(c.ID, protocol.TopicError, protocol.ErrorMessage{Message: err.Error()})
		return
	}

	switch p := payload.(type) {
	case *protocol.RegisterPlayer:
		h.engine.Register(c.ID, p.Name)
	case *protocol.SelectBoard:
		h.engine.SelectBoard(p.BoardID)
	case *protocol.Buzz:
		h.engine.Buzz(c.ID)
	case *protocol.QuestionSelect:
		h.engine.SelectClue(c.ID, c.Admin, p.Category, p.Value)
	case *protocol.Judgment:
		h.engine.Judge(c.Admin, p.Contestant, p.Correct)
	case *protocol.QuestionDismiss:
		h.engine.Dismiss(c.Admin)
	case *protocol.DailyDoubleBet:
		h.engine.DailyDoubleBet(c.ID, p.Contestant, p.Bet)
	case *protocol.FinalJeopardyBet:
		h.engine.FinalBet(c.ID, p.Contestant, p.Bet)
	case *protocol.FinalJeopardy:
		h.engine.StartFinal(c.Admin)
	case *protocol.AudioComplete:
		h.engine.AudioComplete(p.AudioID)
	case *protocol.ChatMessage:
		h.engine.Chat(p.Username, p.Message, c.Admin)
	case *protocol.BoardInit:
		// Board content only flows coordinator to participant.
		log.Debug().Str("topic", env.Topic).Msg("inbound board frame ignored")
	default:
		log.Warn().Str("topic", env.Topic).Msgf("unhandled payload type %T", payload)
	}
}
