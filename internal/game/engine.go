// Package game implements the authoritative trivia coordinator: one
// single-writer state machine that serializes every input (buzzes,
// judgments, wagers, timer expiries, audio acknowledgments, roster changes)
// and broadcasts each resulting state delta before accepting the next input.
package game

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/sc2ctl/jeopardy/internal/config"
	"github.com/sc2ctl/jeopardy/internal/models"
	"github.com/sc2ctl/jeopardy/internal/protocol"
)

// Broadcaster delivers frames to connected participants. Broadcast fans a
// frame out to every connection; SendTo targets one. The engine calls both
// only from its own loop, so all connections observe transitions in the same
// order.
type Broadcaster interface {
	Broadcast(topic string, payload any)
	SendTo(conn uuid.UUID, topic string, payload any)
}

// BoardLoader resolves a board id to its content. Implemented by the board
// store.
type BoardLoader interface {
	Load(name string) (*models.Board, error)
}

// Engine is the game coordinator. All mutable state below the command
// channel is owned by the Run loop.
type Engine struct {
	cfg      config.GameConfig
	clock    clockwork.Clock
	out      Broadcaster
	boards   BoardLoader
	narrator Narrator

	commands chan command
	done     chan struct{}

	state  State
	board  *models.Board
	gen    *revealTracker
	clue   *activeClue
	final  *finalRound
	reg    *registry
	scores *ledger
	chat   *chatLog
	timers *timerBank
	gate   *audioGate
}

type command interface{}

type (
	cmdConnect    struct{ conn uuid.UUID }
	cmdDisconnect struct{ conn uuid.UUID }
	cmdRegister   struct {
		conn uuid.UUID
		name string
	}
	cmdSelectBoard     struct{ boardID string }
	cmdStartGeneration struct{}
	cmdReveal          struct {
		index    int
		category models.Category
	}
	cmdSelectClue struct {
		admin    bool
		conn     uuid.UUID
		category string
		value    int
	}
	cmdBuzz  struct{ conn uuid.UUID }
	cmdJudge struct {
		admin      bool
		contestant string
		correct    bool
	}
	cmdDismiss        struct{ admin bool }
	cmdDailyDoubleBet struct {
		conn       uuid.UUID
		contestant string
		bet        int
	}
	cmdStartFinal struct{ admin bool }
	cmdFinalBet   struct {
		conn       uuid.UUID
		contestant string
		bet        int
	}
	cmdAudioComplete struct{ audioID string }
	cmdGateExpired   struct{ audioID string }
	cmdTimerExpired  struct{ exp timerExpiry }
	cmdChat          struct {
		username string
		message  string
		isAdmin  bool
	}
	cmdPlayAudio struct{ url, audioID string }
)

// NewEngine builds an engine in the lobby state. Run must be started before
// any input has an effect.
func NewEngine(cfg config.GameConfig, clock clockwork.Clock, out Broadcaster, boards BoardLoader, narrator Narrator) *Engine {
	e := &Engine{
		cfg:      cfg,
		clock:    clock,
		out:      out,
		boards:   boards,
		narrator: narrator,
		commands: make(chan command, 256),
		done:     make(chan struct{}),
		state:    StateLobby,
		reg:      newRegistry(),
		scores:   newLedger(),
		chat:     newChatLog(),
	}
	e.timers = newTimerBank(clock, func(exp timerExpiry) {
		e.post(cmdTimerExpired{exp: exp})
	})
	e.gate = newAudioGate(clock, func(audioID string) {
		e.post(cmdGateExpired{audioID: audioID})
	})
	return e
}

// Run processes commands until the context is cancelled. It is the only
// goroutine that touches game state.
func (e *Engine) Run(ctx context.Context) {
	log.Info().Int("quorum", e.cfg.Quorum).Msg("game engine started")
	defer close(e.done)
	defer e.timers.stopAll()
	defer e.gate.disarm()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("game engine shutting down")
			return
		case cmd := <-e.commands:
			e.apply(cmd)
		}
	}
}

// post enqueues a command unless the engine has shut down.
func (e *Engine) post(c command) {
	select {
	case e.commands <- c:
	case <-e.done:
	}
}

func (e *Engine) apply(c command) {
	switch cmd := c.(type) {
	case cmdConnect:
		e.handleConnect(cmd.conn)
	case cmdDisconnect:
		e.handleDisconnect(cmd.conn)
	case cmdRegister:
		e.handleRegister(cmd.conn, cmd.name)
	case cmdSelectBoard:
		e.handleSelectBoard(cmd.boardID)
	case cmdStartGeneration:
		e.handleStartGeneration()
	case cmdReveal:
		e.handleReveal(cmd.index, cmd.category)
	case cmdSelectClue:
		e.handleSelectClue(cmd)
	case cmdBuzz:
		e.handleBuzz(cmd.conn)
	case cmdJudge:
		e.handleJudge(cmd)
	case cmdDismiss:
		e.handleDismiss(cmd.admin)
	case cmdDailyDoubleBet:
		e.handleDailyDoubleBet(cmd)
	case cmdStartFinal:
		e.handleStartFinal(cmd.admin)
	case cmdFinalBet:
		e.handleFinalBet(cmd)
	case cmdAudioComplete:
		e.handleAudioComplete(cmd.audioID)
	case cmdGateExpired:
		e.handleGateExpired(cmd.audioID)
	case cmdTimerExpired:
		e.handleTimerExpired(cmd.exp)
	case cmdChat:
		e.handleChat(cmd)
	case cmdPlayAudio:
		e.out.Broadcast(protocol.TopicPlayAudio, protocol.PlayAudio{URL: cmd.url, AudioID: cmd.audioID})
	default:
		log.Warn().Msgf("unhandled engine command %T", c)
	}
}

// Inputs. Each method enqueues one command into the serialized stream.

func (e *Engine) Connected(conn uuid.UUID)    { e.post(cmdConnect{conn: conn}) }
func (e *Engine) Disconnected(conn uuid.UUID) { e.post(cmdDisconnect{conn: conn}) }

func (e *Engine) Register(conn uuid.UUID, name string) {
	e.post(cmdRegister{conn: conn, name: name})
}

func (e *Engine) SelectBoard(boardID string) { e.post(cmdSelectBoard{boardID: boardID}) }
func (e *Engine) StartBoardGeneration()      { e.post(cmdStartGeneration{}) }

func (e *Engine) RevealCategory(index int, category models.Category) {
	e.post(cmdReveal{index: index, category: category})
}

func (e *Engine) SelectClue(conn uuid.UUID, admin bool, category string, value int) {
	e.post(cmdSelectClue{conn: conn, admin: admin, category: category, value: value})
}

func (e *Engine) Buzz(conn uuid.UUID) { e.post(cmdBuzz{conn: conn}) }

func (e *Engine) Judge(admin bool, contestant string, correct bool) {
	e.post(cmdJudge{admin: admin, contestant: contestant, correct: correct})
}

func (e *Engine) Dismiss(admin bool) { e.post(cmdDismiss{admin: admin}) }

func (e *Engine) DailyDoubleBet(conn uuid.UUID, contestant string, bet int) {
	e.post(cmdDailyDoubleBet{conn: conn, contestant: contestant, bet: bet})
}

func (e *Engine) StartFinal(admin bool) { e.post(cmdStartFinal{admin: admin}) }

func (e *Engine) FinalBet(conn uuid.UUID, contestant string, bet int) {
	e.post(cmdFinalBet{conn: conn, contestant: contestant, bet: bet})
}

func (e *Engine) AudioComplete(audioID string) { e.post(cmdAudioComplete{audioID: audioID}) }

func (e *Engine) Chat(username, message string, isAdmin bool) {
	e.post(cmdChat{username: username, message: message, isAdmin: isAdmin})
}

func (e *Engine) PlayAudio(url, audioID string) {
	e.post(cmdPlayAudio{url: url, audioID: audioID})
}

// Roster and lobby handling.

func (e *Engine) handleConnect(conn uuid.UUID) {
	// Full authoritative resync for every fresh connection: a reconnecting
	// participant rebuilds its mirror from these frames alone.
	if e.board != nil {
		e.out.SendTo(conn, protocol.TopicBoardInit, protocol.BoardInit{
			Categories: e.board.Categories,
			Generating: e.gen != nil,
		})
	}
	e.out.SendTo(conn, protocol.TopicPlayerList, e.playerList())
	e.out.SendTo(conn, protocol.TopicContestantScore, protocol.ContestantScore{Scores: e.scores.snapshot()})
	e.out.SendTo(conn, protocol.TopicGameReady, protocol.GameReady{Ready: e.state != StateLobby})
	e.out.SendTo(conn, protocol.TopicBuzzerStatus, protocol.BuzzerStatus{Active: e.state == StateBuzzOpen})

	if e.clue != nil && e.state != StateDailyDoubleWager {
		e.out.SendTo(conn, protocol.TopicQuestionDisplay, e.clueDisplay())
	}
	if history := e.chat.history(); len(history) > 0 {
		e.out.SendTo(conn, protocol.TopicChatHistory, protocol.ChatHistory{Messages: history})
	}
}

func (e *Engine) handleRegister(conn uuid.UUID, name string) {
	if _, err := e.reg.register(conn, name); err != nil {
		log.Warn().Str("name", name).Msg("registration rejected: duplicate name")
		e.out.SendTo(conn, protocol.TopicRegisterPlayerResponse, protocol.RegisterPlayerResponse{Success: false, Name: name})
		e.sendError(conn, "name already taken: "+name)
		return
	}
	e.scores.ensure(name)

	log.Info().Str("contestant", name).Int("players", e.reg.count()).Msg("player registered")
	e.out.SendTo(conn, protocol.TopicRegisterPlayerResponse, protocol.RegisterPlayerResponse{Success: true, Name: name})
	e.out.Broadcast(protocol.TopicPlayerList, e.playerList())

	if e.state == StateLobby && e.reg.count() >= e.cfg.Quorum {
		if e.board != nil {
			e.state = StateQuestionIdle
		} else {
			e.state = StateBoardSelect
		}
		log.Info().Int("players", e.reg.count()).Msg("quorum reached, game ready")
		e.out.Broadcast(protocol.TopicGameReady, protocol.GameReady{Ready: true})
	}
}

func (e *Engine) handleDisconnect(conn uuid.UUID) {
	p := e.reg.unregister(conn)
	if p == nil {
		return
	}
	log.Info().Str("contestant", p.name).Int("players", e.reg.count()).Msg("player disconnected")
	e.out.Broadcast(protocol.TopicPlayerList, e.playerList())

	// A holder who drops mid-answer forfeits the clue as an incorrect
	// judgment; an assigned daily-double contestant dropping voids the clue.
	switch {
	case e.state == StatePlayerLocked && e.clue != nil && e.clue.holder == p.name:
		e.judge(p.name, false)
	case e.state == StateDailyDoubleActive && e.clue != nil && e.clue.assigned == p.name:
		e.dismissClue()
	case e.state == StateBuzzOpen && e.clue != nil && e.remainingContenders() == 0:
		e.dismissClue()
	case e.state == StateFinal && e.final != nil && !e.final.revealed && e.final.allBetsIn(e.reg.roster()):
		// The drop may have been the last outstanding bet.
		e.revealFinalClue()
	}
}

func (e *Engine) handleChat(cmd cmdChat) {
	username := cmd.username
	if username == "" {
		username = "Anonymous"
	}
	msg := e.chat.append(username, cmd.message, cmd.isAdmin, e.clock.Now())
	e.out.Broadcast(protocol.TopicChatMessage, msg)
}

// playerList builds the roster frame with authoritative scores.
func (e *Engine) playerList() protocol.PlayerList {
	players := make(map[string]protocol.PlayerInfo, e.reg.count())
	for _, name := range e.reg.roster() {
		players[name] = protocol.PlayerInfo{Score: e.scores.score(name)}
	}
	return protocol.PlayerList{Players: players}
}

func (e *Engine) clueDisplay() protocol.QuestionDisplay {
	return protocol.QuestionDisplay{
		Category:    e.clue.category,
		Value:       e.clue.worth(),
		Text:        e.clue.text,
		DailyDouble: e.clue.dailyDouble,
		Used:        true,
		Contestant:  e.clue.assigned,
	}
}

func (e *Engine) sendError(conn uuid.UUID, msg string) {
	e.out.SendTo(conn, protocol.TopicError, protocol.ErrorMessage{Message: msg})
}

// broadcastScores emits the authoritative score snapshot after a ledger
// mutation.
func (e *Engine) broadcastScores() {
	e.out.Broadcast(protocol.TopicContestantScore, protocol.ContestantScore{Scores: e.scores.snapshot()})
}

// remainingContenders counts connected participants still eligible to buzz
// on the active clue.
func (e *Engine) remainingContenders() int {
	remaining := 0
	for _, name := range e.reg.roster() {
		if !e.clue.excluded[name] {
			remaining++
		}
	}
	return remaining
}
