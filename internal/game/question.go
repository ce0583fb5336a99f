package game

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sc2ctl/jeopardy/internal/protocol"
)

func (e *Engine) handleSelectClue(cmd cmdSelectClue) {
	if !cmd.admin {
		log.Warn().Str("category", cmd.category).Msg("clue selection rejected: not controller")
		return
	}
	if e.state != StateQuestionIdle {
		log.Warn().Str("state", string(e.state)).Msg("clue selection rejected: wrong state")
		return
	}
	if e.board == nil {
		e.sendError(cmd.conn, "no board loaded")
		return
	}

	clue, err := e.board.FindClue(cmd.category, cmd.value)
	if err != nil {
		log.Warn().Err(err).Msg("clue selection failed")
		return
	}
	if clue.Used {
		// Re-selecting a used clue is rejected silently.
		log.Debug().Str("category", cmd.category).Int("value", cmd.value).Msg("clue already used")
		return
	}
	clue.Used = true

	e.clue = newActiveClue(cmd.category, cmd.value, clue.Text, clue.Answer, clue.DailyDouble)

	if clue.DailyDouble {
		e.state = StateDailyDoubleWager
		log.Info().Str("category", cmd.category).Int("value", cmd.value).Msg("daily double selected")
		e.out.Broadcast(protocol.TopicDailyDouble, protocol.DailyDouble{Category: cmd.category, Value: cmd.value})
		return
	}

	e.state = StateQuestionActive
	log.Info().Str("category", cmd.category).Int("value", cmd.value).Msg("clue displayed")
	e.out.Broadcast(protocol.TopicQuestionDisplay, e.clueDisplay())

	// The buzzer stays closed until narration playback is acknowledged (or
	// the fallback fires).
	audioID := uuid.New().String()
	e.gate.arm(audioID, e.cfg.AudioFallback())
	e.out.Broadcast(protocol.TopicPlayAudio, protocol.PlayAudio{
		URL:     e.narrator.ClueAudioURL(audioID),
		AudioID: audioID,
	})
}

func (e *Engine) handleAudioComplete(audioID string) {
	if !e.gate.ack(audioID) {
		log.Debug().Str("audio_id", audioID).Msg("unmatched audio acknowledgment ignored")
		return
	}
	e.out.Broadcast(protocol.TopicAudioComplete, protocol.AudioComplete{AudioID: audioID})
	if e.state == StateQuestionActive && e.clue != nil {
		e.openBuzzer()
	}
}

func (e *Engine) handleGateExpired(audioID string) {
	if !e.gate.expired(audioID) {
		return
	}
	e.gate.disarm()
	if e.state == StateQuestionActive && e.clue != nil {
		log.Warn().Str("audio_id", audioID).Msg("no playback acknowledgment, opening buzzer on fallback timeout")
		e.openBuzzer()
	}
}

// openBuzzer enters BUZZ_OPEN and starts the buzz-in window.
func (e *Engine) openBuzzer() {
	e.state = StateBuzzOpen
	e.out.Broadcast(protocol.TopicBuzzerStatus, protocol.BuzzerStatus{Active: true})
	e.timers.start(buzzTimer, e.clue.id, e.cfg.BuzzWindow())
}

func (e *Engine) handleBuzz(conn uuid.UUID) {
	p, ok := e.reg.lookupConn(conn)
	if !ok {
		log.Warn().Str("conn", conn.String()).Msg("buzz from unregistered connection ignored")
		return
	}
	if e.state != StateBuzzOpen || e.clue == nil {
		// Stale buzz: the lock is already held or the window is closed.
		log.Debug().Str("contestant", p.name).Msg("stale buzz ignored")
		return
	}
	if e.clue.excluded[p.name] {
		log.Debug().Str("contestant", p.name).Msg("buzz from excluded contestant ignored")
		return
	}

	// First accepted buzz wins; everything below happens before the next
	// command is read.
	e.clue.holder = p.name
	e.state = StatePlayerLocked
	e.timers.stop(buzzTimer)

	log.Info().Str("contestant", p.name).Msg("buzz accepted")
	e.out.Broadcast(protocol.TopicBuzzer, protocol.BuzzerWinner{Contestant: p.name})
	e.out.Broadcast(protocol.TopicBuzzerStatus, protocol.BuzzerStatus{Active: false})

	e.timers.start(answerTimer, e.clue.id, e.cfg.AnswerWindow())
	e.out.Broadcast(protocol.TopicAnswerTimerStart, protocol.AnswerTimerStart{
		Player:  p.name,
		Seconds: e.cfg.AnswerWindowSec,
	})
}

func (e *Engine) handleJudge(cmd cmdJudge) {
	if !cmd.admin {
		log.Warn().Msg("judgment rejected: not controller")
		return
	}

	switch e.state {
	case StatePlayerLocked:
		target := cmd.contestant
		if target == "" {
			target = e.clue.holder
		}
		if target != e.clue.holder {
			log.Warn().Str("contestant", target).Str("holder", e.clue.holder).Msg("judgment rejected: not the buzzer holder")
			return
		}
		e.judge(target, cmd.correct)
	case StateDailyDoubleActive:
		target := cmd.contestant
		if target == "" {
			target = e.clue.assigned
		}
		if target != e.clue.assigned {
			log.Warn().Str("contestant", target).Msg("judgment rejected: not the daily double contestant")
			return
		}
		e.judge(target, cmd.correct)
	case StateFinal:
		e.judgeFinal(cmd.contestant, cmd.correct)
	default:
		log.Warn().Str("state", string(e.state)).Msg("judgment rejected: wrong state")
	}
}

// judge applies a judged outcome for the active clue: exactly one atomic
// score mutation, broadcast as a full snapshot.
func (e *Engine) judge(contestant string, correct bool) {
	e.timers.stop(answerTimer)

	worth := e.clue.worth()
	delta := worth
	if !correct {
		delta = -worth
	}
	newScore := e.scores.apply(contestant, delta)

	log.Info().
		Str("contestant", contestant).
		Bool("correct", correct).
		Int("value", worth).
		Int("new_score", newScore).
		Msg("answer judged")

	e.out.Broadcast(protocol.TopicAnswer, protocol.Answer{
		Contestant: contestant,
		Correct:    correct,
		Value:      worth,
		NewScore:   newScore,
		Answer:     e.clue.answer,
	})
	e.broadcastScores()

	if correct {
		// Correct answer resolves the clue and hands board control to the
		// contestant.
		e.dismissClue()
		e.out.Broadcast(protocol.TopicSelectQuestion, protocol.SelectQuestion{Contestant: contestant})
		return
	}

	if e.state == StateDailyDoubleActive {
		// No buzz race on a daily double; a miss ends the clue.
		e.dismissClue()
		return
	}

	e.clue.excluded[contestant] = true
	e.clue.holder = ""

	if e.remainingContenders() == 0 {
		e.revealAnswerInChat()
		e.dismissClue()
		return
	}
	e.openBuzzer()
}

func (e *Engine) handleDismiss(admin bool) {
	if !admin {
		log.Warn().Msg("dismiss rejected: not controller")
		return
	}
	switch e.state {
	case StateQuestionActive, StateBuzzOpen, StatePlayerLocked, StateDailyDoubleWager, StateDailyDoubleActive:
		e.dismissClue()
	default:
		log.Debug().Str("state", string(e.state)).Msg("dismiss ignored: no active clue")
	}
}

// dismissClue returns to QUESTION_IDLE, cancelling every countdown and the
// audio gate so nothing started by this clue can fire later.
func (e *Engine) dismissClue() {
	e.timers.stopAll()
	e.gate.disarm()
	e.clue = nil
	e.state = StateQuestionIdle

	e.out.Broadcast(protocol.TopicQuestionDismiss, protocol.QuestionDismiss{})
	e.out.Broadcast(protocol.TopicBuzzerStatus, protocol.BuzzerStatus{Active: false})

	e.boardComplete()
}

func (e *Engine) handleTimerExpired(exp timerExpiry) {
	if exp.kind == finalCollect {
		e.handleFinalCollectExpired(exp)
		return
	}

	// Identity check: an expiry whose clue instance has moved on is a
	// stale firing and must be discarded.
	if e.clue == nil || e.clue.id != exp.clueID {
		log.Debug().Str("kind", exp.kind.String()).Msg("stale timer expiry discarded")
		return
	}

	switch exp.kind {
	case buzzTimer:
		if e.state != StateBuzzOpen {
			log.Debug().Str("state", string(e.state)).Msg("buzz timer expiry discarded")
			return
		}
		log.Info().Str("category", e.clue.category).Msg("buzz window expired with no buzz")
		e.revealAnswerInChat()
		e.dismissClue()
	case answerTimer:
		switch e.state {
		case StatePlayerLocked:
			log.Info().Str("contestant", e.clue.holder).Msg("answer window expired, judging incorrect")
			e.judge(e.clue.holder, false)
		case StateDailyDoubleActive:
			log.Info().Str("contestant", e.clue.assigned).Msg("answer window expired, judging incorrect")
			e.judge(e.clue.assigned, false)
		default:
			log.Debug().Str("state", string(e.state)).Msg("answer timer expiry discarded")
		}
	}
}

// revealAnswerInChat announces the correct answer when a clue goes
// unanswered.
func (e *Engine) revealAnswerInChat() {
	msg := e.chat.append("Host", "Time's up! The correct answer was: "+e.clue.answer, true, e.clock.Now())
	e.out.Broadcast(protocol.TopicChatMessage, msg)
}
