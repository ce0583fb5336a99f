package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sc2ctl/jeopardy/internal/protocol"
)

func (e *Engine) handleDailyDoubleBet(cmd cmdDailyDoubleBet) {
	if e.state != StateDailyDoubleWager || e.clue == nil {
		log.Warn().Str("state", string(e.state)).Msg("daily double bet rejected: no wager pending")
		return
	}
	if _, ok := e.reg.lookupName(cmd.contestant); !ok {
		e.sendError(cmd.conn, "unknown contestant: "+cmd.contestant)
		return
	}

	max := e.wagerCeiling(cmd.contestant)
	if cmd.bet < e.cfg.MinWager || cmd.bet > max {
		e.sendError(cmd.conn, fmt.Sprintf("wager must be between %d and %d", e.cfg.MinWager, max))
		return
	}

	e.clue.wager = cmd.bet
	e.clue.assigned = cmd.contestant
	e.state = StateDailyDoubleActive

	log.Info().Str("contestant", cmd.contestant).Int("bet", cmd.bet).Msg("daily double wager placed")
	e.out.Broadcast(protocol.TopicDailyDoubleBetResponse, protocol.DailyDoubleBetResponse{
		Question:   e.clueDisplay(),
		Bet:        cmd.bet,
		Contestant: cmd.contestant,
	})

	// A daily double has no buzz race: the wagering contestant answers
	// directly under the answer countdown.
	e.timers.start(answerTimer, e.clue.id, e.cfg.AnswerWindow())
	e.out.Broadcast(protocol.TopicAnswerTimerStart, protocol.AnswerTimerStart{
		Player:  cmd.contestant,
		Seconds: e.cfg.AnswerWindowSec,
	})
}

// wagerCeiling is the largest allowed daily double wager: the contestant's
// score, or the floor for anyone below it.
func (e *Engine) wagerCeiling(contestant string) int {
	score := e.scores.score(contestant)
	if score < e.cfg.WagerFloor {
		return e.cfg.WagerFloor
	}
	return score
}

func (e *Engine) handleStartFinal(admin bool) {
	if !admin {
		log.Warn().Msg("final round rejected: not controller")
		return
	}
	if e.state != StateQuestionIdle || e.board == nil {
		log.Warn().Str("state", string(e.state)).Msg("final round rejected: wrong state")
		return
	}
	if e.board.Final == nil {
		log.Warn().Msg("final round rejected: board has no final clue")
		e.finishGame()
		return
	}
	e.enterFinal()
}

// enterFinal starts the final round: the category is announced and the bet
// collection window opens. Contestants who never submit are defaulted to a
// zero bet when the window closes.
func (e *Engine) enterFinal() {
	fc := e.board.Final
	e.final = newFinalRound(fc.Category, fc.Clue, fc.Answer)
	e.state = StateFinal

	log.Info().Str("category", fc.Category).Msg("final round started")
	e.out.Broadcast(protocol.TopicFinalJeopardy, protocol.FinalJeopardy{
		Phase:    protocol.FinalPhaseCategory,
		Category: fc.Category,
	})
	e.out.Broadcast(protocol.TopicFinalJeopardy, protocol.FinalJeopardy{
		Phase:    protocol.FinalPhaseBet,
		Category: fc.Category,
	})
	e.timers.start(finalCollect, e.final.id, e.cfg.FinalCollect())
}

func (e *Engine) handleFinalBet(cmd cmdFinalBet) {
	if e.state != StateFinal || e.final == nil || e.final.revealed {
		log.Warn().Str("contestant", cmd.contestant).Msg("final bet rejected: no collection in progress")
		return
	}
	if _, ok := e.reg.lookupName(cmd.contestant); !ok {
		e.sendError(cmd.conn, "unknown contestant: "+cmd.contestant)
		return
	}
	if _, dup := e.final.bets[cmd.contestant]; dup {
		log.Debug().Str("contestant", cmd.contestant).Msg("duplicate final bet ignored")
		return
	}

	max := e.scores.score(cmd.contestant)
	if max < 0 {
		max = 0
	}
	if cmd.bet < 0 || cmd.bet > max {
		e.sendError(cmd.conn, fmt.Sprintf("bet must be between 0 and %d", max))
		return
	}

	e.final.bets[cmd.contestant] = cmd.bet
	log.Info().Str("contestant", cmd.contestant).Int("bet", cmd.bet).Msg("final bet placed")

	if e.final.allBetsIn(e.reg.roster()) {
		e.revealFinalClue()
	}
}

func (e *Engine) handleFinalCollectExpired(exp timerExpiry) {
	if e.final == nil || e.final.id != exp.clueID || e.final.revealed {
		log.Debug().Msg("stale final collection expiry discarded")
		return
	}
	log.Info().Msg("final bet collection window closed")
	for _, name := range e.reg.roster() {
		if _, ok := e.final.bets[name]; !ok {
			e.final.bets[name] = 0
		}
	}
	e.revealFinalClue()
}

func (e *Engine) revealFinalClue() {
	e.timers.stop(finalCollect)
	e.final.revealed = true

	log.Info().Msg("final clue revealed")
	e.out.Broadcast(protocol.TopicFinalJeopardy, protocol.FinalJeopardy{
		Phase:    protocol.FinalPhaseClue,
		Category: e.final.category,
		Clue:     e.final.clue,
	})
}

// judgeFinal applies one contestant's final judgment. Once every remaining
// contestant has been judged the results are published and the game ends.
func (e *Engine) judgeFinal(contestant string, correct bool) {
	if e.final == nil || !e.final.revealed {
		log.Warn().Msg("final judgment rejected: clue not revealed")
		return
	}
	bet, ok := e.final.bets[contestant]
	if !ok {
		log.Warn().Str("contestant", contestant).Msg("final judgment rejected: no bet on record")
		return
	}
	if e.final.judged[contestant] {
		log.Debug().Str("contestant", contestant).Msg("duplicate final judgment ignored")
		return
	}

	delta := bet
	if !correct {
		delta = -bet
	}
	newScore := e.scores.apply(contestant, delta)
	e.final.judged[contestant] = true

	log.Info().
		Str("contestant", contestant).
		Bool("correct", correct).
		Int("bet", bet).
		Int("new_score", newScore).
		Msg("final answer judged")

	e.out.Broadcast(protocol.TopicAnswer, protocol.Answer{
		Contestant: contestant,
		Correct:    correct,
		Value:      bet,
		NewScore:   newScore,
		Answer:     e.final.answer,
	})
	e.broadcastScores()

	if e.final.allJudged(e.reg.roster()) {
		e.finishGame()
	}
}
