package game

import (
	"github.com/rs/zerolog/log"

	"github.com/sc2ctl/jeopardy/internal/models"
	"github.com/sc2ctl/jeopardy/internal/protocol"
)

func (e *Engine) handleSelectBoard(boardID string) {
	if e.clue != nil {
		log.Warn().Str("board", boardID).Msg("board selection ignored while a clue is active")
		return
	}

	board, err := e.boards.Load(boardID)
	if err != nil {
		// A bad board file aborts the transition; the prior state stays.
		log.Error().Err(err).Str("board", boardID).Msg("failed to load board")
		e.out.Broadcast(protocol.TopicError, protocol.ErrorMessage{Message: "Failed to load board: " + boardID})
		return
	}

	e.board = board
	e.gen = nil
	e.final = nil
	if e.state != StateLobby {
		e.state = StateQuestionIdle
	}
	log.Info().Str("board", boardID).Msg("board selected")
	e.out.Broadcast(protocol.TopicBoardSelected, protocol.BoardInit{Categories: board.Categories})
}

func (e *Engine) handleStartGeneration() {
	if e.clue != nil {
		log.Warn().Msg("board generation ignored while a clue is active")
		return
	}

	e.gen = newRevealTracker()
	e.board = e.gen.board
	e.final = nil
	if e.state != StateLobby {
		e.state = StateBoardRevealing
	}
	log.Info().Msg("board generation started, placeholder published")
	e.out.Broadcast(protocol.TopicStartBoardGeneration, protocol.StartBoardGeneration{})
	e.out.Broadcast(protocol.TopicBoardInit, protocol.BoardInit{Categories: e.board.Categories, Generating: true})
}

func (e *Engine) handleReveal(index int, category models.Category) {
	if e.gen == nil {
		log.Warn().Int("index", index).Msg("category reveal ignored: no generation in progress")
		return
	}

	if !e.gen.apply(index, category) {
		// Duplicate reveals merge as no-ops.
		log.Debug().Int("index", index).Msg("duplicate category reveal ignored")
		return
	}

	log.Info().Int("index", index).Str("category", category.Name).Msg("category revealed")
	e.out.Broadcast(protocol.TopicRevealCategory, protocol.RevealCategory{Index: index, Category: category})

	if e.gen.done() {
		e.gen = nil
		if e.state == StateBoardRevealing {
			e.state = StateQuestionIdle
		}
		log.Info().Msg("board generation complete")
		e.out.Broadcast(protocol.TopicBoardSelected, protocol.BoardInit{Categories: e.board.Categories})
	}
}

// boardComplete runs after every clue resolution: once all clues are used,
// the game moves to the final round, or straight to the end when the board
// has no final clue.
func (e *Engine) boardComplete() {
	if e.board == nil || !e.board.AllUsed() {
		return
	}
	if e.board.Final != nil {
		e.enterFinal()
		return
	}
	e.finishGame()
}

func (e *Engine) finishGame() {
	e.timers.stopAll()
	e.gate.disarm()
	e.state = StateGameOver
	log.Info().Msg("game over")
	e.out.Broadcast(protocol.TopicFinalJeopardy, protocol.FinalJeopardy{
		Phase:   protocol.FinalPhaseResults,
		Results: e.scores.snapshot(),
	})
}
