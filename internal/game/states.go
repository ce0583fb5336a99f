package game

import (
	"github.com/google/uuid"
)

// State is the authoritative game phase. All transitions happen inside the
// engine loop; no other goroutine ever writes it.
type State string

const (
	StateLobby             State = "LOBBY"
	StateBoardSelect       State = "BOARD_SELECT"
	StateBoardRevealing    State = "BOARD_REVEALING"
	StateQuestionIdle      State = "QUESTION_IDLE"
	StateQuestionActive    State = "QUESTION_ACTIVE"
	StateBuzzOpen          State = "BUZZ_OPEN"
	StatePlayerLocked      State = "PLAYER_LOCKED"
	StateDailyDoubleWager  State = "DAILY_DOUBLE_WAGER"
	StateDailyDoubleActive State = "DAILY_DOUBLE_ACTIVE"
	StateFinal             State = "FINAL"
	StateGameOver          State = "GAME_OVER"
)

// activeClue exists only between clue selection and dismissal. Its id is the
// clue instance identity: timers and the audio gate are keyed by it, so a
// late callback from a previous clue can never act on the current one.
type activeClue struct {
	id          uuid.UUID
	category    string
	value       int
	text        string
	answer      string
	dailyDouble bool

	holder   string          // buzzer holder, empty when none
	excluded map[string]bool // contestants ruled out for this clue
	wager    int             // daily double wager, 0 until submitted
	assigned string          // daily double contestant
}

func newActiveClue(category string, value int, text, answer string, dailyDouble bool) *activeClue {
	return &activeClue{
		id:          uuid.New(),
		category:    category,
		value:       value,
		text:        text,
		answer:      answer,
		dailyDouble: dailyDouble,
		excluded:    make(map[string]bool),
	}
}

// worth is the amount at stake for a judgment: the wager when one was placed,
// the face value otherwise.
func (c *activeClue) worth() int {
	if c.wager > 0 {
		return c.wager
	}
	return c.value
}

// finalRound tracks the end-of-game wager flow for every remaining
// contestant.
type finalRound struct {
	id       uuid.UUID // instance identity for the collection timer
	category string
	clue     string
	answer   string
	revealed bool
	bets     map[string]int
	judged   map[string]bool
}

func newFinalRound(category, clue, answer string) *finalRound {
	return &finalRound{
		id:       uuid.New(),
		category: category,
		clue:     clue,
		answer:   answer,
		bets:     make(map[string]int),
		judged:   make(map[string]bool),
	}
}

func (f *finalRound) allBetsIn(contestants []string) bool {
	for _, name := range contestants {
		if _, ok := f.bets[name]; !ok {
			return false
		}
	}
	return len(contestants) > 0
}

func (f *finalRound) allJudged(contestants []string) bool {
	for _, name := range contestants {
		if !f.judged[name] {
			return false
		}
	}
	return len(contestants) > 0
}
