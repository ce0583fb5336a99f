// Package mirror is the participant-side replica of coordinator state. The
// reducer is pure: the same broadcast frames applied in the same order always
// produce the same state, with no local clocks or countdowns.
package mirror

import (
	"encoding/json"

	"github.com/sc2ctl/jeopardy/internal/models"
	"github.com/sc2ctl/jeopardy/internal/protocol"
)

// ActiveClue is the mirror's view of the clue on display.
type ActiveClue struct {
	Category    string
	Value       int
	Text        string
	DailyDouble bool
	Contestant  string
}

// State is everything a client renders. It is rebuilt from scratch on
// reconnect; the coordinator's resync frames are sufficient on their own.
type State struct {
	Ready         bool
	Categories    []models.Category
	Generating    bool
	Revealed      [models.BoardCategories]bool
	Players       map[string]int
	Scores        map[string]int
	Clue          *ActiveClue
	BuzzerActive  bool
	BuzzerWinner  string
	AnswerPlayer  string
	AnswerSeconds int
	LastAnswer    *protocol.Answer
	Controller    string
	FinalPhase    string
	FinalCategory string
	FinalClue     string
	FinalResults  map[string]int
	Chat          []protocol.ChatMessage
	LastError     string
}

// New returns the empty pre-connection state.
func New() State {
	return State{
		Players: make(map[string]int),
		Scores:  make(map[string]int),
	}
}

// Apply folds one broadcast frame into the state. Unknown topics and
// malformed payloads leave the state untouched; duplicate reveals merge as
// no-ops. Apply never mutates its input.
func Apply(s State, env protocol.Envelope) State {
	switch env.Topic {
	case protocol.TopicGameReady:
		var p protocol.GameReady
		if decode(env, &p) {
			s.Ready = p.Ready
		}

	case protocol.TopicPlayerList:
		var p protocol.PlayerList
		if decode(env, &p) {
			players := make(map[string]int, len(p.Players))
			for name, info := range p.Players {
				players[name] = info.Score
			}
			s.Players = players
		}

	case protocol.TopicContestantScore:
		var p protocol.ContestantScore
		if decode(env, &p) {
			// Scores are replaced wholesale, never accumulated locally.
			s.Scores = p.Scores
		}

	case protocol.TopicBoardInit, protocol.TopicBoardSelected:
		var p protocol.BoardInit
		if decode(env, &p) {
			s.Categories = p.Categories
			s.Generating = p.Generating
			if !p.Generating {
				for i := range s.Revealed {
					s.Revealed[i] = true
				}
			} else {
				s.Revealed = [models.BoardCategories]bool{}
			}
		}

	case protocol.TopicStartBoardGeneration:
		s.Generating = true
		s.Revealed = [models.BoardCategories]bool{}

	case protocol.TopicRevealCategory:
		var p protocol.RevealCategory
		if decode(env, &p) {
			if p.Index < 0 || p.Index >= models.BoardCategories || s.Revealed[p.Index] {
				break
			}
			categories := make([]models.Category, len(s.Categories))
			copy(categories, s.Categories)
			if p.Index < len(categories) {
				categories[p.Index] = p.Category
			}
			s.Categories = categories
			s.Revealed[p.Index] = true
		}

	case protocol.TopicQuestionDisplay:
		var p protocol.QuestionDisplay
		if decode(env, &p) {
			s.Clue = &ActiveClue{
				Category:    p.Category,
				Value:       p.Value,
				Text:        p.Text,
				DailyDouble: p.DailyDouble,
				Contestant:  p.Contestant,
			}
			s.LastAnswer = nil
			s.BuzzerWinner = ""
		}

	case protocol.TopicQuestionDismiss:
		s.Clue = nil
		s.BuzzerActive = false
		s.BuzzerWinner = ""
		s.AnswerPlayer = ""

	case protocol.TopicBuzzerStatus:
		var p protocol.BuzzerStatus
		if decode(env, &p) {
			s.BuzzerActive = p.Active
		}

	case protocol.TopicBuzzer:
		var p protocol.BuzzerWinner
		if decode(env, &p) {
			s.BuzzerWinner = p.Contestant
		}

	case protocol.TopicAnswerTimerStart:
		var p protocol.AnswerTimerStart
		if decode(env, &p) {
			s.AnswerPlayer = p.Player
			s.AnswerSeconds = p.Seconds
		}

	case protocol.TopicAnswer:
		var p protocol.Answer
		if decode(env, &p) {
			s.LastAnswer = &p
			s.AnswerPlayer = ""
		}

	case protocol.TopicSelectQuestion:
		var p protocol.SelectQuestion
		if decode(env, &p) {
			s.Controller = p.Contestant
		}

	case protocol.TopicDailyDouble:
		var p protocol.DailyDouble
		if decode(env, &p) {
			s.Clue = &ActiveClue{Category: p.Category, Value: p.Value, DailyDouble: true}
		}

	case protocol.TopicDailyDoubleBetResponse:
		var p protocol.DailyDoubleBetResponse
		if decode(env, &p) {
			s.Clue = &ActiveClue{
				Category:    p.Question.Category,
				Value:       p.Question.Value,
				Text:        p.Question.Text,
				DailyDouble: true,
				Contestant:  p.Contestant,
			}
		}

	case protocol.TopicFinalJeopardy:
		var p protocol.FinalJeopardy
		if decode(env, &p) {
			s.FinalPhase = p.Phase
			if p.Category != "" {
				s.FinalCategory = p.Category
			}
			if p.Clue != "" {
				s.FinalClue = p.Clue
			}
			if p.Results != nil {
				s.FinalResults = p.Results
			}
		}

	case protocol.TopicChatMessage:
		var p protocol.ChatMessage
		if decode(env, &p) {
			chat := make([]protocol.ChatMessage, len(s.Chat), len(s.Chat)+1)
			copy(chat, s.Chat)
			s.Chat = append(chat, p)
		}

	case protocol.TopicChatHistory:
		var p protocol.ChatHistory
		if decode(env, &p) {
			s.Chat = p.Messages
		}

	case protocol.TopicError:
		var p protocol.ErrorMessage
		if decode(env, &p) {
			s.LastError = p.Message
		}
	}

	return s
}

func decode(env protocol.Envelope, dst any) bool {
	if len(env.Payload) == 0 {
		return true
	}
	return json.Unmarshal(env.Payload, dst) == nil
}
