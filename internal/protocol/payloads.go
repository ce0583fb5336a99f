package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sc2ctl/jeopardy/internal/models"
)

// ErrUnknownTopic marks frames the coordinator does not understand. They are
// logged and dropped, never fatal.
var ErrUnknownTopic = errors.New("unknown topic")

// Participant -> coordinator payloads.

type RegisterPlayer struct {
	Name        string `json:"name"`
	Preferences string `json:"preferences,omitempty"`
}

func (p RegisterPlayer) Validate() error {
	if p.Name == "" {
		return errors.New("register_player: name is required")
	}
	return nil
}

type SelectBoard struct {
	BoardID string `json:"board_id"`
}

func (p SelectBoard) Validate() error {
	if p.BoardID == "" {
		return errors.New("select_board: board_id is required")
	}
	return nil
}

type Buzz struct {
	Timestamp int64 `json:"timestamp,omitempty"`
}

func (p Buzz) Validate() error { return nil }

type DailyDoubleBet struct {
	Contestant string `json:"contestant"`
	Bet        int    `json:"bet"`
}

func (p DailyDoubleBet) Validate() error {
	if p.Contestant == "" {
		return errors.New("daily_double_bet: contestant is required")
	}
	if p.Bet <= 0 {
		return errors.New("daily_double_bet: bet must be positive")
	}
	return nil
}

type FinalJeopardyBet struct {
	Contestant string `json:"contestant"`
	Bet        int    `json:"bet"`
}

func (p FinalJeopardyBet) Validate() error {
	if p.Contestant == "" {
		return errors.New("final_jeopardy_bet: contestant is required")
	}
	if p.Bet < 0 {
		return errors.New("final_jeopardy_bet: bet must not be negative")
	}
	return nil
}

type AudioComplete struct {
	AudioID string `json:"audio_id"`
}

func (p AudioComplete) Validate() error {
	if p.AudioID == "" {
		return errors.New("audio_complete: audio_id is required")
	}
	return nil
}

type ChatMessage struct {
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
	IsAdmin   bool   `json:"is_admin"`
}

func (p ChatMessage) Validate() error {
	if p.Message == "" {
		return errors.New("chat_message: message is required")
	}
	return nil
}

// Controller -> coordinator payloads.

type QuestionSelect struct {
	Category string `json:"category"`
	Value    int    `json:"value"`
}

func (p QuestionSelect) Validate() error {
	if p.Category == "" {
		return errors.New("question_display: category is required")
	}
	if p.Value <= 0 {
		return errors.New("question_display: value must be positive")
	}
	return nil
}

type Judgment struct {
	Contestant string `json:"contestant,omitempty"`
	Correct    bool   `json:"correct"`
}

func (p Judgment) Validate() error { return nil }

// Coordinator -> participant payloads.

type RegisterPlayerResponse struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
}

type PlayerInfo struct {
	Score int `json:"score"`
}

type PlayerList struct {
	Players map[string]PlayerInfo `json:"players"`
}

type GameReady struct {
	Ready bool `json:"ready"`
}

type BoardInit struct {
	Categories []models.Category `json:"categories"`
	Generating bool              `json:"generating,omitempty"`
}

type StartBoardGeneration struct{}

type RevealCategory struct {
	Index    int             `json:"index"`
	Category models.Category `json:"category"`
}

func (p RevealCategory) Validate() error {
	if p.Index < 0 || p.Index >= models.BoardCategories {
		return fmt.Errorf("reveal_category: index %d out of range", p.Index)
	}
	if p.Category.Name == "" {
		return errors.New("reveal_category: category name is required")
	}
	return nil
}

type QuestionDisplay struct {
	Category    string `json:"category"`
	Value       int    `json:"value"`
	Text        string `json:"text"`
	DailyDouble bool   `json:"daily_double"`
	Used        bool   `json:"used"`
	Contestant  string `json:"contestant,omitempty"`
}

type QuestionDismiss struct{}

type SelectQuestion struct {
	Contestant string `json:"contestant"`
}

type BuzzerStatus struct {
	Active bool `json:"active"`
}

type BuzzerWinner struct {
	Contestant string `json:"contestant"`
}

type AnswerTimerStart struct {
	Player  string `json:"player"`
	Seconds int    `json:"seconds"`
}

type Answer struct {
	Contestant string `json:"contestant"`
	Correct    bool   `json:"correct"`
	Value      int    `json:"value"`
	NewScore   int    `json:"newScore"`
	Answer     string `json:"answer,omitempty"`
}

type DailyDouble struct {
	Category string `json:"category"`
	Value    int    `json:"value"`
}

type DailyDoubleBetResponse struct {
	Question   QuestionDisplay `json:"question"`
	Bet        int             `json:"bet"`
	Contestant string          `json:"contestant"`
}

// FinalJeopardy frames carry a phase discriminator; only the fields for the
// current phase are populated.
type FinalJeopardy struct {
	Phase    string         `json:"phase"`
	Category string         `json:"category,omitempty"`
	Clue     string         `json:"clue,omitempty"`
	Results  map[string]int `json:"results,omitempty"`
}

const (
	FinalPhaseCategory = "category"
	FinalPhaseBet      = "bet"
	FinalPhaseClue     = "clue"
	FinalPhaseResults  = "results"
)

type ContestantScore struct {
	Scores map[string]int `json:"scores"`
}

type PlayAudio struct {
	URL     string `json:"url"`
	AudioID string `json:"audio_id"`
}

type ChatHistory struct {
	Messages []ChatMessage `json:"messages"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

// DecodeInbound parses and validates a participant- or controller-originated
// frame into its typed payload. Malformed payloads are rejected with an
// explicit error; unknown topics return ErrUnknownTopic.
func DecodeInbound(env Envelope) (any, error) {
	decode := func(dst interface{ Validate() error }) (any, error) {
		if len(env.Payload) > 0 {
			if err := json.Unmarshal(env.Payload, dst); err != nil {
				return nil, fmt.Errorf("decode %s: %w", env.Topic, err)
			}
		}
		if err := dst.Validate(); err != nil {
			return nil, err
		}
		return dst, nil
	}

	switch env.Topic {
	case TopicRegisterPlayer:
		return decode(&RegisterPlayer{})
	case TopicSelectBoard:
		return decode(&SelectBoard{})
	case TopicBuzzer:
		return decode(&Buzz{})
	case TopicQuestionDisplay, TopicDailyDouble:
		return decode(&QuestionSelect{})
	case TopicAnswer:
		return decode(&Judgment{})
	case TopicQuestionDismiss:
		return &QuestionDismiss{}, nil
	case TopicDailyDoubleBet:
		return decode(&DailyDoubleBet{})
	case TopicFinalJeopardyBet:
		return decode(&FinalJeopardyBet{})
	case TopicFinalJeopardy:
		return &FinalJeopardy{}, nil
	case TopicAudioComplete:
		return decode(&AudioComplete{})
	case TopicChatMessage:
		return decode(&ChatMessage{})
	case TopicBoardInit:
		return &BoardInit{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, env.Topic)
	}
}
