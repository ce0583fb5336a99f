package mirror

import (
	"encoding/json"
	"testing"

	"github.com/sc2ctl/jeopardy/internal/models"
	"github.com/sc2ctl/jeopardy/internal/protocol"
)

func env(t *testing.T, topic string, payload any) protocol.Envelope {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return protocol.Envelope{Topic: topic, Payload: raw}
}

func category(name string) models.Category {
	values := []int{200, 400, 600, 800, 1000}
	clues := make([]models.Clue, len(values))
	for i, v := range values {
		clues[i] = models.Clue{Text: "q", Answer: "a", Value: v, Type: "text"}
	}
	return models.Category{Name: name, Clues: clues}
}

func placeholderInit() protocol.BoardInit {
	board := models.Placeholder()
	return protocol.BoardInit{Categories: board.Categories, Generating: true}
}

func TestApplyUnknownTopicIsNoOp(t *testing.T) {
	s := New()
	s.Scores["alice"] = 400

	got := Apply(s, protocol.Envelope{Topic: "com.sc2ctl.jeopardy.mystery"})
	if got.Scores["alice"] != 400 {
		t.Fatal("unknown topic mutated the state")
	}
}

func TestApplyScoresReplacedWholesale(t *testing.T) {
	s := New()
	s = Apply(s, env(t, protocol.TopicContestantScore, protocol.ContestantScore{
		Scores: map[string]int{"alice": 200, "bob": -400},
	}))
	s = Apply(s, env(t, protocol.TopicContestantScore, protocol.ContestantScore{
		Scores: map[string]int{"alice": 800},
	}))

	if s.Scores["alice"] != 800 {
		t.Fatalf("alice = %d, want 800", s.Scores["alice"])
	}
	if _, ok := s.Scores["bob"]; ok {
		t.Fatal("stale score survived a snapshot replacement")
	}
}

func TestApplyDuplicateRevealIgnored(t *testing.T) {
	s := New()
	s = Apply(s, env(t, protocol.TopicBoardInit, placeholderInit()))

	s = Apply(s, env(t, protocol.TopicRevealCategory, protocol.RevealCategory{Index: 1, Category: category("SCIENCE")}))
	s = Apply(s, env(t, protocol.TopicRevealCategory, protocol.RevealCategory{Index: 1, Category: category("OVERWRITE")}))

	if got := s.Categories[1].Name; got != "SCIENCE" {
		t.Fatalf("category 1 = %q, want SCIENCE", got)
	}
}

func TestApplyRevealsConvergeInAnyOrder(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E"}

	build := func(order []int) State {
		s := New()
		s = Apply(s, env(t, protocol.TopicBoardInit, placeholderInit()))
		for _, i := range order {
			s = Apply(s, env(t, protocol.TopicRevealCategory, protocol.RevealCategory{Index: i, Category: category(names[i])}))
		}
		return s
	}

	a := build([]int{0, 1, 2, 3, 4})
	b := build([]int{4, 2, 0, 3, 1})
	for i := range names {
		if a.Categories[i].Name != b.Categories[i].Name {
			t.Fatalf("order-dependent board: %v vs %v", a.Categories[i].Name, b.Categories[i].Name)
		}
	}
}

func TestApplyClueLifecycle(t *testing.T) {
	s := New()
	s = Apply(s, env(t, protocol.TopicQuestionDisplay, protocol.QuestionDisplay{
		Category: "SCIENCE", Value: 400, Text: "clue text",
	}))
	if s.Clue == nil || s.Clue.Text != "clue text" {
		t.Fatal("clue not mirrored")
	}

	s = Apply(s, env(t, protocol.TopicBuzzerStatus, protocol.BuzzerStatus{Active: true}))
	if !s.BuzzerActive {
		t.Fatal("buzzer activation not mirrored")
	}

	s = Apply(s, env(t, protocol.TopicBuzzer, protocol.BuzzerWinner{Contestant: "bob"}))
	if s.BuzzerWinner != "bob" {
		t.Fatal("buzzer winner not mirrored")
	}

	s = Apply(s, env(t, protocol.TopicQuestionDismiss, protocol.QuestionDismiss{}))
	if s.Clue != nil || s.BuzzerActive || s.BuzzerWinner != "" {
		t.Fatal("dismiss did not clear clue state")
	}
}

func TestApplyMalformedPayloadIsNoOp(t *testing.T) {
	s := New()
	s = Apply(s, protocol.Envelope{Topic: protocol.TopicBuzzerStatus, Payload: []byte(`{"active":"yes"}`)})
	if s.BuzzerActive {
		t.Fatal("malformed payload mutated the state")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := New()
	s = Apply(s, env(t, protocol.TopicBoardInit, placeholderInit()))
	before := s.Categories[0].Name

	_ = Apply(s, env(t, protocol.TopicRevealCategory, protocol.RevealCategory{Index: 0, Category: category("MUTATED")}))
	if s.Categories[0].Name != before {
		t.Fatal("Apply mutated the input state's categories")
	}
}

func TestApplyFinalPhases(t *testing.T) {
	s := New()
	s = Apply(s, env(t, protocol.TopicFinalJeopardy, protocol.FinalJeopardy{Phase: protocol.FinalPhaseCategory, Category: "GEOGRAPHY"}))
	s = Apply(s, env(t, protocol.TopicFinalJeopardy, protocol.FinalJeopardy{Phase: protocol.FinalPhaseBet, Category: "GEOGRAPHY"}))
	s = Apply(s, env(t, protocol.TopicFinalJeopardy, protocol.FinalJeopardy{Phase: protocol.FinalPhaseClue, Clue: "the clue"}))

	if s.FinalPhase != protocol.FinalPhaseClue {
		t.Fatalf("phase = %q, want %q", s.FinalPhase, protocol.FinalPhaseClue)
	}
	if s.FinalCategory != "GEOGRAPHY" || s.FinalClue != "the clue" {
		t.Fatal("final category or clue lost across phases")
	}

	s = Apply(s, env(t, protocol.TopicFinalJeopardy, protocol.FinalJeopardy{
		Phase:   protocol.FinalPhaseResults,
		Results: map[string]int{"alice": 1800},
	}))
	if s.FinalResults["alice"] != 1800 {
		t.Fatal("final results not mirrored")
	}
}

func TestApplyChatHistoryReplaces(t *testing.T) {
	s := New()
	s = Apply(s, env(t, protocol.TopicChatMessage, protocol.ChatMessage{Username: "alice", Message: "old"}))
	s = Apply(s, env(t, protocol.TopicChatHistory, protocol.ChatHistory{
		Messages: []protocol.ChatMessage{{Username: "Host", Message: "welcome"}},
	}))

	if len(s.Chat) != 1 || s.Chat[0].Message != "welcome" {
		t.Fatalf("chat = %v, want the replayed history only", s.Chat)
	}
}
