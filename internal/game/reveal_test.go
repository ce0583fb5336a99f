package game

import (
	"testing"

	"github.com/sc2ctl/jeopardy/internal/models"
)

func revealCategory(name string) models.Category {
	values := []int{200, 400, 600, 800, 1000}
	clues := make([]models.Clue, len(values))
	for i, v := range values {
		clues[i] = models.Clue{Text: "q", Answer: "a", Value: v, Type: "text"}
	}
	return models.Category{Name: name, Clues: clues}
}

func TestRevealTrackerIdempotent(t *testing.T) {
	tr := newRevealTracker()

	if !tr.apply(2, revealCategory("SCIENCE")) {
		t.Fatal("first reveal rejected")
	}
	if tr.apply(2, revealCategory("OVERWRITE")) {
		t.Fatal("duplicate reveal applied")
	}
	if got := tr.board.Categories[2].Name; got != "SCIENCE" {
		t.Fatalf("category 2 = %q, want SCIENCE", got)
	}
}

func TestRevealTrackerOrderIndependent(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E"}
	order := []int{3, 0, 4, 1, 2}

	tr := newRevealTracker()
	for _, i := range order {
		if !tr.apply(i, revealCategory(names[i])) {
			t.Fatalf("reveal of index %d rejected", i)
		}
	}

	if !tr.done() {
		t.Fatal("tracker not done after all five reveals")
	}
	for i, name := range names {
		if got := tr.board.Categories[i].Name; got != name {
			t.Errorf("category %d = %q, want %q", i, got, name)
		}
	}
}

func TestRevealTrackerRejectsOutOfRange(t *testing.T) {
	tr := newRevealTracker()
	if tr.apply(-1, revealCategory("X")) || tr.apply(models.BoardCategories, revealCategory("X")) {
		t.Fatal("out-of-range index applied")
	}
}

func TestRevealTrackerNotDoneUntilAllRevealed(t *testing.T) {
	tr := newRevealTracker()
	for i := 0; i < models.BoardCategories-1; i++ {
		tr.apply(i, revealCategory("X"))
	}
	if tr.done() {
		t.Fatal("tracker done with one category still hidden")
	}
}
