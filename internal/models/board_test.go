package models

import (
	"errors"
	"testing"
)

func validBoard() *Board {
	values := []int{200, 400, 600, 800, 1000}
	board := &Board{}
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		var clues []Clue
		for _, v := range values {
			clues = append(clues, Clue{Text: "q", Answer: "a", Value: v, Type: "text"})
		}
		board.Categories = append(board.Categories, Category{Name: name, Clues: clues})
	}
	return board
}

func TestValidateGeometry(t *testing.T) {
	if err := validBoard().Validate(); err != nil {
		t.Fatalf("valid board rejected: %v", err)
	}

	b := validBoard()
	b.Categories = b.Categories[:4]
	if err := b.Validate(); err == nil {
		t.Fatal("board with four categories accepted")
	}

	b = validBoard()
	b.Categories[2].Clues = b.Categories[2].Clues[:3]
	if err := b.Validate(); err == nil {
		t.Fatal("category with three clues accepted")
	}

	b = validBoard()
	b.Categories[0].Clues[0].Value = 5000
	if err := b.Validate(); err == nil {
		t.Fatal("descending clue values accepted")
	}
}

func TestFindClue(t *testing.T) {
	b := validBoard()
	clue, err := b.FindClue("C", 600)
	if err != nil {
		t.Fatalf("FindClue failed: %v", err)
	}
	if clue.Value != 600 {
		t.Fatalf("clue value = %d, want 600", clue.Value)
	}

	if _, err := b.FindClue("C", 700); !errors.Is(err, ErrClueNotFound) {
		t.Fatalf("err = %v, want ErrClueNotFound", err)
	}
	if _, err := b.FindClue("Z", 600); !errors.Is(err, ErrClueNotFound) {
		t.Fatalf("err = %v, want ErrClueNotFound", err)
	}
}

func TestMarkUsedAndAllUsed(t *testing.T) {
	b := validBoard()
	if b.AllUsed() {
		t.Fatal("fresh board reported all used")
	}

	for _, cat := range b.Categories {
		for _, clue := range cat.Clues {
			if err := b.MarkUsed(cat.Name, clue.Value); err != nil {
				t.Fatalf("MarkUsed(%s, %d) failed: %v", cat.Name, clue.Value, err)
			}
		}
	}
	if !b.AllUsed() {
		t.Fatal("fully played board not reported all used")
	}
}

func TestPlaceholderShape(t *testing.T) {
	b := Placeholder()
	if err := b.Validate(); err != nil {
		t.Fatalf("placeholder board invalid: %v", err)
	}
	for _, cat := range b.Categories {
		if cat.Name != PlaceholderName {
			t.Fatalf("placeholder category name = %q, want %q", cat.Name, PlaceholderName)
		}
	}
}
