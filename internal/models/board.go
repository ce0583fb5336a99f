package models

import (
	"errors"
	"fmt"
	"sort"
)

const (
	// BoardCategories and CluesPerCategory fix the board geometry. Every
	// loaded or generated board is exactly this shape.
	BoardCategories   = 5
	CluesPerCategory  = 5
	PlaceholderName   = "???"
	placeholderClue   = "Generating..."
	placeholderAnswer = ""
)

var (
	ErrClueNotFound = errors.New("clue not found")
	ErrClueUsed     = errors.New("clue already used")
)

// Clue is one cell of the board. The JSON tags match the persisted board file
// schema; Used is the only field that mutates after load and it is monotone.
type Clue struct {
	Text        string `json:"clue"`
	Answer      string `json:"answer"`
	Value       int    `json:"value"`
	DailyDouble bool   `json:"daily_double"`
	Type        string `json:"type"`
	Used        bool   `json:"used"`
}

// Category holds five clues ordered by ascending value.
type Category struct {
	Name  string `json:"name"`
	Clues []Clue `json:"questions"`
}

// FinalClue is the optional end-of-game clue answered by wager.
type FinalClue struct {
	Category string `json:"category"`
	Clue     string `json:"clue"`
	Answer   string `json:"answer"`
}

// Contestant is a seat at the podium. Score may go negative.
type Contestant struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Board is the full game board as persisted on disk.
type Board struct {
	Contestants []Contestant `json:"contestants"`
	Categories  []Category   `json:"categories"`
	Final       *FinalClue   `json:"final,omitempty"`
}

// Validate checks the fixed 5x5 geometry and ascending clue values.
func (b *Board) Validate() error {
	if len(b.Categories) != BoardCategories {
		return fmt.Errorf("board has %d categories, want %d", len(b.Categories), BoardCategories)
	}
	for _, cat := range b.Categories {
		if cat.Name == "" {
			return errors.New("board has category with empty name")
		}
		if len(cat.Clues) != CluesPerCategory {
			return fmt.Errorf("category %q has %d clues, want %d", cat.Name, len(cat.Clues), CluesPerCategory)
		}
		if !sort.SliceIsSorted(cat.Clues, func(i, j int) bool {
			return cat.Clues[i].Value < cat.Clues[j].Value
		}) {
			return fmt.Errorf("category %q clues not in ascending value order", cat.Name)
		}
	}
	return nil
}

// FindClue returns the clue at (category, value), or ErrClueNotFound.
func (b *Board) FindClue(category string, value int) (*Clue, error) {
	for ci := range b.Categories {
		if b.Categories[ci].Name != category {
			continue
		}
		for qi := range b.Categories[ci].Clues {
			if b.Categories[ci].Clues[qi].Value == value {
				return &b.Categories[ci].Clues[qi], nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s $%d", ErrClueNotFound, category, value)
}

// MarkUsed sets the used flag. Used never reverts within a board's lifetime.
func (b *Board) MarkUsed(category string, value int) error {
	clue, err := b.FindClue(category, value)
	if err != nil {
		return err
	}
	clue.Used = true
	return nil
}

// AllUsed reports whether every clue on the board has been played.
func (b *Board) AllUsed() bool {
	for _, cat := range b.Categories {
		for _, clue := range cat.Clues {
			if !clue.Used {
				return false
			}
		}
	}
	return true
}

// Placeholder builds the unrevealed board published the instant generation
// starts: five unknown categories with five unknown clues each.
func Placeholder() *Board {
	values := []int{200, 400, 600, 800, 1000}
	board := &Board{Categories: make([]Category, BoardCategories)}
	for i := range board.Categories {
		clues := make([]Clue, CluesPerCategory)
		for j, v := range values {
			clues[j] = Clue{Text: placeholderClue, Answer: placeholderAnswer, Value: v, Type: "text"}
		}
		board.Categories[i] = Category{Name: PlaceholderName, Clues: clues}
	}
	return board
}
