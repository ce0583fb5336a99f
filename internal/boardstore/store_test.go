package boardstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sc2ctl/jeopardy/internal/models"
)

func testBoard() *models.Board {
	values := []int{200, 400, 600, 800, 1000}
	board := &models.Board{}
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		var clues []models.Clue
		for _, v := range values {
			clues = append(clues, models.Clue{Text: "q", Answer: "a", Value: v, Type: "text"})
		}
		board.Categories = append(board.Categories, models.Category{Name: name, Clues: clues})
	}
	return board
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save("classic", testBoard()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	board, err := store.Load("classic")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(board.Categories) != models.BoardCategories {
		t.Fatalf("loaded %d categories, want %d", len(board.Categories), models.BoardCategories)
	}
	if board.Categories[0].Name != "A" {
		t.Fatalf("first category = %q, want A", board.Categories[0].Name)
	}
}

func TestStoreLoadMissingBoard(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Load("nope"); !errors.Is(err, ErrBoardNotFound) {
		t.Fatalf("err = %v, want ErrBoardNotFound", err)
	}
}

func TestStoreLoadRejectsInvalidBoard(t *testing.T) {
	dir := t.TempDir()
	bad := `{"categories":[{"name":"ONLY","questions":[]}]}`
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir)
	if _, err := store.Load("bad"); err == nil {
		t.Fatal("invalid board accepted")
	}
}

func TestStoreListSortsAndFilters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zebra.json", "apple.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	store := NewStore(dir)
	names, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"apple", "zebra"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestStoreListMissingDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent"))
	names, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("names = %v, want empty", names)
	}
}
