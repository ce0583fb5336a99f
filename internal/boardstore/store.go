// Package boardstore reads and writes board files on disk. A board file is a
// single JSON document holding contestants, categories and the final clue.
package boardstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sc2ctl/jeopardy/internal/models"
)

var ErrBoardNotFound = errors.New("board not found")

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// List returns the available board names (file stems), sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read boards dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and validates the named board.
func (s *Store) Load(name string) (*models.Board, error) {
	path := filepath.Join(s.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBoardNotFound, name)
		}
		return nil, fmt.Errorf("failed to read board %s: %w", name, err)
	}

	var board models.Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("failed to parse board %s: %w", name, err)
	}
	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("board %s is invalid: %w", name, err)
	}
	return &board, nil
}

// Save persists a board under the given name, creating the directory if
// needed.
func (s *Store) Save(name string, board *models.Board) error {
	if err := board.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid board %s: %w", name, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create boards dir: %w", err)
	}

	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal board %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write board %s: %w", name, err)
	}
	return nil
}
