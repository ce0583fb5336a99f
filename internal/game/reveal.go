package game

import (
	"github.com/sc2ctl/jeopardy/internal/models"
)

// revealTracker merges streamed category reveals into a placeholder board.
// Application is idempotent and order independent: the same index applied
// twice is a no-op, and any arrival order converges to the same board.
type revealTracker struct {
	board    *models.Board
	revealed [models.BoardCategories]bool
}

func newRevealTracker() *revealTracker {
	return &revealTracker{board: models.Placeholder()}
}

// apply merges a resolved category into the slot at index. It returns true
// when the slot changed, false for a duplicate.
func (t *revealTracker) apply(index int, category models.Category) bool {
	if index < 0 || index >= models.BoardCategories {
		return false
	}
	if t.revealed[index] {
		return false
	}
	t.board.Categories[index] = category
	t.revealed[index] = true
	return true
}

// done reports whether all five indices have been revealed.
func (t *revealTracker) done() bool {
	for _, seen := range t.revealed {
		if !seen {
			return false
		}
	}
	return true
}
