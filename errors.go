package board

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID is returned when an operator is handed a sector, wall or
	// sprite id outside the board's dense range.
	ErrInvalidID = errors.New("invalid id")

	// ErrIllegalTopology is returned when an edit would break a board
	// invariant. The board is left untouched.
	ErrIllegalTopology = errors.New("illegal topology")

	// ErrCorruptedBoard is returned when a traversal runs into a broken
	// invariant, e.g. a loop that never closes.
	ErrCorruptedBoard = errors.New("corrupted board")
)

func invalidSector(s int) error {
	return fmt.Errorf("sector %d: %w", s, ErrInvalidID)
}

func invalidWall(w int) error {
	return fmt.Errorf("wall %d: %w", w, ErrInvalidID)
}

func invalidSprite(i int) error {
	return fmt.Errorf("sprite %d: %w", i, ErrInvalidID)
}

func illegal(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrIllegalTopology)
}

func corrupted(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrCorruptedBoard)
}
