package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLabel is returned by ParseMove for input that is not a single
// digit between 1 and 9.
var ErrInvalidLabel = errors.New("position must be a number between 1 and 9")

// Label returns the digit shown to the human for the move's cell. Labels run
// from '1' to '9' in row-major order.
func (m Move) Label() rune {
	if !m.IsValid() {
		panic(fmt.Sprintf("game: no label for move %v", m))
	}
	return rune('1' + m.Row*3 + m.Col)
}

// IsLabel returns true if r is one of the nine cell labels.
func IsLabel(r rune) bool {
	return '1' <= r && r <= '9'
}

// MoveFromLabel converts a cell label into its move. It panics if r is not a
// label; callers check IsLabel first.
func MoveFromLabel(r rune) Move {
	if !IsLabel(r) {
		panic(fmt.Sprintf("game: %q is not a cell label", r))
	}
	i := int(r - '1')
	return Move{Col: i % 3, Row: i / 3}
}

// ParseMove parses a line of human input into a move. Surrounding whitespace
// is ignored. It does not check whether the cell is free.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 1 || !IsLabel(rune(s[0])) {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidLabel, s)
	}
	return MoveFromLabel(rune(s[0])), nil
}
