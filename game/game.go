// Package game implements a game of Tic-Tac-Toe against a computer opponent.
package game

import (
	"errors"
	"fmt"
	"strings"
)

// Player represents a player. It doubles as the occupancy of a board cell,
// where NoPlayer means the cell is empty.
type Player uint8

const (
	NoPlayer Player = iota
	// PlayerX is the minimizing player, played by the human.
	PlayerX
	// PlayerO is the maximizing player, played by the computer.
	PlayerO
)

// String returns the string representation of the player.
func (p Player) String() string {
	switch p {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return " "
	}
}

// Opponent returns the opponent of the player.
func (p Player) Opponent() Player {
	switch p {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return NoPlayer
	}
}

// Outcome is the result of a board, derived from its contents.
type Outcome uint8

const (
	Undecided Outcome = iota
	XWins
	OWins
	Tie
)

func (o Outcome) String() string {
	switch o {
	case XWins:
		return "X wins"
	case OWins:
		return "O wins"
	case Tie:
		return "tie"
	default:
		return "undecided"
	}
}

// Decided returns true if the game has ended.
func (o Outcome) Decided() bool {
	return o != Undecided
}

func outcomeFor(p Player) Outcome {
	switch p {
	case PlayerX:
		return XWins
	case PlayerO:
		return OWins
	}
	panic(fmt.Sprintf("game: no outcome for player %d", p))
}

// Move represents a position on the board.
type Move struct {
	Col, Row int
}

// MoveAt returns a move at the given coordinates.
// If the coordinates are invalid, returns an error.
func MoveAt(col, row int) (Move, error) {
	m := Move{Col: col, Row: row}
	if !m.IsValid() {
		return Move{}, fmt.Errorf("invalid position: (%d, %d)", col, row)
	}
	return m, nil
}

// IsValid returns true if the move is within the board.
func (m Move) IsValid() bool {
	return m.Col >= 0 && m.Col < 3 && m.Row >= 0 && m.Row < 3
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Col, m.Row)
}

// Board represents a Tic-Tac-Toe board, indexed [row][col]. Board is a value
// type, so assigning it copies every cell.
type Board [3][3]Player

// NewBoard returns a board with all nine cells empty.
func NewBoard() Board {
	return Board{}
}

func mustBeOnBoard(col, row int) {
	if col < 0 || col > 2 || row < 0 || row > 2 {
		panic(fmt.Sprintf("game: cell (%d,%d) is off the board", col, row))
	}
}

// Get returns the occupant of the given cell. It panics if the cell is off
// the board.
func (b Board) Get(col, row int) Player {
	mustBeOnBoard(col, row)
	return b[row][col]
}

// SetMark places p at the given cell without checking whether the cell is
// free. It panics if the cell is off the board.
func (b *Board) SetMark(col, row int, p Player) {
	mustBeOnBoard(col, row)
	b[row][col] = p
}

// CanPlace returns true if m is on the board and its cell is empty.
func (b Board) CanPlace(m Move) bool {
	return m.IsValid() && b[m.Row][m.Col] == NoPlayer
}

// HasEmptyCell returns true if at least one cell is empty.
func (b Board) HasEmptyCell() bool {
	for r := range 3 {
		for c := range 3 {
			if b[r][c] == NoPlayer {
				return true
			}
		}
	}
	return false
}

// Count returns the number of occupied cells.
func (b Board) Count() int {
	var n int
	for r := range 3 {
		for c := range 3 {
			if b[r][c] != NoPlayer {
				n++
			}
		}
	}
	return n
}

// Clone returns an independent copy of the board.
func (b Board) Clone() Board {
	return b
}

// Winner evaluates the board. Rows and columns are checked first, then the
// two diagonals. Without a complete line the board is a tie once it is full.
func (b Board) Winner() Outcome {
	for i := range 3 {
		if b[i][0] == b[i][1] && b[i][1] == b[i][2] && b[i][0] != NoPlayer {
			return outcomeFor(b[i][0])
		}
		if b[0][i] == b[1][i] && b[1][i] == b[2][i] && b[0][i] != NoPlayer {
			return outcomeFor(b[0][i])
		}
	}
	if b[0][0] == b[1][1] && b[1][1] == b[2][2] && b[0][0] != NoPlayer {
		return outcomeFor(b[0][0])
	}
	if b[0][2] == b[1][1] && b[1][1] == b[2][0] && b[0][2] != NoPlayer {
		return outcomeFor(b[0][2])
	}
	if !b.HasEmptyCell() {
		return Tie
	}
	return Undecided
}

// Moves calls yield for every legal move in row-major order, stopping early
// if yield returns false.
func (b Board) Moves(yield func(Move) bool) {
	for r := range 3 {
		for c := range 3 {
			if b[r][c] == NoPlayer && !yield(Move{Col: c, Row: r}) {
				return
			}
		}
	}
}

func (b Board) String() string {
	var s strings.Builder
	s.WriteByte('[')
	for r := range 3 {
		if r > 0 {
			s.WriteByte(' ')
		}

		s.WriteByte('[')
		for c := range 2 {
			s.WriteString(b[r][c].String())
			s.WriteByte(' ')
		}
		s.WriteString(b[r][2].String())
		s.WriteString("]")

		if r < 2 {
			s.WriteString("\n")
		} else {
			s.WriteByte(']')
		}
	}
	return s.String()
}

// State is the state of a game.
type State uint8

const (
	XToMove State = iota
	OToMove
	XWon
	OWon
	Tied
)

func (s State) String() string {
	switch s {
	case XToMove:
		return "X to move"
	case OToMove:
		return "O to move"
	case XWon:
		return "X won"
	case OWon:
		return "O won"
	default:
		return "tied"
	}
}

var (
	ErrGameOver     = errors.New("game is over")
	ErrInvalidMove  = errors.New("move is off the board")
	ErrCellOccupied = errors.New("cell is already occupied")
)

// Game represents a game of Tic-Tac-Toe.
type Game struct {
	Board
	Turns int

	first Player
}

// NewGame creates a new game where first makes the first move.
func NewGame(first Player) *Game {
	if first != PlayerX && first != PlayerO {
		panic(fmt.Sprintf("game: invalid first player %d", first))
	}
	return &Game{
		Board: NewBoard(),
		first: first,
	}
}

func (g *Game) String() string {
	return fmt.Sprintf("turn %d (%s):\n%s", g.Turns, g.State(), g.Board)
}

// Turn returns the player to move.
func (g *Game) Turn() Player {
	if g.Turns%2 == 0 {
		return g.first
	}
	return g.first.Opponent()
}

// Outcome returns the outcome of the current board.
func (g *Game) Outcome() Outcome {
	return g.Board.Winner()
}

// State returns the state of the game.
func (g *Game) State() State {
	switch g.Outcome() {
	case XWins:
		return XWon
	case OWins:
		return OWon
	case Tie:
		return Tied
	}
	if g.Turn() == PlayerX {
		return XToMove
	}
	return OToMove
}

// MakeMove makes a move for the current player at the given position.
func (g *Game) MakeMove(m Move) error {
	if g.Outcome().Decided() {
		return ErrGameOver
	}
	if !m.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidMove, m)
	}
	if !g.Board.CanPlace(m) {
		return fmt.Errorf("%w: %v", ErrCellOccupied, m)
	}
	g.Board.SetMark(m.Col, m.Row, g.Turn())
	g.Turns++
	return nil
}

// Clone creates a deep copy of the game.
func (g *Game) Clone() *Game {
	g2 := *g
	return &g2
}
