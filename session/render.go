package session

import (
	"io"
	"strings"

	"github.com/twipi/tictactoe/game"
)

// Renderer draws a board for the human player.
type Renderer interface {
	Render(w io.Writer, b game.Board) error
}

const (
	cellSpriteWidth  = 7
	cellSpriteHeight = 3
)

var boardSprite = [...]string{
	"+-------+-------+-------+",
	"|       |       |       |",
	"|   1   |   2   |   3   |",
	"|       |       |       |",
	"+-------+-------+-------+",
	"|       |       |       |",
	"|   4   |   5   |   6   |",
	"|       |       |       |",
	"+-------+-------+-------+",
	"|       |       |       |",
	"|   7   |   8   |   9   |",
	"|       |       |       |",
	"+-------+-------+-------+",
}

var cellSprites = map[game.Player][cellSpriteHeight]string{
	game.PlayerX: {
		` \\ // `,
		`  |||  `,
		` // \\ `,
	},
	game.PlayerO: {
		`  ooo  `,
		`  o o  `,
		`  ooo  `,
	},
}

// SpriteRenderer draws the board as a large ASCII grid. Empty cells show
// their label and occupied cells show the mark's sprite.
type SpriteRenderer struct{}

var _ Renderer = SpriteRenderer{}

// Render implements [Renderer].
func (SpriteRenderer) Render(w io.Writer, b game.Board) error {
	var rows [len(boardSprite)][]byte
	for i, line := range boardSprite {
		rows[i] = []byte(line)
	}

	for row := range 3 {
		for col := range 3 {
			sprite, ok := cellSprites[b.Get(col, row)]
			if !ok {
				continue
			}
			for y, line := range sprite {
				gy := (cellSpriteHeight+1)*row + y + 1
				gx := (cellSpriteWidth+1)*col + 1
				copy(rows[gy][gx:], line)
			}
		}
	}

	var s strings.Builder
	for _, line := range rows {
		s.Write(line)
		s.WriteByte('\n')
	}
	_, err := io.WriteString(w, s.String())
	return err
}

// PlainRenderer draws the board as three short lines, one character per
// cell.
type PlainRenderer struct{}

var _ Renderer = PlainRenderer{}

// Render implements [Renderer].
func (PlainRenderer) Render(w io.Writer, b game.Board) error {
	var s strings.Builder
	for row := range 3 {
		for col := range 3 {
			if col > 0 {
				s.WriteByte('|')
			}
			switch p := b.Get(col, row); p {
			case game.NoPlayer:
				s.WriteRune(game.Move{Col: col, Row: row}.Label())
			default:
				s.WriteString(p.String())
			}
		}
		s.WriteByte('\n')
	}
	_, err := io.WriteString(w, s.String())
	return err
}
