package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"

	"github.com/twipi/tictactoe/game"
)

// Input supplies the human player's moves.
type Input interface {
	// NextMove returns a move that can be placed on b.
	NextMove(ctx context.Context, b game.Board) (game.Move, error)
}

// LineInput reads moves from a line-oriented reader such as a terminal. Each
// line must hold a single label of an empty cell; anything else is rejected
// and the human is asked again.
type LineInput struct {
	r      io.Reader
	prompt io.Writer

	startOnce sync.Once
	closeOnce sync.Once
	lines     chan string
	done      chan struct{}
	err       error
}

var _ Input = (*LineInput)(nil)

// NewLineInput creates a new LineInput reading from r and writing prompts to
// prompt.
func NewLineInput(r io.Reader, prompt io.Writer) *LineInput {
	return &LineInput{
		r:      r,
		prompt: prompt,
		lines:  make(chan string),
		done:   make(chan struct{}),
	}
}

// NextMove implements [Input].
func (in *LineInput) NextMove(ctx context.Context, b game.Board) (game.Move, error) {
	in.startOnce.Do(func() { go in.scan() })

	for {
		fmt.Fprint(in.prompt, "Please enter your desired move: ")

		var line string
		select {
		case <-ctx.Done():
			return game.Move{}, ctx.Err()
		case l, ok := <-in.lines:
			if !ok {
				return game.Move{}, in.err
			}
			line = l
		}

		m, err := game.ParseMove(line)
		if err != nil || !b.CanPlace(m) {
			fmt.Fprintln(in.prompt, "Invalid move. Please try again.")
			continue
		}
		return m, nil
	}
}

// Close stops the background reader. It does not close the underlying
// reader.
func (in *LineInput) Close() error {
	in.closeOnce.Do(func() { close(in.done) })
	return nil
}

func (in *LineInput) scan() {
	defer close(in.lines)

	s := bufio.NewScanner(in.r)
	for s.Scan() {
		select {
		case in.lines <- s.Text():
		case <-in.done:
			in.err = io.ErrClosedPipe
			return
		}
	}

	in.err = s.Err()
	if in.err == nil {
		in.err = io.EOF
	}
}

// FirstPlayer picks which player makes the first move of a game.
type FirstPlayer interface {
	FirstPlayer() game.Player
}

// FixedFirstPlayer always lets the same player start.
type FixedFirstPlayer game.Player

// FirstPlayer implements [FirstPlayer].
func (p FixedFirstPlayer) FirstPlayer() game.Player {
	return game.Player(p)
}

// RandomFirstPlayer picks X or O uniformly at random.
type RandomFirstPlayer struct {
	rand *rand.Rand
}

// NewRandomFirstPlayer creates a RandomFirstPlayer. If src is nil, the
// runtime's random source is used.
func NewRandomFirstPlayer(src rand.Source) *RandomFirstPlayer {
	if src == nil {
		return &RandomFirstPlayer{}
	}
	return &RandomFirstPlayer{rand: rand.New(src)}
}

// FirstPlayer implements [FirstPlayer].
func (p *RandomFirstPlayer) FirstPlayer() game.Player {
	var n int
	if p.rand != nil {
		n = p.rand.IntN(2)
	} else {
		n = rand.IntN(2)
	}
	if n == 0 {
		return game.PlayerX
	}
	return game.PlayerO
}
