// Package session runs an interactive game of Tic-Tac-Toe between a human
// and the computer.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/twipi/tictactoe/game"
)

// Session is a single game between a human playing X and the AI playing O.
type Session struct {
	input    Input
	out      io.Writer
	renderer Renderer
	first    FirstPlayer
	logger   *slog.Logger
}

// NewSession creates a new session. Board drawings and messages are written
// to out.
func NewSession(input Input, out io.Writer, renderer Renderer, first FirstPlayer, logger *slog.Logger) *Session {
	return &Session{
		input:    input,
		out:      out,
		renderer: renderer,
		first:    first,
		logger:   logger,
	}
}

// Run plays the game until it is decided and returns its outcome.
// It returns early with an error if ctx is canceled or the input fails.
func (s *Session) Run(ctx context.Context) (game.Outcome, error) {
	first := s.first.FirstPlayer()
	g := game.NewGame(first)
	ai := game.NewAI(g)

	s.logger.Debug(
		"starting new game",
		"first", first)

	s.println("Your mark is X, AI is O.")
	s.render(g.Board)

	for {
		if err := ctx.Err(); err != nil {
			return game.Undecided, err
		}

		switch g.Turn() {
		case game.PlayerX:
			s.println(">>> It's your turn.")

			m, err := s.input.NextMove(ctx, g.Board)
			if err != nil {
				return game.Undecided, fmt.Errorf("failed to read move: %w", err)
			}
			if err := g.MakeMove(m); err != nil {
				return game.Undecided, fmt.Errorf("input returned unplayable move: %w", err)
			}

			s.logger.Debug(
				"human moved",
				"move", m,
				"label", string(m.Label()))

		case game.PlayerO:
			s.println(">>> AI's turn.")

			start := time.Now()
			m, ok := ai.NextMove()
			if !ok {
				panic("session: AI has no move on an undecided board")
			}
			elapsed := time.Since(start)

			if err := g.MakeMove(m); err != nil {
				panic(fmt.Sprintf("session: AI chose unplayable move: %v", err))
			}

			fmt.Fprintf(s.out, "AI duration: %d milliseconds.\n", elapsed.Milliseconds())
			s.logger.Info(
				"AI moved",
				"move", m,
				"duration", elapsed,
				"nodes", ai.Engine().Nodes())
		}

		s.render(g.Board)

		outcome := g.Outcome()
		if !outcome.Decided() {
			continue
		}

		switch outcome {
		case game.XWins:
			s.println("You won!")
		case game.OWins:
			s.println("AI won.")
		case game.Tie:
			s.println("It's a tie.")
		}
		s.println("")

		s.logger.Info(
			"game over",
			"outcome", outcome,
			"turns", g.Turns)
		return outcome, nil
	}
}

func (s *Session) println(msg string) {
	fmt.Fprintln(s.out, msg)
}

func (s *Session) render(b game.Board) {
	if err := s.renderer.Render(s.out, b); err != nil {
		s.logger.Error(
			"failed to render board",
			"err", err)
	}
}
