// Package arena plays many games between the AI and a random opponent to
// check that the AI never loses.
package arena

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"runtime"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/twipi/tictactoe/game"
	"golang.org/x/sync/errgroup"
)

// Config configures a run of the arena.
type Config struct {
	// Games is the number of games to play.
	Games int
	// Workers is the number of games played at the same time. Zero means
	// one per CPU.
	Workers int
	// Seed seeds the random opponent and the choice of the first player.
	// Runs with the same seed play the same games.
	Seed uint64
}

// Tally counts the outcomes of the games played.
type Tally struct {
	XWins int
	OWins int
	Ties  int
	// Nodes is the number of search nodes the AI visited over all games.
	Nodes int64
}

// Games returns the number of games counted.
func (t Tally) Games() int {
	return t.XWins + t.OWins + t.Ties
}

// Losses returns the number of games the AI lost.
func (t Tally) Losses() int {
	return t.XWins
}

// Run plays cfg.Games games. It stops early if ctx is canceled, returning
// the tally of the games that finished along with the context's error.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) (Tally, error) {
	if cfg.Games < 0 {
		return Tally{}, errors.New("number of games must not be negative")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := xsync.NewMapOf[game.Outcome, int]()
	nodes := xsync.NewCounter()

	errg, gctx := errgroup.WithContext(ctx)
	errg.SetLimit(workers)

	for i := range cfg.Games {
		if gctx.Err() != nil {
			break
		}

		errg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rng := rand.New(rand.NewPCG(cfg.Seed, uint64(i)))
			g := Play(rng, game.WithNodeCounter(nodes))

			outcomes.Compute(g.Outcome(), func(n int, _ bool) (int, bool) {
				return n + 1, false
			})

			logger.Debug(
				"game finished",
				"game", i,
				"outcome", g.Outcome(),
				"turns", g.Turns)
			return nil
		})
	}

	err := errg.Wait()
	if err == nil {
		err = ctx.Err()
	}

	tally := Tally{Nodes: nodes.Value()}
	outcomes.Range(func(outcome game.Outcome, n int) bool {
		switch outcome {
		case game.XWins:
			tally.XWins = n
		case game.OWins:
			tally.OWins = n
		case game.Tie:
			tally.Ties = n
		}
		return true
	})

	logger.Info(
		"arena finished",
		"games", tally.Games(),
		"x_wins", tally.XWins,
		"o_wins", tally.OWins,
		"ties", tally.Ties,
		"nodes", tally.Nodes)

	return tally, err
}

// Play plays a single game. The first player is picked at random, X plays
// uniformly random legal moves and O is played by the AI.
func Play(rng *rand.Rand, opts ...game.EngineOption) *game.Game {
	first := game.PlayerX
	if rng.IntN(2) == 1 {
		first = game.PlayerO
	}

	g := game.NewGame(first)
	ai := game.NewAI(g, opts...)

	for !g.Outcome().Decided() {
		if g.Turn() == game.PlayerO {
			if !ai.MakeMove() {
				panic("arena: AI failed to move on an undecided board")
			}
			continue
		}

		var moves []game.Move
		g.Board.Moves(func(m game.Move) bool {
			moves = append(moves, m)
			return true
		})
		if err := g.MakeMove(moves[rng.IntN(len(moves))]); err != nil {
			panic("arena: random move was rejected: " + err.Error())
		}
	}

	return g
}
