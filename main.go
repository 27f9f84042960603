package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/twipi/tictactoe/arena"
	"github.com/twipi/tictactoe/game"
	"github.com/twipi/tictactoe/session"
	"golang.org/x/sync/errgroup"
)

var (
	firstPlayer = "random"
	seed        uint64
	verbose     = false
	plain       = false
	selfPlay    = 0
	workers     = 0
)

func init() {
	pflag.StringVarP(&firstPlayer, "first", "f", firstPlayer, "who moves first: random, human or computer")
	pflag.Uint64VarP(&seed, "seed", "s", seed, "random seed, 0 picks one from the clock")
	pflag.BoolVarP(&verbose, "verbose", "v", verbose, "log debug messages")
	pflag.BoolVar(&plain, "plain", plain, "draw a compact board instead of sprites")
	pflag.IntVarP(&selfPlay, "selfplay", "n", selfPlay, "play this many games against a random opponent instead of a human")
	pflag.IntVarP(&workers, "workers", "w", workers, "games played at the same time in self-play, 0 for one per CPU")
	pflag.Parse()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	os.Exit(start(ctx, logger))
}

func start(ctx context.Context, logger *slog.Logger) int {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	errg, ctx := errgroup.WithContext(ctx)

	if selfPlay > 0 {
		errg.Go(func() error {
			return runArena(ctx, logger.With("component", "arena"))
		})
	} else {
		errg.Go(func() error {
			return runSession(ctx, logger.With("component", "session"))
		})
	}

	if err := errg.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		logger.Error(
			"game error",
			"err", err)
		return 1
	}

	return 0
}

func runSession(ctx context.Context, logger *slog.Logger) error {
	var first session.FirstPlayer
	switch strings.ToLower(firstPlayer) {
	case "random":
		first = session.NewRandomFirstPlayer(rand.NewPCG(seed, seed))
	case "human", "x":
		first = session.FixedFirstPlayer(game.PlayerX)
	case "computer", "ai", "o":
		first = session.FixedFirstPlayer(game.PlayerO)
	default:
		return fmt.Errorf("unknown first player %q", firstPlayer)
	}

	var renderer session.Renderer = session.SpriteRenderer{}
	if plain {
		renderer = session.PlainRenderer{}
	}

	input := session.NewLineInput(os.Stdin, os.Stdout)
	defer input.Close()

	s := session.NewSession(input, os.Stdout, renderer, first, logger)
	_, err := s.Run(ctx)
	return err
}

func runArena(ctx context.Context, logger *slog.Logger) error {
	tally, err := arena.Run(ctx, arena.Config{
		Games:   selfPlay,
		Workers: workers,
		Seed:    seed,
	}, logger)
	if err != nil {
		return err
	}

	fmt.Printf("%d games: AI won %d, lost %d, tied %d\n",
		tally.Games(), tally.OWins, tally.XWins, tally.Ties)

	if tally.Losses() > 0 {
		return fmt.Errorf("AI lost %d of %d games", tally.Losses(), tally.Games())
	}
	return nil
}
