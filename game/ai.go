package game

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
)

// Sentinel bounds for the search window. Terminal scores never exceed ±100.
const (
	PositiveInfinity = +1000 * 1000 * 1000
	NegativeInfinity = -1000 * 1000 * 1000
)

// Weights is a table of tie-break bonuses indexed [row][col].
type Weights [3][3]int

// PreferenceWeights favors the center, then the corners.
var PreferenceWeights = Weights{
	{5, 0, 5},
	{0, 20, 0},
	{5, 0, 5},
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithWeights replaces the preference weights. Zero weights give plain
// minimax values.
func WithWeights(w Weights) EngineOption {
	return func(e *Engine) { e.weights = w }
}

// WithoutPruning disables alpha-beta cutoffs so that every node is visited.
func WithoutPruning() EngineOption {
	return func(e *Engine) { e.prune = false }
}

// WithNodeCounter adds the nodes visited by each search to c. The counter may
// be shared between engines running on different goroutines.
func WithNodeCounter(c *xsync.Counter) EngineOption {
	return func(e *Engine) { e.counter = c }
}

// Engine searches the game tree with minimax and alpha-beta pruning. O is the
// maximizing player and X the minimizing one. An Engine is not safe for
// concurrent use.
type Engine struct {
	weights Weights
	prune   bool
	counter *xsync.Counter
	nodes   int64
}

// NewEngine creates a new engine using PreferenceWeights.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		weights: PreferenceWeights,
		prune:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Nodes returns the number of nodes visited by the last call to Search or
// BestMove.
func (e *Engine) Nodes() int64 {
	return e.nodes
}

// Search returns the score of b with toMove to play, searched within the
// window (alpha, beta). Wins found at a smaller depth score further from
// zero. The weight of the locally best move is added to (for O) or
// subtracted from (for X) the value a node reports, but never to the bounds
// passed down.
func (e *Engine) Search(b Board, depth, alpha, beta int, toMove Player) int {
	e.nodes = 0
	defer e.flush()
	return e.search(b, depth, alpha, beta, toMove)
}

// BestMove returns the move O should play on b. Moves are tried in row-major
// order and the first one with the greatest score wins. It panics if the game
// on b is already decided.
func (e *Engine) BestMove(b Board) Move {
	m, _ := e.Analyze(b)
	return m
}

// Analyze is like BestMove but also returns the move's score.
func (e *Engine) Analyze(b Board) (Move, int) {
	if outcome := b.Winner(); outcome.Decided() {
		panic(fmt.Sprintf("game: no move to search, board is decided (%v)", outcome))
	}

	e.nodes = 0
	defer e.flush()

	bestScore := NegativeInfinity
	var bestMove Move
	var found bool

	b.Moves(func(m Move) bool {
		next := b.Clone()
		next.SetMark(m.Col, m.Row, PlayerO)

		score := e.search(next, 0, NegativeInfinity, PositiveInfinity, PlayerX)
		if !found || score > bestScore {
			bestScore = score
			bestMove = m
			found = true
		}
		return true
	})

	return bestMove, bestScore
}

func (e *Engine) flush() {
	if e.counter != nil {
		e.counter.Add(e.nodes)
	}
}

func (e *Engine) search(b Board, depth, alpha, beta int, toMove Player) int {
	e.nodes++

	switch b.Winner() {
	case XWins:
		return -100 + depth
	case OWins:
		return 100 - depth
	case Tie:
		return 0
	}

	var value, bestScore int
	var bestMove Move
	var found bool

	switch toMove {
	case PlayerO:
		value = NegativeInfinity
		b.Moves(func(m Move) bool {
			next := b
			next[m.Row][m.Col] = PlayerO

			score := e.search(next, depth+1, alpha, beta, PlayerX)
			if !found || score > bestScore {
				bestScore = score
				bestMove = m
				found = true
			}

			value = max(value, score)
			if e.prune && value >= beta {
				return false
			}
			alpha = max(alpha, value)
			return true
		})
		return value + e.weights[bestMove.Row][bestMove.Col]

	case PlayerX:
		value = PositiveInfinity
		b.Moves(func(m Move) bool {
			next := b
			next[m.Row][m.Col] = PlayerX

			score := e.search(next, depth+1, alpha, beta, PlayerO)
			if !found || score < bestScore {
				bestScore = score
				bestMove = m
				found = true
			}

			value = min(value, score)
			if e.prune && value <= alpha {
				return false
			}
			beta = min(beta, value)
			return true
		})
		return value - e.weights[bestMove.Row][bestMove.Col]

	default:
		panic(fmt.Sprintf("game: invalid player to move %d", toMove))
	}
}

// AI represents the computer player. It always plays O.
type AI struct {
	game   *Game
	engine *Engine
}

// NewAI creates a new AI player for g.
func NewAI(g *Game, opts ...EngineOption) *AI {
	return &AI{game: g, engine: NewEngine(opts...)}
}

// Engine returns the engine the AI searches with.
func (a *AI) Engine() *Engine {
	return a.engine
}

// NextMove returns the next move that the AI should make.
// If the game is over or it is not the AI's turn, return false.
func (a *AI) NextMove() (Move, bool) {
	if a.game.Turn() != PlayerO || a.game.Outcome().Decided() {
		return Move{}, false
	}
	return a.engine.BestMove(a.game.Board), true
}

// MakeMove makes the next move for the AI.
// Returns true if the move was made successfully.
func (a *AI) MakeMove() bool {
	m, ok := a.NextMove()
	if !ok {
		return false
	}
	return a.game.MakeMove(m) == nil
}
