package game

import (
	"fmt"
	"testing"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAI(t *testing.T) {
	for col := range 3 {
		for row := range 3 {
			t.Run(fmt.Sprintf("start(%d,%d)", col, row), func(t *testing.T) {
				g := NewGame(PlayerX)
				require.NoError(t, g.MakeMove(Move{Col: col, Row: row}))
				t.Log(g)

				assertNeverLoses(t, g, NewAI(g))
			})
		}
	}

	t.Run("start(ai)", func(t *testing.T) {
		g := NewGame(PlayerO)
		assertNeverLoses(t, g, NewAI(g))
	})
}

// assertNeverLoses plays every possible sequence of X moves against the AI
// from the position in g.
func assertNeverLoses(t *testing.T, g *Game, ai *AI) {
	t.Helper()

	var play func(g *Game) bool
	play = func(g *Game) bool {
		if g.Outcome().Decided() {
			if g.Outcome() == XWins {
				t.Errorf("AI lost the game:\n%v", g)
				return false
			}
			return true
		}

		if g.Turn() == PlayerO {
			ai.game = g
			if !ai.MakeMove() {
				t.Errorf("AI failed to move:\n%v", g)
				return false
			}
			return play(g)
		}

		ok := true
		g.Board.Moves(func(m Move) bool {
			g2 := g.Clone()
			require.NoError(t, g2.MakeMove(m))
			ok = play(g2)
			return ok
		})
		return ok
	}

	play(g)
}

func TestBestMove(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  Move
	}{
		{
			name:  "empty board takes the center",
			board: Board{},
			want:  Move{Col: 1, Row: 1},
		},
		{
			name: "blocks the vertical line",
			board: Board{
				{x, n, n},
				{x, o, n},
				{n, n, n},
			},
			want: Move{Col: 0, Row: 2},
		},
		{
			name: "wins instead of blocking",
			board: Board{
				{o, o, n},
				{x, x, n},
				{n, n, n},
			},
			want: Move{Col: 2, Row: 0},
		},
		{
			name: "last free cell",
			board: Board{
				{x, o, x},
				{x, o, o},
				{o, x, n},
			},
			want: Move{Col: 2, Row: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			assert.Equal(t, tt.want, e.BestMove(tt.board))
			assert.Positive(t, e.Nodes())
		})
	}
}

func TestAnalyzeImmediateWin(t *testing.T) {
	b := Board{
		{o, o, n},
		{x, x, n},
		{n, n, n},
	}
	m, score := NewEngine().Analyze(b)
	assert.Equal(t, Move{Col: 2, Row: 0}, m)
	assert.Equal(t, 100, score)
}

func TestBestMoveDecidedBoard(t *testing.T) {
	won := Board{
		{x, x, x},
		{o, o, n},
		{n, n, n},
	}
	assert.Panics(t, func() { NewEngine().BestMove(won) })

	full := Board{
		{x, o, x},
		{x, o, o},
		{o, x, x},
	}
	assert.Panics(t, func() { NewEngine().BestMove(full) })
}

func TestSearchTerminalScores(t *testing.T) {
	oWon := Board{
		{o, o, o},
		{x, x, n},
		{x, n, n},
	}
	xWon := Board{
		{x, x, x},
		{o, o, n},
		{n, n, n},
	}
	tied := Board{
		{x, o, x},
		{x, o, o},
		{o, x, x},
	}

	e := NewEngine()
	for d := range 9 {
		assert.Equal(t, 100-d, e.Search(oWon, d, NegativeInfinity, PositiveInfinity, PlayerX))
		assert.Equal(t, -100+d, e.Search(xWon, d, NegativeInfinity, PositiveInfinity, PlayerO))
		assert.Equal(t, 0, e.Search(tied, d, NegativeInfinity, PositiveInfinity, PlayerX))
		assert.EqualValues(t, 1, e.Nodes())
	}

	assert.Greater(t,
		e.Search(oWon, 2, NegativeInfinity, PositiveInfinity, PlayerX),
		e.Search(oWon, 5, NegativeInfinity, PositiveInfinity, PlayerX))
	assert.Less(t,
		e.Search(xWon, 1, NegativeInfinity, PositiveInfinity, PlayerO),
		e.Search(xWon, 4, NegativeInfinity, PositiveInfinity, PlayerO))
}

func TestSearchDeterministic(t *testing.T) {
	b := Board{
		{x, n, n},
		{n, o, n},
		{n, n, x},
	}

	e := NewEngine()
	want := e.Search(b, 0, NegativeInfinity, PositiveInfinity, PlayerO)
	wantNodes := e.Nodes()
	for range 5 {
		assert.Equal(t, want, e.Search(b, 0, NegativeInfinity, PositiveInfinity, PlayerO))
		assert.Equal(t, wantNodes, e.Nodes())
		assert.Equal(t, want, NewEngine().Search(b, 0, NegativeInfinity, PositiveInfinity, PlayerO))
	}
}

// TestSearchPruningEquivalence checks that, without preference weights,
// alpha-beta returns the plain minimax value for every reachable board.
func TestSearchPruningEquivalence(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive minimax over every reachable board")
	}

	pruned := NewEngine(WithWeights(Weights{}))
	full := NewEngine(WithWeights(Weights{}), WithoutPruning())

	type position struct {
		board  Board
		toMove Player
	}
	seen := make(map[position]bool)

	var walk func(b Board, toMove Player)
	walk = func(b Board, toMove Player) {
		pos := position{b, toMove}
		if seen[pos] || b.Winner().Decided() {
			return
		}
		seen[pos] = true

		got := pruned.Search(b, 0, NegativeInfinity, PositiveInfinity, toMove)
		want := full.Search(b, 0, NegativeInfinity, PositiveInfinity, toMove)
		require.Equal(t, want, got, "%v to move on\n%v", toMove, b)
		require.LessOrEqual(t, pruned.Nodes(), full.Nodes())

		b.Moves(func(m Move) bool {
			next := b
			next.SetMark(m.Col, m.Row, toMove)
			walk(next, toMove.Opponent())
			return true
		})
	}

	walk(NewBoard(), PlayerX)
	walk(NewBoard(), PlayerO)
}

func TestSearchPruningVisitsFewerNodes(t *testing.T) {
	pruned := NewEngine()
	full := NewEngine(WithoutPruning())

	pruned.Search(NewBoard(), 0, NegativeInfinity, PositiveInfinity, PlayerX)
	full.Search(NewBoard(), 0, NegativeInfinity, PositiveInfinity, PlayerX)

	assert.EqualValues(t, 549946, full.Nodes())
	assert.Less(t, pruned.Nodes(), full.Nodes())
}

// TestSearchWeightsOutsideBounds documents that preference weights are added
// to the value a node reports but not to the bounds handed to its children,
// so with weights enabled a pruned search may report a different score than
// an unpruned one.
func TestSearchWeightsOutsideBounds(t *testing.T) {
	var b Board
	b.SetMark(0, 1, PlayerO)

	pruned := NewEngine().Search(b, 0, NegativeInfinity, PositiveInfinity, PlayerX)
	full := NewEngine(WithoutPruning()).Search(b, 0, NegativeInfinity, PositiveInfinity, PlayerX)
	assert.Equal(t, -10, pruned)
	assert.Equal(t, -20, full)

	var center Board
	center.SetMark(1, 1, PlayerO)
	assert.Equal(t, 0, NewEngine().Search(center, 0, NegativeInfinity, PositiveInfinity, PlayerX))
}

func TestSearchInvalidPlayer(t *testing.T) {
	assert.Panics(t, func() {
		NewEngine().Search(NewBoard(), 0, NegativeInfinity, PositiveInfinity, NoPlayer)
	})
}

func TestEngineNodeCounter(t *testing.T) {
	c := xsync.NewCounter()
	e := NewEngine(WithNodeCounter(c))

	e.BestMove(NewBoard())
	first := e.Nodes()
	assert.Equal(t, first, c.Value())

	var b Board
	b.SetMark(1, 1, PlayerO)
	e.Search(b, 0, NegativeInfinity, PositiveInfinity, PlayerX)
	assert.Equal(t, first+e.Nodes(), c.Value())
}

func TestAINextMove(t *testing.T) {
	g := NewGame(PlayerX)
	ai := NewAI(g)

	_, ok := ai.NextMove()
	assert.False(t, ok, "not the AI's turn")
	assert.False(t, ai.MakeMove())

	require.NoError(t, g.MakeMove(Move{Col: 0, Row: 0}))
	m, ok := ai.NextMove()
	require.True(t, ok)
	assert.True(t, g.Board.CanPlace(m))

	require.True(t, ai.MakeMove())
	assert.Equal(t, PlayerO, g.Board.Get(m.Col, m.Row))
	assert.Equal(t, PlayerX, g.Turn())
}
