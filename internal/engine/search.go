package engine

import (
	"math"
	"sync/atomic"

	"github.com/sammy7272/Chess-Game-Gui/internal/board"
)

// Search constants
const (
	DefaultDepth = 3
	MaxDepth     = 8
)

// Infinity bounds the alpha-beta window.
var Infinity = math.Inf(1)

// Agent plays one color with a fixed ply budget. All values it computes are
// from its own color's point of view and are never negated between plies.
type Agent struct {
	Color board.Color
	Depth int

	nodes atomic.Uint64
}

// NewAgent creates an agent for color. A depth below 1 selects DefaultDepth.
func NewAgent(color board.Color, depth int) *Agent {
	if depth < 1 {
		depth = DefaultDepth
	}
	return &Agent{Color: color, Depth: depth}
}

// Nodes returns the number of positions visited since the last ResetNodes.
func (a *Agent) Nodes() uint64 {
	return a.nodes.Load()
}

// ResetNodes clears the node counter.
func (a *Agent) ResetNodes() {
	a.nodes.Store(0)
}

// BestMove returns the agent's chosen move in pos. It reports false when the
// game is over or the agent's color has no legal move. The position is
// never modified; every line is explored on a clone.
//
// Candidates are tried in AllLegalMoves order and only a strictly greater
// value replaces the incumbent, so ties go to the earliest move.
func (a *Agent) BestMove(pos *board.Position) (board.Move, bool) {
	if pos.IsGameOver() {
		return board.NoMove, false
	}
	moves := pos.AllLegalMoves(a.Color)
	if len(moves) == 0 {
		return board.NoMove, false
	}

	best, _ := a.searchRoot(pos, moves)
	return best, true
}

// searchRoot runs the root loop over moves and returns the chosen move and its value.
func (a *Agent) searchRoot(pos *board.Position, moves []board.Move) (board.Move, float64) {
	bestMove := moves[0]
	bestValue := -Infinity
	alpha, beta := -Infinity, Infinity
	found := false

	for _, m := range moves {
		value := a.searchChild(pos, m, alpha, beta)
		if !found || value > bestValue {
			bestMove, bestValue = m, value
			found = true
		}

		alpha = math.Max(alpha, bestValue)
		if beta <= alpha {
			break
		}
	}

	return bestMove, bestValue
}

// searchChild plays m on a clone of pos and searches the reply at Depth-1.
func (a *Agent) searchChild(pos *board.Position, m board.Move, alpha, beta float64) float64 {
	child := pos.Clone()
	if err := child.ApplyMoveUnchecked(m.From, m.To); err != nil {
		// Moves come from AllLegalMoves, so this cannot happen.
		panic(err)
	}
	return a.minimax(child, a.Depth-1, alpha, beta, false)
}

// minimax is alpha-beta over separately signed levels: the maximizing level
// plays the agent's moves and the minimizing level plays the opponent's.
func (a *Agent) minimax(pos *board.Position, depth int, alpha, beta float64, maximizing bool) float64 {
	a.nodes.Add(1)

	if depth <= 0 || pos.IsGameOver() {
		return Evaluate(pos, a.Color)
	}

	if maximizing {
		maxEval := -Infinity
		for _, m := range pos.AllLegalMoves(a.Color) {
			child := pos.Clone()
			if err := child.ApplyMoveUnchecked(m.From, m.To); err != nil {
				panic(err)
			}

			eval := a.minimax(child, depth-1, alpha, beta, false)
			maxEval = math.Max(maxEval, eval)

			alpha = math.Max(alpha, eval)
			if beta <= alpha {
				break
			}
		}
		return maxEval
	}

	minEval := Infinity
	for _, m := range pos.AllLegalMoves(a.Color.Other()) {
		child := pos.Clone()
		if err := child.ApplyMoveUnchecked(m.From, m.To); err != nil {
			panic(err)
		}

		eval := a.minimax(child, depth-1, alpha, beta, true)
		minEval = math.Min(minEval, eval)

		beta = math.Min(beta, eval)
		if beta <= alpha {
			break
		}
	}
	return minEval
}
