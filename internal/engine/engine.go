package engine

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sammy7272/Chess-Game-Gui/internal/board"
)

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Color   board.Color
	Depth   int
	Move    board.Move
	Score   float64
	Nodes   uint64
	Time    time.Duration
	Workers int
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 2 ply
	Medium                   // 3 ply
	Hard                     // 4 ply
)

// DifficultyDepth maps difficulty to search depth.
var DifficultyDepth = map[Difficulty]int{
	Easy:   2,
	Medium: 3,
	Hard:   4,
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Depth returns the search depth for d, or DefaultDepth for an unknown level.
func (d Difficulty) Depth() int {
	if depth, ok := DifficultyDepth[d]; ok {
		return depth
	}
	return DefaultDepth
}

// ParseDifficulty parses "easy", "medium" or "hard", case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return Medium, fmt.Errorf("unknown difficulty %q", s)
	}
}

// Engine is the entry point used by callers that do not hold an Agent.
type Engine struct {
	difficulty Difficulty
	workers    int

	// Verbose logs one summary line per search.
	Verbose bool

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new engine at Medium difficulty with a sequential root search.
func NewEngine() *Engine {
	return &Engine{
		difficulty: Medium,
		workers:    1,
	}
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the current difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// SetWorkers sets how many root moves are searched concurrently.
// n <= 0 uses GOMAXPROCS; 1 disables concurrency.
func (e *Engine) SetWorkers(n int) {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	e.workers = n
}

// Workers returns the root search concurrency.
func (e *Engine) Workers() int {
	return e.workers
}

// Search finds the best move for the side to move at the engine's difficulty.
func (e *Engine) Search(pos *board.Position) (board.Move, bool) {
	return e.BestMove(pos, pos.Turn(), e.difficulty.Depth())
}

// BestMove finds the best move for color searching depth plies. A depth
// below 1 selects DefaultDepth and a depth above MaxDepth (8) is searched
// at MaxDepth. It reports false when color has no move.
func (e *Engine) BestMove(pos *board.Position, color board.Color, depth int) (board.Move, bool) {
	move, ok, err := e.BestMoveContext(context.Background(), pos, color, depth)
	if err != nil {
		return board.NoMove, false
	}
	return move, ok
}

// BestMoveContext is BestMove with cancellation. Cancellation is only
// observed between root moves of a concurrent search.
func (e *Engine) BestMoveContext(ctx context.Context, pos *board.Position, color board.Color, depth int) (board.Move, bool, error) {
	agent := NewAgent(color, clampDepth(depth))

	if pos.IsGameOver() {
		return board.NoMove, false, nil
	}
	moves := pos.AllLegalMoves(color)
	if len(moves) == 0 {
		return board.NoMove, false, nil
	}

	start := time.Now()
	var (
		move  board.Move
		score float64
		err   error
	)
	if e.workers > 1 && len(moves) > 1 {
		move, score, err = searchRootParallel(ctx, agent, pos, moves, e.workers)
	} else {
		move, score = agent.searchRoot(pos, moves)
	}
	if err != nil {
		return board.NoMove, false, err
	}

	info := SearchInfo{
		Color:   color,
		Depth:   agent.Depth,
		Move:    move,
		Score:   score,
		Nodes:   agent.Nodes(),
		Time:    time.Since(start),
		Workers: e.workers,
	}
	if e.Verbose {
		log.Printf("engine: %s depth %d move %s score %s nodes %d time %v",
			info.Color, info.Depth, info.Move, ScoreToString(info.Score), info.Nodes, info.Time.Round(time.Millisecond))
	}
	if e.OnInfo != nil {
		e.OnInfo(info)
	}

	return move, true, nil
}

// clampDepth maps a requested depth into [1, MaxDepth], using DefaultDepth below 1.
func clampDepth(depth int) int {
	switch {
	case depth < 1:
		return DefaultDepth
	case depth > MaxDepth:
		return MaxDepth
	}
	return depth
}

// searchRootParallel scores every root move with a full window, each on its
// own clone, then applies the same earliest-strictly-greater rule as the
// sequential root. Full windows give exact values, so the choice matches
// the sequential search.
func searchRootParallel(ctx context.Context, agent *Agent, pos *board.Position, moves []board.Move, workers int) (board.Move, float64, error) {
	values := make([]float64, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			values[i] = agent.searchChild(pos, m, -Infinity, Infinity)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return board.NoMove, 0, err
	}

	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return moves[best], values[best], nil
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.AllLegalMoves(pos.Turn())
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		if err := pos.ApplyMoveUnchecked(m.From, m.To); err != nil {
			panic(err)
		}
		nodes += e.Perft(pos, depth-1)
		if err := pos.UndoMove(); err != nil {
			panic(err)
		}
	}

	return nodes
}

// Evaluate returns the static evaluation of a position from color's point of view.
func (e *Engine) Evaluate(pos *board.Position, color board.Color) float64 {
	return Evaluate(pos, color)
}

// ScoreToString converts a score in centipawns to pawns, e.g. "+1.25".
func ScoreToString(score float64) string {
	return fmt.Sprintf("%+.2f", score/100)
}
