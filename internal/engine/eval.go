// Package engine implements the chess AI: a static evaluator and a
// fixed-perspective minimax search with alpha-beta pruning.
package engine

import (
	"github.com/sammy7272/Chess-Game-Gui/internal/board"
)

// Evaluation constants
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

// Piece values indexed by board.PieceType.
var pieceValues = [7]int{0, PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue}

const (
	mobilityWeight = 0.1 // Per legal move of difference
	checkPenalty   = 50  // Own king in check costs this much, the opponent's earns it
)

// Piece-square tables from White's point of view, indexed [row][col] with
// row 0 = rank 8. Black reads them mirrored at [7-row][col].
var (
	pawnPST = [8][8]int{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{50, 50, 50, 50, 50, 50, 50, 50},
		{10, 10, 20, 30, 30, 20, 10, 10},
		{5, 5, 10, 25, 25, 10, 5, 5},
		{0, 0, 0, 20, 20, 0, 0, 0},
		{5, -5, -10, 0, 0, -10, -5, 5},
		{5, 10, 10, -20, -20, 10, 10, 5},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}

	knightPST = [8][8]int{
		{-50, -40, -30, -30, -30, -30, -40, -50},
		{-40, -20, 0, 0, 0, 0, -20, -40},
		{-30, 0, 10, 15, 15, 10, 0, -30},
		{-30, 5, 15, 20, 20, 15, 5, -30},
		{-30, 0, 15, 20, 20, 15, 0, -30},
		{-30, 5, 10, 15, 15, 10, 5, -30},
		{-40, -20, 0, 5, 5, 0, -20, -40},
		{-50, -40, -30, -30, -30, -30, -40, -50},
	}

	bishopPST = [8][8]int{
		{-20, -10, -10, -10, -10, -10, -10, -20},
		{-10, 0, 0, 0, 0, 0, 0, -10},
		{-10, 0, 10, 10, 10, 10, 0, -10},
		{-10, 5, 5, 10, 10, 5, 5, -10},
		{-10, 0, 5, 10, 10, 5, 0, -10},
		{-10, 5, 5, 5, 5, 5, 5, -10},
		{-10, 0, 5, 0, 0, 5, 0, -10},
		{-20, -10, -10, -10, -10, -10, -10, -20},
	}

	rookPST = [8][8]int{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{5, 10, 10, 10, 10, 10, 10, 5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{0, 0, 0, 5, 5, 0, 0, 0},
	}

	queenPST = [8][8]int{
		{-20, -10, -10, -5, -5, -10, -10, -20},
		{-10, 0, 0, 0, 0, 0, 0, -10},
		{-10, 0, 5, 5, 5, 5, 0, -10},
		{-5, 0, 5, 5, 5, 5, 0, -5},
		{0, 0, 5, 5, 5, 5, 0, -5},
		{-10, 5, 5, 5, 5, 5, 0, -10},
		{-10, 0, 5, 0, 0, 0, 0, -10},
		{-20, -10, -10, -5, -5, -10, -10, -20},
	}

	// Middlegame only; there is no endgame king table.
	kingPST = [8][8]int{
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-20, -30, -30, -40, -40, -30, -30, -20},
		{-10, -20, -20, -20, -20, -20, -20, -10},
		{20, 20, 0, 0, 0, 0, 20, 20},
		{20, 30, 10, 0, 0, 10, 30, 20},
	}
)

// pieceSquareTables is indexed by board.PieceType.
var pieceSquareTables = [7]*[8][8]int{
	nil, &pawnPST, &knightPST, &bishopPST, &rookPST, &queenPST, &kingPST,
}

// pieceValue returns base value plus the positional bonus of piece on (row, col).
func pieceValue(piece board.Piece, row, col int) int {
	if piece.Color == board.Black {
		row = 7 - row
	}
	return pieceValues[piece.Type] + pieceSquareTables[piece.Type][row][col]
}

// Material returns the material and piece-square balance from perspective's point of view.
func Material(pos *board.Position, perspective board.Color) int {
	score := 0
	b := pos.Board()
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := b[row][col]
			if piece.IsEmpty() {
				continue
			}
			if piece.Color == perspective {
				score += pieceValue(piece, row, col)
			} else {
				score -= pieceValue(piece, row, col)
			}
		}
	}
	return score
}

// Evaluate returns a static score of the position where higher values favor
// perspective. It does not modify the position.
//
// Mobility counts legal moves, and only the side to move has any, so the
// mobility term always favors the side to move.
func Evaluate(pos *board.Position, perspective board.Color) float64 {
	opponent := perspective.Other()

	score := float64(Material(pos, perspective))

	own := pos.LegalMoveCount(perspective)
	opp := pos.LegalMoveCount(opponent)
	score += mobilityWeight * float64(own-opp)

	if pos.IsCheck(perspective) {
		score -= checkPenalty
	}
	if pos.IsCheck(opponent) {
		score += checkPenalty
	}

	return score
}
