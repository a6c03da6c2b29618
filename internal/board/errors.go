package board

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by move application and parsing.
// Use these with errors.Is() to check for specific conditions.
var (
	// ErrNoPieceAtSource indicates the origin square is empty.
	ErrNoPieceAtSource = errors.New("no piece at source square")

	// ErrNotYourTurn indicates the piece on the origin square belongs to the side not to move.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrIllegalMove indicates the destination is not among the legal moves of the piece.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNothingToUndo indicates the move log is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrInvalidSquare indicates a malformed or off-board square.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")
)

// MoveError wraps a rejected move with the move that caused it.
// It supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Move Move
	Err  error
}

// Error returns the move and the underlying reason.
func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s: %v", e.Move, e.Err)
}

// Unwrap returns the underlying error.
func (e *MoveError) Unwrap() error {
	return e.Err
}
