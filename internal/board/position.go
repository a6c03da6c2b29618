package board

import (
	"fmt"
	"strings"
)

// Position represents a complete chess game state.
//
// A Position is mutated in place by ApplyMove/UndoMove and is not safe for
// concurrent use. Speculative search must work on Clone()s.
type Position struct {
	board [8][8]Piece

	turn      Color
	enPassant Square // square skipped by a pawn double step, valid for one ply

	// King positions, indexed by Color (cached for check detection).
	kings [3]Square

	halfMoveClock  int
	fullMoveNumber int

	log []moveRecord

	gameOver bool
	winner   Color
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewPosition creates the standard starting position.
func NewPosition() *Position {
	p := &Position{
		turn:           White,
		enPassant:      NoSquare,
		fullMoveNumber: 1,
	}
	for col := 0; col < 8; col++ {
		p.board[0][col] = NewPiece(backRank[col], Black)
		p.board[1][col] = NewPiece(Pawn, Black)
		p.board[6][col] = NewPiece(Pawn, White)
		p.board[7][col] = NewPiece(backRank[col], White)
	}
	p.kings[White] = NewSquare(7, 4)
	p.kings[Black] = NewSquare(0, 4)
	return p
}

// NewGame is an alias for NewPosition.
func NewGame() *Position {
	return NewPosition()
}

// Clone creates a deep, independent copy of the position, including its move log.
func (p *Position) Clone() *Position {
	c := *p
	if p.log != nil {
		c.log = make([]moveRecord, len(p.log), cap(p.log))
		copy(c.log, p.log)
	}
	return &c
}

// scratch returns a copy without the move log, for make-and-probe legality checks.
func (p *Position) scratch() Position {
	s := *p
	s.log = nil
	return s
}

// PieceAt returns the piece at the given square, or NoPiece if empty or off the board.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return p.board[sq.Row][sq.Col]
}

func (p *Position) at(sq Square) Piece {
	return p.board[sq.Row][sq.Col]
}

func (p *Position) set(sq Square, piece Piece) {
	p.board[sq.Row][sq.Col] = piece
}

// Board returns a copy of the board contents.
func (p *Position) Board() [8][8]Piece {
	return p.board
}

// Turn returns the side to move.
func (p *Position) Turn() Color {
	return p.turn
}

// EnPassant returns the en passant target square, or NoSquare if none.
func (p *Position) EnPassant() Square {
	return p.enPassant
}

// KingSquare returns the cached king square for the given color.
func (p *Position) KingSquare(c Color) Square {
	if c != White && c != Black {
		return NoSquare
	}
	return p.kings[c]
}

// HalfMoveClock returns the number of plies since the last pawn move or capture.
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// FullMoveNumber returns the full move counter, starting at 1.
func (p *Position) FullMoveNumber() int {
	return p.fullMoveNumber
}

// IsGameOver reports whether the side to move has been checkmated or stalemated.
func (p *Position) IsGameOver() bool {
	return p.gameOver
}

// Winner returns the winning color, or NoColor for a draw or an unfinished game.
func (p *Position) Winner() Color {
	return p.winner
}

// History returns the moves applied so far, oldest first.
func (p *Position) History() []Move {
	moves := make([]Move, len(p.log))
	for i, rec := range p.log {
		moves[i] = NewMove(rec.from, rec.to)
	}
	return moves
}

// Plies returns the number of moves in the undo log.
func (p *Position) Plies() int {
	return len(p.log)
}

// LastMove returns the most recent move, or NoMove if none.
func (p *Position) LastMove() Move {
	if len(p.log) == 0 {
		return NoMove
	}
	rec := p.log[len(p.log)-1]
	return NewMove(rec.from, rec.to)
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d  ", 8-row)
		for col := 0; col < 8; col++ {
			sb.WriteString(p.board[row][col].String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.turn)
	fmt.Fprintf(&sb, "En passant: %s\n", p.enPassant)
	fmt.Fprintf(&sb, "FEN: %s\n", p.ToFEN())
	return sb.String()
}

// Validate checks the structural invariants of the position.
func (p *Position) Validate() error {
	var kings [3]int
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := p.board[row][col]
			if piece.Type == King {
				kings[piece.Color]++
				if p.kings[piece.Color] != NewSquare(row, col) {
					return fmt.Errorf("%s king cached on %s but found on %s",
						piece.Color, p.kings[piece.Color], NewSquare(row, col))
				}
			}
			if piece.Type == Pawn && (row == 0 || row == 7) {
				return fmt.Errorf("pawn on back rank at %s", NewSquare(row, col))
			}
		}
	}
	if kings[White] != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if kings[Black] != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	return nil
}
