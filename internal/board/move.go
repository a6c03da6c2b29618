package board

import "fmt"

// Move is a from/to square pair. Special moves (castling, en passant,
// promotion) are recognised from the position when the move is applied.
type Move struct {
	From Square
	To   Square
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare}

// NewMove creates a move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// String returns the coordinate form of the move (e.g., "e2e4").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// ParseMove parses a coordinate move string such as "e2e4".
// A trailing promotion letter is accepted only as 'q', since pawns always
// promote to a queen.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 && s[4] != 'q' && s[4] != 'Q' {
		return NoMove, fmt.Errorf("unsupported promotion piece: %c", s[4])
	}

	return NewMove(from, to), nil
}

// moveRecord captures everything needed to invert a move exactly.
type moveRecord struct {
	from, to Square

	// moved is the mover as it stood on from, including its HasMoved flag.
	moved Piece

	// captured sits on capturedSq before the move; capturedSq differs from
	// to only for en passant.
	captured   Piece
	capturedSq Square

	castle           bool
	rookFrom, rookTo Square

	priorEnPassant Square
	priorHalfMove  int
}
