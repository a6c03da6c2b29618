// Package board implements the chess position: an 8x8 mailbox board with
// full legal move generation, reversible move application and game-end
// detection.
package board

import "fmt"

// Square is a (row, column) coordinate on the board.
// Row 0 is rank 8 (Black's home rank) and row 7 is rank 1; column 0 is file a.
type Square struct {
	Row int
	Col int
}

// NoSquare marks an absent square, e.g. no en passant target.
var NoSquare = Square{Row: -1, Col: -1}

// NewSquare creates a square from row and column (0-indexed).
func NewSquare(row, col int) Square {
	return Square{Row: row, Col: col}
}

// Valid reports whether the square lies on the board.
func (sq Square) Valid() bool {
	return sq.Row >= 0 && sq.Row < 8 && sq.Col >= 0 && sq.Col < 8
}

// Offset returns the square dr rows and dc columns away. The result may be off the board.
func (sq Square) Offset(dr, dc int) Square {
	return Square{Row: sq.Row + dr, Col: sq.Col + dc}
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col, '8'-sq.Row)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	col := int(s[0]) - 'a'
	if s[0] >= 'A' && s[0] <= 'H' {
		col = int(s[0]) - 'A'
	}
	row := '8' - int(s[1])

	sq := NewSquare(row, col)
	if !sq.Valid() {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return sq, nil
}

// MustParseSquare is like ParseSquare but panics on malformed input.
// It is intended for constants and tests.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}
