package board

import "strings"

// Color represents the color of a piece or player.
type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

// Other returns the opposite color. NoColor has no opposite.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// ParseColor parses "white"/"w" or "black"/"b" (case-insensitive).
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	default:
		return NoColor, false
	}
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if pt > King {
		return ' '
	}
	return chars[pt]
}

// Piece is the content of a single square. The zero value is an empty square.
//
// HasMoved cannot be derived from the board: it gates the pawn double step
// and castling, so it travels with the piece.
type Piece struct {
	Type     PieceType
	Color    Color
	HasMoved bool
}

// NoPiece is the empty square.
var NoPiece = Piece{}

// NewPiece creates an unmoved piece.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType || c == NoColor {
		return NoPiece
	}
	return Piece{Type: pt, Color: c}
}

// IsEmpty reports whether the square holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// Is reports whether the piece has the given type and color.
func (p Piece) Is(pt PieceType, c Color) bool {
	return p.Type == pt && p.Color == c
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black, "." for an empty square.
func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	ch := p.Type.Char()
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return string(ch)
}

// PieceFromChar converts a FEN character to an unmoved Piece.
func PieceFromChar(c byte) Piece {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	switch c {
	case 'P':
		return NewPiece(Pawn, color)
	case 'N':
		return NewPiece(Knight, color)
	case 'B':
		return NewPiece(Bishop, color)
	case 'R':
		return NewPiece(Rook, color)
	case 'Q':
		return NewPiece(Queen, color)
	case 'K':
		return NewPiece(King, color)
	default:
		return NoPiece
	}
}
