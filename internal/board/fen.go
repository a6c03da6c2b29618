package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a Position.
//
// FEN carries no per-piece move history, so HasMoved is derived: a pawn is
// unmoved only on its starting rank, a king or rook is unmoved only while the
// matching castling right is present, and any other piece is unmoved only on
// its square of the standard starting layout.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidFEN, len(parts))
	}

	pos := &Position{
		enPassant:      NoSquare,
		fullMoveNumber: 1,
	}
	pos.kings[White] = NoSquare
	pos.kings[Black] = NoSquare

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		pos.turn = White
	case "b":
		pos.turn = Black
	default:
		return nil, fmt.Errorf("%w: invalid side to move: %s", ErrInvalidFEN, parts[1])
	}

	// Parse castling rights (field 2)
	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid en passant square: %s", ErrInvalidFEN, parts[3])
		}
		pos.enPassant = sq
	}

	// Parse half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid half-move clock: %s", ErrInvalidFEN, parts[4])
		}
		pos.halfMoveClock = hmc
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid full-move number: %s", ErrInvalidFEN, parts[5])
		}
		pos.fullMoveNumber = fmn
	}

	if err := pos.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	if pos.IsCheck(pos.turn.Other()) {
		return nil, fmt.Errorf("%w: %s is in check but not to move", ErrInvalidFEN, pos.turn.Other())
	}

	pos.classify()
	return pos, nil
}

// MustParseFEN is like ParseFEN but panics on error. It is intended for tests.
func MustParseFEN(fen string) *Position {
	pos, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return pos
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	// FEN starts from rank 8, which is row 0.
	for row, rankStr := range ranks {
		col := 0
		for _, c := range rankStr {
			if col > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, 8-row)
			}

			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if piece.IsEmpty() {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidFEN, c)
			}
			switch piece.Type {
			case Pawn:
				piece.HasMoved = row != homeRow(piece.Color)+pawnDirection(piece.Color)
			case King, Rook:
				// Unmoved only with a castling right, see parseCastlingRights.
				piece.HasMoved = true
			default:
				piece.HasMoved = row != homeRow(piece.Color) || backRank[col] != piece.Type
			}
			if piece.Type == King {
				pos.kings[piece.Color] = NewSquare(row, col)
			}
			pos.board[row][col] = piece
			col++
		}

		if col != 8 {
			return fmt.Errorf("%w: invalid number of squares in rank %d: got %d", ErrInvalidFEN, 8-row, col)
		}
	}

	return nil
}

// parseCastlingRights clears HasMoved on the king and rook of each castling right.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		return nil
	}

	for _, c := range castling {
		var color Color
		var rookCol int
		switch c {
		case 'K':
			color, rookCol = White, 7
		case 'Q':
			color, rookCol = White, 0
		case 'k':
			color, rookCol = Black, 7
		case 'q':
			color, rookCol = Black, 0
		default:
			return fmt.Errorf("%w: invalid castling character: %c", ErrInvalidFEN, c)
		}

		row := homeRow(color)
		kingSq := NewSquare(row, 4)
		rookSq := NewSquare(row, rookCol)
		if !pos.at(kingSq).Is(King, color) || !pos.at(rookSq).Is(Rook, color) {
			return fmt.Errorf("%w: castling right %c without king and rook on their home squares", ErrInvalidFEN, c)
		}
		pos.board[kingSq.Row][kingSq.Col].HasMoved = false
		pos.board[rookSq.Row][rookSq.Col].HasMoved = false
	}

	return nil
}

func homeRow(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// castlingRights returns the FEN castling field implied by HasMoved flags.
func (p *Position) castlingRights() string {
	var sb strings.Builder
	for _, c := range [2]Color{White, Black} {
		row := homeRow(c)
		king := p.board[row][4]
		if !king.Is(King, c) || king.HasMoved {
			continue
		}
		for _, side := range [2]struct {
			col  int
			char byte
		}{{7, 'K'}, {0, 'Q'}} {
			rook := p.board[row][side.col]
			if !rook.Is(Rook, c) || rook.HasMoved {
				continue
			}
			ch := side.char
			if c == Black {
				ch += 'a' - 'A'
			}
			sb.WriteByte(ch)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	// Piece placement
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			piece := p.board[row][col]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if p.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castlingRights())

	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMoveNumber))

	return sb.String()
}
