package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/sammy7272/Chess-Game-Gui/internal/board"
)

var whiteGlyphs = map[board.PieceType]string{
	board.Pawn:   "♙",
	board.Knight: "♘",
	board.Bishop: "♗",
	board.Rook:   "♖",
	board.Queen:  "♕",
	board.King:   "♔",
}

var blackGlyphs = map[board.PieceType]string{
	board.Pawn:   "♟",
	board.Knight: "♞",
	board.Bishop: "♝",
	board.Rook:   "♜",
	board.Queen:  "♛",
	board.King:   "♚",
}

// glyph returns the display symbol of a piece, or ascii letters when unicode is off.
func glyph(p board.Piece, unicode bool) string {
	if p.IsEmpty() {
		return "."
	}
	if !unicode {
		return p.String()
	}
	if p.Color == board.White {
		return whiteGlyphs[p.Type]
	}
	return blackGlyphs[p.Type]
}

// renderBoard writes the board with rank 8 at the top, marking the last move's squares.
func renderBoard(w io.Writer, pos *board.Position, unicode bool) {
	last := pos.LastMove()
	b := pos.Board()

	var sb strings.Builder
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d ", 8-row)
		for col := 0; col < 8; col++ {
			sq := board.NewSquare(row, col)
			mark := " "
			if last != board.NoMove && (sq == last.From || sq == last.To) {
				mark = "*"
			}
			sb.WriteString(glyph(b[row][col], unicode))
			sb.WriteString(mark)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")

	status := pos.Turn().String() + " to move"
	switch {
	case pos.IsGameOver():
		status = "game over " + pos.Result()
	case pos.IsCheck(pos.Turn()):
		status += ", check"
	}
	sb.WriteString(status)
	sb.WriteByte('\n')

	io.WriteString(w, sb.String())
}
