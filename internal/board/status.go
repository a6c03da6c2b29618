package board

// HasLegalMoves returns true if any piece of color c has a legal move.
// Only the side to move ever has legal moves.
func (p *Position) HasLegalMoves(c Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := NewSquare(row, col)
			if p.at(from).Color == c && len(p.LegalMoves(from)) > 0 {
				return true
			}
		}
	}
	return false
}

// IsCheckmate returns true if c is in check and has no legal moves.
func (p *Position) IsCheckmate(c Color) bool {
	return p.IsCheck(c) && !p.HasLegalMoves(c)
}

// IsStalemate returns true if c is not in check and has no legal moves.
// Since only the side to move has legal moves, it is also true for the side
// not to move whenever that side is not in check. Ask about Turn() for a
// meaningful answer.
func (p *Position) IsStalemate(c Color) bool {
	return !p.IsCheck(c) && !p.HasLegalMoves(c)
}

// classify updates the game-over state for the side to move.
// Only checkmate and stalemate end the game.
func (p *Position) classify() {
	p.gameOver = false
	p.winner = NoColor

	us := p.turn
	if p.HasLegalMoves(us) {
		return
	}
	p.gameOver = true
	if p.IsCheck(us) {
		p.winner = us.Other()
	}
}

// Result returns the game result in PGN form: "1-0", "0-1", "1/2-1/2", or "*" while in progress.
func (p *Position) Result() string {
	if !p.gameOver {
		return "*"
	}
	switch p.winner {
	case White:
		return "1-0"
	case Black:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}
