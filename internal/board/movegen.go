package board

// PseudoMoves returns the destinations the piece on from can reach by its
// movement rules, without checking whether its own king is left in check.
// The order is fixed per piece kind and is part of the search's
// enumeration order.
func (p *Position) PseudoMoves(from Square) []Square {
	if !from.Valid() {
		return nil
	}
	piece := p.at(from)

	switch piece.Type {
	case Pawn:
		return p.pawnMoves(from, piece)
	case Knight:
		return p.stepMoves(from, piece, knightOffsets[:])
	case Bishop:
		return p.slideMoves(nil, from, piece, diagonalDirections[:])
	case Rook:
		return p.slideMoves(nil, from, piece, straightDirections[:])
	case Queen:
		moves := p.slideMoves(nil, from, piece, diagonalDirections[:])
		return p.slideMoves(moves, from, piece, straightDirections[:])
	case King:
		moves := p.stepMoves(from, piece, kingOffsets[:])
		return p.castlingMoves(moves, from, piece)
	default:
		return nil
	}
}

// pawnMoves generates pushes first, then captures from the lower file to the higher.
func (p *Position) pawnMoves(from Square, piece Piece) []Square {
	var moves []Square
	dir := pawnDirection(piece.Color)

	one := from.Offset(dir, 0)
	if one.Valid() && p.at(one).IsEmpty() {
		moves = append(moves, one)

		two := from.Offset(2*dir, 0)
		if !piece.HasMoved && two.Valid() && p.at(two).IsEmpty() {
			moves = append(moves, two)
		}
	}

	for _, dc := range [2]int{-1, 1} {
		to := from.Offset(dir, dc)
		if !to.Valid() {
			continue
		}
		target := p.at(to)
		if !target.IsEmpty() {
			if target.Color != piece.Color {
				moves = append(moves, to)
			}
			continue
		}
		if to == p.enPassant && p.isEnPassantVictim(NewSquare(from.Row, to.Col), piece.Color) {
			moves = append(moves, to)
		}
	}

	return moves
}

// isEnPassantVictim reports whether sq holds an enemy pawn that can be taken en passant.
func (p *Position) isEnPassantVictim(sq Square, us Color) bool {
	return p.at(sq).Is(Pawn, us.Other())
}

// stepMoves generates single-step moves from a fixed offset table.
func (p *Position) stepMoves(from Square, piece Piece, offsets [][2]int) []Square {
	var moves []Square
	for _, off := range offsets {
		to := from.Offset(off[0], off[1])
		if !to.Valid() {
			continue
		}
		target := p.at(to)
		if target.IsEmpty() || target.Color != piece.Color {
			moves = append(moves, to)
		}
	}
	return moves
}

// slideMoves appends ray moves: empty squares are included, an enemy piece
// is included and ends the ray, an own piece ends the ray.
func (p *Position) slideMoves(moves []Square, from Square, piece Piece, dirs [][2]int) []Square {
	for _, dir := range dirs {
		for to := from.Offset(dir[0], dir[1]); to.Valid(); to = to.Offset(dir[0], dir[1]) {
			target := p.at(to)
			if target.IsEmpty() {
				moves = append(moves, to)
				continue
			}
			if target.Color != piece.Color {
				moves = append(moves, to)
			}
			break
		}
	}
	return moves
}

// castlingMoves appends the kingside then the queenside castling destination
// when the king and rook are unmoved, the squares between them are empty, and
// the king is not in check and does not pass through or land on an attacked square.
func (p *Position) castlingMoves(moves []Square, from Square, king Piece) []Square {
	if king.HasMoved || p.IsSquareAttacked(from, king.Color) {
		return moves
	}
	if p.canCastle(from, king.Color, 7) {
		moves = append(moves, from.Offset(0, 2))
	}
	if p.canCastle(from, king.Color, 0) {
		moves = append(moves, from.Offset(0, -2))
	}
	return moves
}

func (p *Position) canCastle(kingSq Square, c Color, rookCol int) bool {
	rookSq := NewSquare(kingSq.Row, rookCol)
	rook := p.at(rookSq)
	if !rook.Is(Rook, c) || rook.HasMoved {
		return false
	}

	step := 1
	if rookCol < kingSq.Col {
		step = -1
	}
	// The king needs two squares of travel toward the rook.
	if (rookCol-kingSq.Col)*step < 3 {
		return false
	}

	for col := kingSq.Col + step; col != rookCol; col += step {
		if !p.at(NewSquare(kingSq.Row, col)).IsEmpty() {
			return false
		}
	}

	for i := 1; i <= 2; i++ {
		if p.IsSquareAttacked(kingSq.Offset(0, i*step), c) {
			return false
		}
	}
	return true
}

// LegalMoves returns the destinations the piece on from may legally move to.
// The result is empty if the square is empty, holds a piece of the side not
// to move, or the piece has no legal destinations.
func (p *Position) LegalMoves(from Square) []Square {
	if !from.Valid() {
		return nil
	}
	piece := p.at(from)
	if piece.IsEmpty() || piece.Color != p.turn {
		return nil
	}

	var legal []Square
	for _, to := range p.PseudoMoves(from) {
		if p.keepsKingSafe(from, to, piece.Color) {
			legal = append(legal, to)
		}
	}
	return legal
}

// keepsKingSafe plays the move on a scratch copy and probes the mover's king.
func (p *Position) keepsKingSafe(from, to Square, us Color) bool {
	s := p.scratch()
	s.play(from, to)
	return !s.IsSquareAttacked(s.kings[us], us)
}

// IsLegal reports whether from-to is among the legal moves of the piece on from.
func (p *Position) IsLegal(from, to Square) bool {
	for _, sq := range p.LegalMoves(from) {
		if sq == to {
			return true
		}
	}
	return false
}

// AllLegalMoves returns every legal move of color c, scanning the board
// rank-major then file-major and keeping each piece's generation order.
// Only the side to move has legal moves.
func (p *Position) AllLegalMoves(c Color) []Move {
	var moves []Move
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := NewSquare(row, col)
			if p.at(from).Color != c {
				continue
			}
			for _, to := range p.LegalMoves(from) {
				moves = append(moves, NewMove(from, to))
			}
		}
	}
	return moves
}

// LegalMoveCount returns len(AllLegalMoves(c)) without building the list.
func (p *Position) LegalMoveCount(c Color) int {
	n := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := NewSquare(row, col)
			if p.at(from).Color == c {
				n += len(p.LegalMoves(from))
			}
		}
	}
	return n
}
