package board

// ApplyMove validates and plays a move for the side to move, then
// classifies the resulting position. A rejected move leaves the position
// unchanged and returns a *MoveError wrapping ErrNoPieceAtSource,
// ErrNotYourTurn, ErrIllegalMove or ErrInvalidSquare.
func (p *Position) ApplyMove(from, to Square) error {
	return p.applyMove(from, to, false)
}

// ApplyMoveUnchecked plays a move without checking it against LegalMoves.
// The origin must still hold a piece of the side to move. It is meant for
// moves that are already known to be legal, such as those produced by
// AllLegalMoves.
func (p *Position) ApplyMoveUnchecked(from, to Square) error {
	return p.applyMove(from, to, true)
}

func (p *Position) applyMove(from, to Square, skipValidation bool) error {
	m := NewMove(from, to)
	if !from.Valid() || !to.Valid() {
		return &MoveError{Move: m, Err: ErrInvalidSquare}
	}

	piece := p.at(from)
	if piece.IsEmpty() {
		return &MoveError{Move: m, Err: ErrNoPieceAtSource}
	}
	if piece.Color != p.turn {
		return &MoveError{Move: m, Err: ErrNotYourTurn}
	}
	if !skipValidation && !p.IsLegal(from, to) {
		return &MoveError{Move: m, Err: ErrIllegalMove}
	}

	p.log = append(p.log, p.play(from, to))
	p.classify()
	return nil
}

// play moves the piece on from to to, handling en passant, castling and
// promotion, and flips the turn. It returns the record needed to undo it.
func (p *Position) play(from, to Square) moveRecord {
	piece := p.at(from)
	rec := moveRecord{
		from:           from,
		to:             to,
		moved:          piece,
		captured:       p.at(to),
		capturedSq:     to,
		rookFrom:       NoSquare,
		rookTo:         NoSquare,
		priorEnPassant: p.enPassant,
		priorHalfMove:  p.halfMoveClock,
	}

	// En passant: a pawn moving diagonally onto the empty target square
	// takes the pawn beside its origin.
	if piece.Type == Pawn && from.Col != to.Col && rec.captured.IsEmpty() && to == p.enPassant {
		victim := NewSquare(from.Row, to.Col)
		rec.captured = p.at(victim)
		rec.capturedSq = victim
		p.set(victim, NoPiece)
	}

	p.enPassant = NoSquare
	if piece.Type == Pawn && abs(to.Row-from.Row) == 2 {
		p.enPassant = NewSquare((from.Row+to.Row)/2, from.Col)
	}

	if piece.Type == King && abs(to.Col-from.Col) == 2 {
		rec.castle = true
		rec.rookFrom, rec.rookTo = castlingRookSquares(from, to)
		rook := p.at(rec.rookFrom)
		rook.HasMoved = true
		p.set(rec.rookTo, rook)
		p.set(rec.rookFrom, NoPiece)
	}

	if piece.Type == King {
		p.kings[piece.Color] = to
	}

	piece.HasMoved = true
	p.set(to, piece)
	p.set(from, NoPiece)

	if piece.Type == Pawn && (to.Row == 0 || to.Row == 7) {
		p.set(to, Piece{Type: Queen, Color: piece.Color, HasMoved: true})
	}

	if piece.Type == Pawn || !rec.captured.IsEmpty() {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}
	if piece.Color == Black {
		p.fullMoveNumber++
	}
	p.turn = p.turn.Other()

	return rec
}

// castlingRookSquares returns the rook's origin and destination for a king
// moving two files from kingFrom to kingTo.
func castlingRookSquares(kingFrom, kingTo Square) (Square, Square) {
	if kingTo.Col > kingFrom.Col {
		return NewSquare(kingFrom.Row, 7), NewSquare(kingFrom.Row, kingTo.Col-1)
	}
	return NewSquare(kingFrom.Row, 0), NewSquare(kingFrom.Row, kingTo.Col+1)
}

// UndoMove takes back the last move. It returns ErrNothingToUndo if no move
// has been played. The game-over state is always cleared.
func (p *Position) UndoMove() error {
	if len(p.log) == 0 {
		return ErrNothingToUndo
	}
	rec := p.log[len(p.log)-1]
	p.log = p.log[:len(p.log)-1]

	if rec.castle {
		rook := p.at(rec.rookTo)
		rook.HasMoved = false
		p.set(rec.rookFrom, rook)
		p.set(rec.rookTo, NoPiece)
	}

	// The mover returns exactly as it was, which also reverts a promotion
	// and its HasMoved flag.
	p.set(rec.to, NoPiece)
	p.set(rec.capturedSq, rec.captured)
	p.set(rec.from, rec.moved)

	if rec.moved.Type == King {
		p.kings[rec.moved.Color] = rec.from
	}

	p.enPassant = rec.priorEnPassant
	p.halfMoveClock = rec.priorHalfMove
	if rec.moved.Color == Black {
		p.fullMoveNumber--
	}
	p.turn = p.turn.Other()

	p.gameOver = false
	p.winner = NoColor
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
