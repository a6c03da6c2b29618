package board

// Direction tables shared by move generation and attack detection.
var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}

	kingOffsets = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

	diagonalDirections = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

	straightDirections = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// pawnDirection returns the row step of a pawn of the given color.
// White pawns move toward row 0 (rank 8).
func pawnDirection(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// IsSquareAttacked returns true if the square is attacked by the opponent of defender.
// It probes the board directly and never consults legality filtering, so it
// is safe to use as the primitive for check detection.
func (p *Position) IsSquareAttacked(sq Square, defender Color) bool {
	if !sq.Valid() {
		return false
	}
	attacker := defender.Other()

	// Pawn attacks: an enemy pawn one step "behind" the square from its own
	// point of view, on an adjacent file.
	pawnRow := sq.Row - pawnDirection(attacker)
	for _, dc := range [2]int{-1, 1} {
		from := NewSquare(pawnRow, sq.Col+dc)
		if from.Valid() && p.at(from).Is(Pawn, attacker) {
			return true
		}
	}

	for _, off := range knightOffsets {
		from := sq.Offset(off[0], off[1])
		if from.Valid() && p.at(from).Is(Knight, attacker) {
			return true
		}
	}

	// Sliding pieces stop at the first occupied square along each ray.
	for _, dir := range diagonalDirections {
		if p.rayHits(sq, dir, attacker, Bishop) {
			return true
		}
	}
	for _, dir := range straightDirections {
		if p.rayHits(sq, dir, attacker, Rook) {
			return true
		}
	}

	for _, off := range kingOffsets {
		from := sq.Offset(off[0], off[1])
		if from.Valid() && p.at(from).Is(King, attacker) {
			return true
		}
	}

	return false
}

// rayHits walks from sq along dir and reports whether the first piece met is
// an attacker's slider of the given kind or a queen.
func (p *Position) rayHits(sq Square, dir [2]int, attacker Color, slider PieceType) bool {
	for cur := sq.Offset(dir[0], dir[1]); cur.Valid(); cur = cur.Offset(dir[0], dir[1]) {
		piece := p.at(cur)
		if piece.IsEmpty() {
			continue
		}
		return piece.Color == attacker && (piece.Type == slider || piece.Type == Queen)
	}
	return false
}

// IsCheck returns true if the given color's king is attacked.
func (p *Position) IsCheck(c Color) bool {
	ksq := p.KingSquare(c)
	if !ksq.Valid() {
		return false
	}
	return p.IsSquareAttacked(ksq, c)
}
