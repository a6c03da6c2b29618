package board

import "testing"

func TestFoolsMate(t *testing.T) {
	pos := NewPosition()
	playMoves(t, pos, "f2f3", "e7e5", "g2g4", "d8h4")

	if !pos.IsCheck(White) {
		t.Error("expected white to be in check")
	}
	if !pos.IsCheckmate(White) {
		t.Error("expected checkmate")
	}
	if pos.IsStalemate(White) {
		t.Error("checkmate reported as stalemate")
	}
	if moves := pos.AllLegalMoves(White); len(moves) != 0 {
		t.Errorf("mated side has legal moves: %v", moves)
	}
	if !pos.IsGameOver() || pos.Winner() != Black {
		t.Errorf("game over = %v winner = %s, want true/Black", pos.IsGameOver(), pos.Winner())
	}
	if got := pos.Result(); got != "0-1" {
		t.Errorf("Result() = %q, want 0-1", got)
	}
}

func TestScholarsMate(t *testing.T) {
	pos := NewPosition()
	playMoves(t, pos, "e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7")

	if !pos.IsCheck(Black) || !pos.IsCheckmate(Black) {
		t.Fatalf("expected black to be checkmated:%s", pos)
	}
	if !pos.IsGameOver() || pos.Winner() != White {
		t.Errorf("game over = %v winner = %s, want true/White", pos.IsGameOver(), pos.Winner())
	}

	if err := pos.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if pos.IsGameOver() || pos.Winner() != NoColor {
		t.Error("undo must clear the game-over state")
	}
}

func TestCheckmateFromFEN(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		mated bool
	}{
		// Back rank mate: Ra8 against Kh8 with pawns on g7 and h7.
		{"back rank", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", true},
		// The king can take the unprotected rook.
		{"king captures checker", "6Rk/8/8/8/8/8/8/K7 b - - 0 1", false},
		{"block available", "R6k/5bpp/8/8/8/8/8/K7 b - - 0 1", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			if !pos.IsCheck(Black) {
				t.Fatal("expected black to be in check")
			}
			if got := pos.IsCheckmate(Black); got != tc.mated {
				t.Errorf("IsCheckmate = %v, want %v", got, tc.mated)
			}
			if pos.IsGameOver() != tc.mated {
				t.Errorf("IsGameOver = %v, want %v", pos.IsGameOver(), tc.mated)
			}
		})
	}
}

func TestStalemate(t *testing.T) {
	pos := MustParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if !pos.IsStalemate(Black) {
		t.Fatal("expected stalemate")
	}
	if pos.IsCheckmate(Black) {
		t.Error("stalemate reported as checkmate")
	}
	if !pos.IsGameOver() || pos.Winner() != NoColor {
		t.Errorf("game over = %v winner = %s, want true/NoColor", pos.IsGameOver(), pos.Winner())
	}

	pos = MustParseFEN("7k/8/6K1/8/8/8/8/5Q2 w - - 0 1")
	if pos.IsGameOver() {
		t.Fatal("game should not be over before the stalemating move")
	}
	playMoves(t, pos, "f1f7")
	if !pos.IsGameOver() || pos.Winner() != NoColor {
		t.Errorf("game over = %v winner = %s, want true/NoColor", pos.IsGameOver(), pos.Winner())
	}
	if got := pos.Result(); got != "1/2-1/2" {
		t.Errorf("Result() = %q, want 1/2-1/2", got)
	}
}

func TestMoveRejectedAfterMate(t *testing.T) {
	pos := NewPosition()
	playMoves(t, pos, "f2f3", "e7e5", "g2g4", "d8h4")

	m, _ := ParseMove("a2a3")
	if err := pos.ApplyMove(m.From, m.To); err == nil {
		t.Error("move accepted after checkmate")
	}
}

func TestStatusOfSideNotToMove(t *testing.T) {
	pos := NewPosition()

	if pos.IsStalemate(White) {
		t.Error("side to move reported stalemated at the start")
	}
	if !pos.IsStalemate(Black) {
		t.Error("side not to move should have no legal moves and so read as stalemated")
	}
	if pos.HasLegalMoves(Black) {
		t.Error("side not to move has legal moves")
	}
	if pos.IsGameOver() {
		t.Error("game over at the start")
	}
}
