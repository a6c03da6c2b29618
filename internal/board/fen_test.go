package board

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStartFENMatchesNewPosition(t *testing.T) {
	fromFEN := MustParseFEN(StartFEN)
	if diff := cmp.Diff(NewPosition(), fromFEN, positionCmp...); diff != "" {
		t.Errorf("ParseFEN(StartFEN) differs from NewPosition (-want +got):\n%s", diff)
	}
	if got := NewPosition().ToFEN(); got != StartFEN {
		t.Errorf("ToFEN() = %q, want %q", got, StartFEN)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w Kq d6 0 3",
		"4k3/8/8/8/8/8/8/4K2R w K - 12 40",
	}
	for _, fen := range fens {
		if got := MustParseFEN(fen).ToFEN(); got != fen {
			t.Errorf("round trip:\n got %s\nwant %s", got, fen)
		}
	}
}

func TestFENDerivesHasMoved(t *testing.T) {
	pos := MustParseFEN("r3k2r/p6p/8/8/3P4/8/P6P/R3K2R w Kq - 0 1")

	tests := []struct {
		square string
		moved  bool
	}{
		{"e1", false}, // white king keeps the K right
		{"h1", false},
		{"a1", true}, // no Q right
		{"e8", false},
		{"a8", false},
		{"h8", true}, // no k right
		{"a2", false},
		{"d4", true},
		{"a7", false},
	}
	for _, tc := range tests {
		if got := pos.PieceAt(MustParseSquare(tc.square)).HasMoved; got != tc.moved {
			t.Errorf("%s HasMoved = %v, want %v", tc.square, got, tc.moved)
		}
	}
}

func TestFENRecordsMoveCounters(t *testing.T) {
	pos := NewPosition()
	playMoves(t, pos, "g1f3", "g8f6", "e2e4")

	want := "rnbqkb1r/pppppppp/5n2/8/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq e3 0 2"
	if got := pos.ToFEN(); got != want {
		t.Errorf("ToFEN() = %q, want %q", got, want)
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"too few fields", "8/8/8/8/8/8/8/8 w"},
		{"seven ranks", "8/8/8/8/8/8/8 w - -"},
		{"bad piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq -"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq -"},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KZkq -"},
		{"castling without rook", "rnbqkbn1/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"},
		{"bad en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9"},
		{"missing king", "rnbq1bnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQ -"},
		{"two kings", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBKKBNR w kq -"},
		{"pawn on back rank", "Pnbqkbnr/8/8/8/8/8/8/4K3 w - -"},
		{"rank overflow", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"},
		{"side not to move in check", "4k3/8/8/8/8/8/8/K3R3 w - - 0 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			if !errors.Is(err, ErrInvalidFEN) {
				t.Errorf("ParseFEN error = %v, want ErrInvalidFEN", err)
			}
		})
	}
}
