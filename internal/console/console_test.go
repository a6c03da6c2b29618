package console

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sammy7272/Chess-Game-Gui/internal/board"
	"github.com/sammy7272/Chess-Game-Gui/internal/engine"
	"github.com/sammy7272/Chess-Game-Gui/internal/storage"
)

func newTestConsole(t *testing.T, withStore bool) (*Console, *bytes.Buffer, *storage.Storage) {
	t.Helper()

	var store *storage.Storage
	if withStore {
		s, err := storage.OpenInMemory()
		if err != nil {
			t.Fatalf("OpenInMemory: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		store = s
	}

	prefs := storage.DefaultPreferences()
	prefs.Depth = 1

	out := &bytes.Buffer{}
	c := New(engine.NewEngine(), store, prefs, out)
	c.Unicode = false
	return c, out, store
}

func uintString(n uint64) string {
	return strconv.FormatUint(n, 10)
}

func TestMoveGetsAgentReply(t *testing.T) {
	c, out, _ := newTestConsole(t, false)

	if c.AgentColor() != board.Black {
		t.Fatalf("agent plays %s, want Black", c.AgentColor())
	}

	c.Execute("e2e4")

	if got := c.Position().Plies(); got != 2 {
		t.Fatalf("plies = %d, want 2 (move and reply)", got)
	}
	if got := c.Position().Turn(); got != board.White {
		t.Errorf("turn = %s, want White", got)
	}
	if !strings.Contains(out.String(), "bestmove ") {
		t.Errorf("output has no engine move:\n%s", out.String())
	}
}

func TestRejectedMoves(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"e2e5", "illegal move e2e5"},
		{"e7e5", "not yours to move"},
		{"e4e5", "no piece on e4"},
		{"move z9a1", "invalid square"},
		{"bogus", "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c, out, _ := newTestConsole(t, false)
			before := c.Position().ToFEN()

			c.Execute(tt.line)

			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output %q does not contain %q", out.String(), tt.want)
			}
			if after := c.Position().ToFEN(); after != before {
				t.Errorf("position changed: %s -> %s", before, after)
			}
		})
	}
}

func TestUndoReturnsToPlayer(t *testing.T) {
	c, _, _ := newTestConsole(t, false)

	c.Execute("e2e4")
	c.Execute("undo")

	if got := c.Position().Plies(); got != 0 {
		t.Errorf("plies after undo = %d, want 0", got)
	}
	if diff := cmp.Diff(board.StartFEN, c.Position().ToFEN()); diff != "" {
		t.Errorf("undo did not restore the start (-want +got):\n%s", diff)
	}
}

func TestPositionCommand(t *testing.T) {
	c, out, _ := newTestConsole(t, false)

	c.Execute("position startpos moves e2e4 e7e5 g1f3 b8c6")
	out.Reset()
	c.Execute("fen")

	want := "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("fen mismatch (-want +got):\n%s", diff)
	}

	c.Execute("position fen 4k3/8/8/8/8/8/8/R3K3 w Q - 0 1 moves e1c1")
	if got := c.Position().PieceAt(board.MustParseSquare("d1")); !got.Is(board.Rook, board.White) {
		t.Errorf("d1 holds %v after castling, want white rook", got)
	}

	out.Reset()
	c.Execute("position fen 8/8/8/8 w - - 0 1")
	if !strings.Contains(out.String(), "invalid position") {
		t.Errorf("bad FEN not reported: %q", out.String())
	}
}

func TestPositionHandsMoveToAgent(t *testing.T) {
	c, out, _ := newTestConsole(t, false)

	c.Execute("position startpos moves e2e4")

	if got := c.Position().Plies(); got != 2 {
		t.Fatalf("plies = %d, want 2 (set-up move and reply)", got)
	}
	if got := c.Position().Turn(); got != board.White {
		t.Errorf("turn = %s, want White", got)
	}
	if !strings.Contains(out.String(), "bestmove ") {
		t.Errorf("output has no engine move:\n%s", out.String())
	}
}

func TestMovesCommand(t *testing.T) {
	c, out, _ := newTestConsole(t, false)

	c.Execute("moves g1")
	if diff := cmp.Diff("g1: f3 h3\n", out.String()); diff != "" {
		t.Errorf("moves g1 mismatch (-want +got):\n%s", diff)
	}

	out.Reset()
	c.Execute("moves")
	if !strings.HasPrefix(out.String(), "20: a2a3 a2a4 ") {
		t.Errorf("moves listing = %q", out.String())
	}
}

func TestGoPlaysForSideToMove(t *testing.T) {
	c, out, _ := newTestConsole(t, false)

	c.Execute("position fen 4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1")
	out.Reset()
	c.Execute("go depth 1")

	if !strings.Contains(out.String(), "bestmove d2d5") {
		t.Errorf("go did not capture the queen:\n%s", out.String())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c, out, store := newTestConsole(t, true)

	c.Execute("e2e4")
	c.Execute("save")
	fen := c.Position().ToFEN()

	games, err := store.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 {
		t.Fatalf("%d saved games, want 1", len(games))
	}
	id := games[0].ID

	c.Execute("new white")
	if c.Position().Plies() != 0 {
		t.Fatal("new game is not at the start")
	}

	out.Reset()
	c.Execute("load " + uintString(id))
	if got := c.Position().ToFEN(); got != fen {
		t.Errorf("loaded FEN %s, want %s", got, fen)
	}

	// Saving again updates the loaded game instead of adding one.
	c.Execute("save")
	games, err = store.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 {
		t.Errorf("%d saved games after re-save, want 1", len(games))
	}

	out.Reset()
	c.Execute("list")
	if !strings.HasPrefix(out.String(), uintString(id)+"\t") {
		t.Errorf("list output = %q", out.String())
	}

	c.Execute("delete " + uintString(id))
	out.Reset()
	c.Execute("load " + uintString(id))
	if !strings.Contains(out.String(), storage.ErrGameNotFound.Error()) {
		t.Errorf("load of deleted game: %q", out.String())
	}
}

func TestStorageDisabled(t *testing.T) {
	c, out, _ := newTestConsole(t, false)

	for _, cmd := range []string{"save", "load 1", "list", "delete 1"} {
		out.Reset()
		c.Execute(cmd)
		if !strings.Contains(out.String(), "storage is disabled") {
			t.Errorf("%s: output %q", cmd, out.String())
		}
	}
}

func TestSelfPlayRecordsFinishedGame(t *testing.T) {
	c, out, store := newTestConsole(t, true)
	c.depth = 2

	c.Execute("position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	if played := c.SelfPlay(10); played != 1 {
		t.Fatalf("SelfPlay played %d plies, want 1", played)
	}
	if !strings.Contains(out.String(), "checkmate, White wins 1-0") {
		t.Errorf("result not reported:\n%s", out.String())
	}

	stats, err := store.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 1 || stats.WinsByColor["White"] != 1 {
		t.Errorf("stats = %+v", stats)
	}

	games, err := store.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 || games[0].Result != "1-0" || games[0].Mode != storage.ModeSelfPlay {
		t.Fatalf("saved games = %+v", games)
	}
	if diff := cmp.Diff([]string{"a1a8"}, games[0].Moves); diff != "" {
		t.Errorf("saved moves mismatch (-want +got):\n%s", diff)
	}
}

func TestSelfPlayStopsAtLimit(t *testing.T) {
	c, _, _ := newTestConsole(t, false)

	if played := c.SelfPlay(4); played != 4 {
		t.Errorf("SelfPlay played %d plies, want 4", played)
	}
	if got := c.Position().Plies(); got != 4 {
		t.Errorf("position has %d plies, want 4", got)
	}
}

func TestRunStopsAtQuit(t *testing.T) {
	c, _, _ := newTestConsole(t, false)

	in := strings.NewReader("e2e4\n\nquit\ne7e5\n")
	if err := c.Run(in); err != nil {
		t.Fatal(err)
	}
	if got := c.Position().Plies(); got != 2 {
		t.Errorf("plies = %d, want 2", got)
	}
}

func TestRenderBoard(t *testing.T) {
	pos := board.NewGame()
	var buf bytes.Buffer
	renderBoard(&buf, pos, false)

	lines := strings.Split(buf.String(), "\n")
	if diff := cmp.Diff("8 r n b q k b n r ", lines[0]); diff != "" {
		t.Errorf("rank 8 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("1 R N B Q K B N R ", lines[7]); diff != "" {
		t.Errorf("rank 1 mismatch (-want +got):\n%s", diff)
	}
	if lines[9] != "White to move" {
		t.Errorf("status line = %q", lines[9])
	}

	buf.Reset()
	renderBoard(&buf, pos, true)
	if !strings.HasPrefix(buf.String(), "8 ♜ ♞ ♝ ♛ ♚ ♝ ♞ ♜ ") {
		t.Errorf("unicode board starts %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}
}
