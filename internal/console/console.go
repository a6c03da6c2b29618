// Package console implements a line-oriented text interface for playing
// against the engine or watching it play itself.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sammy7272/Chess-Game-Gui/internal/board"
	"github.com/sammy7272/Chess-Game-Gui/internal/engine"
	"github.com/sammy7272/Chess-Game-Gui/internal/storage"
)

// Console holds one game and the engine that plays in it.
type Console struct {
	engine *engine.Engine
	store  *storage.Storage // nil disables save/load

	position *board.Position
	startFEN string
	gameID   uint64
	started  time.Time

	// agentColor is the side the engine answers for; NoColor means it only
	// moves on "go".
	agentColor board.Color
	depth      int
	mode       storage.GameMode
	difficulty engine.Difficulty

	// Unicode selects chess glyphs over FEN letters when drawing the board.
	Unicode bool

	out io.Writer
}

// New creates a console writing to out. The engine plays the color opposite
// prefs.HumanColor at prefs.SearchDepth(). store may be nil.
func New(eng *engine.Engine, store *storage.Storage, prefs *storage.UserPreferences, out io.Writer) *Console {
	c := &Console{
		engine:     eng,
		store:      store,
		depth:      prefs.SearchDepth(),
		mode:       prefs.GameMode,
		difficulty: prefs.Difficulty,
		Unicode:    true,
		out:        out,
	}
	c.newGame(prefs.HumanColor.Other())
	return c
}

// Position returns the current game position.
func (c *Console) Position() *board.Position {
	return c.position
}

// AgentColor returns the color the engine answers for.
func (c *Console) AgentColor() board.Color {
	return c.agentColor
}

func (c *Console) newGame(agent board.Color) {
	c.position = board.NewGame()
	c.startFEN = board.StartFEN
	c.gameID = 0
	c.started = time.Now()
	c.agentColor = agent
}

// Run reads commands from in until "quit" or end of input.
func (c *Console) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	c.agentReply()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := c.Execute(line); quit {
			return nil
		}
	}

	return scanner.Err()
}

// Execute runs one command line and reports whether the console should exit.
func (c *Console) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.handleHelp()
	case "new":
		c.handleNew(args)
	case "position":
		c.handlePosition(args)
	case "move", "m":
		if len(args) != 1 {
			c.printf("usage: move <from><to>\n")
			return false
		}
		c.handleMove(args[0])
	case "moves":
		c.handleMoves(args)
	case "undo":
		c.handleUndo()
	case "go":
		c.handleGo(args)
	case "eval":
		c.handleEval()
	case "d", "board":
		renderBoard(c.out, c.position, c.Unicode)
	case "fen":
		c.printf("%s\n", c.position.ToFEN())
	case "perft":
		c.handlePerft(args)
	case "save":
		c.handleSave()
	case "load":
		c.handleLoad(args)
	case "list":
		c.handleList()
	case "delete":
		c.handleDelete(args)
	case "quit", "exit":
		return true
	default:
		// A bare coordinate move such as "e2e4".
		if _, err := board.ParseMove(cmd); err == nil && len(args) == 0 {
			c.handleMove(cmd)
			return false
		}
		c.printf("unknown command %q, try \"help\"\n", cmd)
	}

	return false
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) handleHelp() {
	c.printf(`commands:
  e2e4 | move e2e4         play a move
  moves [square]           list legal moves
  undo                     take back one ply
  go [depth N]             let the engine move for the side to move
  new [white|black]        start a new game playing the given color
  position startpos|fen <fen> [moves ...]
  d | board                show the board
  fen | eval | perft N
  save | load ID | list | delete ID
  quit
`)
}

// handleNew starts a new game. The optional argument is the human's color.
func (c *Console) handleNew(args []string) {
	agent := c.agentColor
	if agent == board.NoColor {
		agent = board.Black
	}
	if len(args) > 0 {
		human, ok := board.ParseColor(args[0])
		if !ok {
			c.printf("unknown color %q\n", args[0])
			return
		}
		agent = human.Other()
	}

	c.newGame(agent)
	renderBoard(c.out, c.position, c.Unicode)
	c.agentReply()
}

// handlePosition sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (c *Console) handlePosition(args []string) {
	if len(args) == 0 {
		c.printf("usage: position startpos|fen <fen> [moves ...]\n")
		return
	}

	// Everything after "moves" is a move list.
	fields, moves := args, []string(nil)
	for i, arg := range args {
		if arg == "moves" {
			fields, moves = args[:i], args[i+1:]
			break
		}
	}

	if len(fields) == 0 {
		c.printf("usage: position startpos|fen <fen> [moves ...]\n")
		return
	}

	var fen string
	switch fields[0] {
	case "startpos":
		fen = board.StartFEN
	case "fen":
		fen = strings.Join(fields[1:], " ")
	default:
		c.printf("usage: position startpos|fen <fen> [moves ...]\n")
		return
	}

	pos, err := board.ParseFEN(fen)
	if err != nil {
		c.printf("invalid position: %v\n", err)
		return
	}

	for _, s := range moves {
		m, err := board.ParseMove(s)
		if err == nil {
			err = pos.ApplyMove(m.From, m.To)
		}
		if err != nil {
			c.printf("invalid move %s: %v\n", s, err)
			return
		}
	}

	c.position = pos
	c.startFEN = fen
	c.gameID = 0
	c.started = time.Now()
	renderBoard(c.out, c.position, c.Unicode)
	c.agentReply()
}

func (c *Console) handleMove(s string) {
	m, err := board.ParseMove(s)
	if err != nil {
		c.printf("%v\n", err)
		return
	}
	if c.position.IsGameOver() {
		c.printf("game is over: %s\n", c.position.Result())
		return
	}

	if err := c.position.ApplyMove(m.From, m.To); err != nil {
		c.printf("%v\n", describeMoveError(err))
		return
	}

	renderBoard(c.out, c.position, c.Unicode)
	if c.finishIfOver() {
		return
	}
	c.agentReply()
}

// describeMoveError turns a rejected move into a message for the player.
func describeMoveError(err error) string {
	var me *board.MoveError
	if !errors.As(err, &me) {
		return err.Error()
	}
	switch {
	case errors.Is(err, board.ErrNoPieceAtSource):
		return fmt.Sprintf("no piece on %s", me.Move.From)
	case errors.Is(err, board.ErrNotYourTurn):
		return fmt.Sprintf("the piece on %s is not yours to move", me.Move.From)
	case errors.Is(err, board.ErrIllegalMove):
		return fmt.Sprintf("illegal move %s", me.Move)
	default:
		return err.Error()
	}
}

func (c *Console) handleMoves(args []string) {
	if len(args) == 0 {
		moves := c.position.AllLegalMoves(c.position.Turn())
		strs := make([]string, len(moves))
		for i, m := range moves {
			strs[i] = m.String()
		}
		c.printf("%d: %s\n", len(strs), strings.Join(strs, " "))
		return
	}

	sq, err := board.ParseSquare(args[0])
	if err != nil {
		c.printf("%v\n", err)
		return
	}
	dests := c.position.LegalMoves(sq)
	strs := make([]string, len(dests))
	for i, to := range dests {
		strs[i] = to.String()
	}
	c.printf("%s: %s\n", sq, strings.Join(strs, " "))
}

// handleUndo takes back one ply. When that hands the move to the engine it
// takes back the engine's previous move too, so the player moves again.
func (c *Console) handleUndo() {
	if err := c.position.UndoMove(); err != nil {
		c.printf("%v\n", err)
		return
	}
	if c.position.Turn() == c.agentColor && c.position.Plies() > 0 {
		if err := c.position.UndoMove(); err != nil {
			c.printf("%v\n", err)
			return
		}
	}
	renderBoard(c.out, c.position, c.Unicode)
}

// handleGo makes the engine play one move for the side to move.
func (c *Console) handleGo(args []string) {
	depth := c.depth
	for i := 0; i < len(args); i++ {
		if args[i] == "depth" && i+1 < len(args) {
			d, err := strconv.Atoi(args[i+1])
			if err != nil {
				c.printf("invalid depth %q\n", args[i+1])
				return
			}
			depth = d
			i++
		}
	}
	c.engineMove(c.position.Turn(), depth)
}

// agentReply lets the engine move while it is its turn.
func (c *Console) agentReply() {
	if c.agentColor == board.NoColor || c.position.IsGameOver() || c.position.Turn() != c.agentColor {
		return
	}
	c.engineMove(c.agentColor, c.depth)
}

func (c *Console) engineMove(color board.Color, depth int) {
	move, ok := c.engine.BestMove(c.position, color, depth)
	if !ok {
		c.printf("no move for %s\n", color)
		return
	}
	if err := c.position.ApplyMove(move.From, move.To); err != nil {
		c.printf("engine move %s rejected: %v\n", move, err)
		return
	}

	c.printf("bestmove %s\n", move)
	renderBoard(c.out, c.position, c.Unicode)
	c.finishIfOver()
}

// finishIfOver reports the result and records the game once it has ended.
func (c *Console) finishIfOver() bool {
	if !c.position.IsGameOver() {
		return false
	}

	switch w := c.position.Winner(); w {
	case board.NoColor:
		c.printf("stalemate, %s\n", c.position.Result())
	default:
		c.printf("checkmate, %s wins %s\n", w, c.position.Result())
	}

	if c.store != nil {
		err := c.store.RecordGame(storage.GameResult{
			Winner:     c.position.Winner(),
			HumanColor: c.agentColor.Other(),
			Mode:       c.mode,
			Difficulty: c.difficulty,
			Duration:   time.Since(c.started),
		})
		if err != nil {
			c.printf("record game: %v\n", err)
		}
		c.handleSave()
	}
	return true
}

func (c *Console) handleEval() {
	turn := c.position.Turn()
	score := engine.Evaluate(c.position, turn)
	c.printf("eval %s (%s to move)\n", engine.ScoreToString(score), turn)
}

func (c *Console) handlePerft(args []string) {
	depth := 1
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			c.printf("invalid depth %q\n", args[0])
			return
		}
		depth = d
	}

	start := time.Now()
	nodes := c.engine.Perft(c.position, depth)
	c.printf("perft %d: %d nodes in %v\n", depth, nodes, time.Since(start).Round(time.Millisecond))
}

func (c *Console) handleSave() {
	if c.store == nil {
		c.printf("storage is disabled\n")
		return
	}

	g := storage.NewSavedGame(c.startFEN, c.position)
	g.ID = c.gameID
	g.Mode = c.mode
	g.AgentColor = c.agentColor
	g.Depth = c.depth

	id, err := c.store.SaveGame(g)
	if err != nil {
		c.printf("save: %v\n", err)
		return
	}
	c.gameID = id
	c.printf("saved game %d\n", id)
}

func (c *Console) handleLoad(args []string) {
	if c.store == nil {
		c.printf("storage is disabled\n")
		return
	}
	id, ok := c.parseID(args)
	if !ok {
		return
	}

	g, err := c.store.LoadGame(id)
	if err != nil {
		c.printf("load: %v\n", err)
		return
	}
	pos, err := g.Replay()
	if err != nil {
		c.printf("load: %v\n", err)
		return
	}

	c.position = pos
	c.startFEN = g.StartFEN
	c.gameID = g.ID
	c.agentColor = g.AgentColor
	c.started = time.Now()
	if g.Depth > 0 {
		c.depth = g.Depth
	}
	renderBoard(c.out, c.position, c.Unicode)
}

func (c *Console) handleList() {
	if c.store == nil {
		c.printf("storage is disabled\n")
		return
	}
	games, err := c.store.ListGames()
	if err != nil {
		c.printf("list: %v\n", err)
		return
	}
	for _, g := range games {
		c.printf("%d\t%s\t%s\t%d plies\t%s\n",
			g.ID, g.CreatedAt.Format(time.DateTime), g.Mode, len(g.Moves), g.Result)
	}
}

func (c *Console) handleDelete(args []string) {
	if c.store == nil {
		c.printf("storage is disabled\n")
		return
	}
	id, ok := c.parseID(args)
	if !ok {
		return
	}
	if err := c.store.DeleteGame(id); err != nil {
		c.printf("delete: %v\n", err)
		return
	}
	if id == c.gameID {
		c.gameID = 0
	}
	c.printf("deleted game %d\n", id)
}

func (c *Console) parseID(args []string) (uint64, bool) {
	if len(args) != 1 {
		c.printf("usage: load|delete <id>\n")
		return 0, false
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		c.printf("invalid id %q\n", args[0])
		return 0, false
	}
	return id, true
}
