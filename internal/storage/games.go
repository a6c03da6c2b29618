package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/sammy7272/Chess-Game-Gui/internal/board"
)

// SavedGame is a finished or interrupted game stored as its start position
// and the moves played from it.
type SavedGame struct {
	ID         uint64      `json:"id"`
	StartFEN   string      `json:"start_fen"`
	Moves      []string    `json:"moves"`
	Result     string      `json:"result"`
	Mode       GameMode    `json:"mode"`
	AgentColor board.Color `json:"agent_color"` // NoColor in self-play
	Depth      int         `json:"depth"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewSavedGame captures pos, which must have been reached from startFEN.
func NewSavedGame(startFEN string, pos *board.Position) *SavedGame {
	history := pos.History()
	moves := make([]string, len(history))
	for i, m := range history {
		moves[i] = m.String()
	}
	return &SavedGame{
		StartFEN:  startFEN,
		Moves:     moves,
		Result:    pos.Result(),
		CreatedAt: time.Now(),
	}
}

// Replay rebuilds the position by applying every saved move to the start
// position, so a corrupted record is rejected rather than trusted.
func (g *SavedGame) Replay() (*board.Position, error) {
	pos, err := board.ParseFEN(g.StartFEN)
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", g.ID, err)
	}

	for i, s := range g.Moves {
		m, err := board.ParseMove(s)
		if err != nil {
			return nil, fmt.Errorf("game %d: move %d: %w", g.ID, i+1, err)
		}
		if err := pos.ApplyMove(m.From, m.To); err != nil {
			return nil, fmt.Errorf("game %d: move %d: %w", g.ID, i+1, err)
		}
	}

	return pos, nil
}

func gameKey(id uint64) []byte {
	// Zero padding keeps keys in ID order during iteration.
	return []byte(fmt.Sprintf("%s%020d", gamePrefix, id))
}

func parseGameKey(key []byte) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(string(key), gamePrefix), 10, 64)
}

// SaveGame stores g. A game with a zero ID is assigned the next free ID;
// otherwise the stored game with the same ID is replaced.
func (s *Storage) SaveGame(g *SavedGame) (uint64, error) {
	if g.ID == 0 {
		next, err := s.gameSeq.Next()
		if err != nil {
			return 0, fmt.Errorf("allocate game id: %w", err)
		}
		// Sequences start at zero, which is reserved for unsaved games.
		g.ID = next + 1
	}

	data, err := json.Marshal(g)
	if err != nil {
		return 0, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(g.ID), data)
	})
	if err != nil {
		return 0, fmt.Errorf("save game %d: %w", g.ID, err)
	}
	return g.ID, nil
}

// LoadGame returns the saved game with the given ID, or ErrGameNotFound.
func (s *Storage) LoadGame(id uint64) (*SavedGame, error) {
	g := &SavedGame{}
	found, err := s.getJSON(string(gameKey(id)), g)
	if err != nil {
		return nil, fmt.Errorf("load game %d: %w", id, err)
	}
	if !found {
		return nil, fmt.Errorf("load game %d: %w", id, ErrGameNotFound)
	}
	return g, nil
}

// ListGames returns every saved game in ID order.
func (s *Storage) ListGames() ([]*SavedGame, error) {
	var games []*SavedGame

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			if _, err := parseGameKey(item.Key()); err != nil {
				return fmt.Errorf("bad game key %q: %w", item.Key(), err)
			}

			g := &SavedGame{}
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, g)
			})
			if err != nil {
				return err
			}
			games = append(games, g)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	return games, nil
}

// DeleteGame removes the saved game with the given ID, or returns ErrGameNotFound.
func (s *Storage) DeleteGame(id uint64) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := gameKey(id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrGameNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("delete game %d: %w", id, err)
	}
	return nil
}
