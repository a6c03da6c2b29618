package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/sammy7272/Chess-Game-Gui/internal/board"
	"github.com/sammy7272/Chess-Game-Gui/internal/engine"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
	keyGameSeq     = "seq/game"
	gamePrefix     = "game/"
)

// ErrGameNotFound is returned when no saved game has the requested ID.
var ErrGameNotFound = errors.New("game not found")

// GameMode represents the game mode
type GameMode int

const (
	ModeHumanVsComputer GameMode = iota
	ModeSelfPlay
)

func (m GameMode) String() string {
	if m == ModeSelfPlay {
		return "selfplay"
	}
	return "play"
}

// UserPreferences stores user settings
type UserPreferences struct {
	Username   string            `json:"username"`
	Difficulty engine.Difficulty `json:"difficulty"`
	GameMode   GameMode          `json:"game_mode"`
	HumanColor board.Color       `json:"human_color"`
	Depth      int               `json:"depth"` // Overrides Difficulty when > 0
	Workers    int               `json:"workers"`
	Verbose    bool              `json:"verbose"`
	LastPlayed time.Time         `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:   "Player",
		Difficulty: engine.Medium,
		GameMode:   ModeHumanVsComputer,
		HumanColor: board.White,
		Workers:    1,
		LastPlayed: time.Now(),
	}
}

// SearchDepth returns the depth the agent should search with these preferences.
func (p *UserPreferences) SearchDepth() int {
	if p.Depth > 0 {
		return p.Depth
	}
	return p.Difficulty.Depth()
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed    int            `json:"games_played"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Draws          int            `json:"draws"`
	WinsByColor    map[string]int `json:"wins_by_color"`
	WinsByDiff     map[string]int `json:"wins_by_difficulty"`
	TotalPlayTime  time.Duration  `json:"total_play_time"`
	LongestWinStrk int            `json:"longest_win_streak"`
	CurrentStreak  int            `json:"current_streak"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByColor: make(map[string]int),
		WinsByDiff:  make(map[string]int),
	}
}

// GameResult represents the result of a completed game
type GameResult struct {
	Winner     board.Color // NoColor for a draw
	HumanColor board.Color // Only meaningful in ModeHumanVsComputer
	Mode       GameMode
	Difficulty engine.Difficulty
	Duration   time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db      *badger.DB
	gameSeq *badger.Sequence
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	return OpenAt("")
}

// OpenAt opens the database stored in dir, creating dir if needed. An empty
// dir selects the platform data directory.
func OpenAt(dir string) (*Storage, error) {
	dbDir, err := DatabaseDir(dir)
	if err != nil {
		return nil, err
	}
	return open(badger.DefaultOptions(dbDir))
}

// OpenInMemory opens a database that lives only until Close.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	seq, err := db.GetSequence([]byte(keyGameSeq), 16)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open game sequence: %w", err)
	}

	return &Storage{db: db, gameSeq: seq}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	var seqErr error
	if s.gameSeq != nil {
		seqErr = s.gameSeq.Release()
	}
	return errors.Join(seqErr, s.db.Close())
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.putJSON(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	if _, err := s.getJSON(keyPreferences, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.putJSON(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	if _, err := s.getJSON(keyStats, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// RecordGame records a completed game and updates statistics.
// Wins, losses and streaks only count games against the computer.
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration

	if result.Winner != board.NoColor {
		stats.WinsByColor[result.Winner.String()]++
	}

	if result.Mode == ModeHumanVsComputer {
		switch result.Winner {
		case board.NoColor:
			stats.Draws++
			stats.CurrentStreak = 0
		case result.HumanColor:
			stats.Wins++
			stats.CurrentStreak++
			if stats.CurrentStreak > stats.LongestWinStrk {
				stats.LongestWinStrk = stats.CurrentStreak
			}
			stats.WinsByDiff[result.Difficulty.String()]++
		default:
			stats.Losses++
			stats.CurrentStreak = 0
		}
	} else if result.Winner == board.NoColor {
		stats.Draws++
	}

	return s.SaveStats(stats)
}

// GetWinRate returns the win rate as a percentage (0-100)
func (s *GameStats) GetWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// putJSON stores v as JSON under key.
func (s *Storage) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// getJSON decodes the value under key into v. It reports false, leaving v
// untouched, when the key does not exist.
func (s *Storage) getJSON(key string, v any) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}
