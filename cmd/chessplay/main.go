// Command chessplay plays chess against the engine in a terminal, or lets
// the engine play itself.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/sammy7272/Chess-Game-Gui/internal/board"
	"github.com/sammy7272/Chess-Game-Gui/internal/console"
	"github.com/sammy7272/Chess-Game-Gui/internal/engine"
	"github.com/sammy7272/Chess-Game-Gui/internal/storage"
)

var (
	mode       = flag.String("mode", "", "game mode: play or selfplay (default: saved preference)")
	color      = flag.String("color", "", "color the human plays: white or black")
	difficulty = flag.String("difficulty", "", "easy, medium or hard")
	depth      = flag.Int("depth", 0, "search depth in plies, overrides difficulty")
	workers    = flag.Int("workers", 0, "root moves searched concurrently, 0 for one per CPU (default: saved preference)")
	maxPlies   = flag.Int("maxplies", 200, "self-play move limit")
	fen        = flag.String("fen", "", "start from this FEN instead of the initial position")
	ascii      = flag.Bool("ascii", false, "draw pieces as letters")
	verbose    = flag.Bool("v", false, "log a line per engine search")
	dbDir      = flag.String("db", "", "database directory (default: platform data directory)")
	noStore    = flag.Bool("nostore", false, "do not read or write preferences and games")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func run() error {
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	var store *storage.Storage
	if !*noStore {
		var err error
		store, err = storage.OpenAt(*dbDir)
		if err != nil {
			return fmt.Errorf("storage: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("Warning: closing storage: %v", err)
			}
		}()
	}

	prefs := storage.DefaultPreferences()
	if store != nil {
		loaded, err := store.LoadPreferences()
		if err != nil {
			log.Printf("Warning: preferences not loaded: %v (using defaults)", err)
		} else {
			prefs = loaded
		}
	}
	if err := applyFlags(prefs); err != nil {
		return err
	}
	if store != nil {
		if err := store.SavePreferences(prefs); err != nil {
			log.Printf("Warning: preferences not saved: %v", err)
		}
	}

	eng := engine.NewEngine()
	eng.SetDifficulty(prefs.Difficulty)
	eng.SetWorkers(prefs.Workers)
	eng.Verbose = prefs.Verbose

	c := console.New(eng, store, prefs, os.Stdout)
	c.Unicode = !*ascii

	if store != nil {
		first, err := store.IsFirstLaunch()
		if err != nil {
			log.Printf("Warning: %v", err)
		}
		if first {
			c.Execute("help")
			if err := store.MarkFirstLaunchComplete(); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
	}
	if *fen != "" {
		c.Execute("position fen " + *fen)
	}

	if prefs.GameMode == storage.ModeSelfPlay {
		c.Execute("d")
		c.SelfPlay(*maxPlies)
		return nil
	}

	c.Execute("d")
	return c.Run(os.Stdin)
}

// applyFlags overrides stored preferences with the flags given on the command line.
func applyFlags(prefs *storage.UserPreferences) error {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var err error
	flag.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "mode":
			switch *mode {
			case "play":
				prefs.GameMode = storage.ModeHumanVsComputer
			case "selfplay":
				prefs.GameMode = storage.ModeSelfPlay
			default:
				err = fmt.Errorf("unknown mode %q", *mode)
			}
		case "color":
			c, ok := board.ParseColor(*color)
			if !ok {
				err = fmt.Errorf("unknown color %q", *color)
				return
			}
			prefs.HumanColor = c
		case "difficulty":
			d, perr := engine.ParseDifficulty(*difficulty)
			if perr != nil {
				err = perr
				return
			}
			prefs.Difficulty = d
			if !set["depth"] {
				prefs.Depth = 0
			}
		case "depth":
			prefs.Depth = *depth
		case "workers":
			prefs.Workers = *workers
		case "v":
			prefs.Verbose = *verbose
		}
	})
	return err
}
