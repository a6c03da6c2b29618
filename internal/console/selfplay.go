package console

import (
	"github.com/sammy7272/Chess-Game-Gui/internal/board"
	"github.com/sammy7272/Chess-Game-Gui/internal/storage"
)

// SelfPlay lets the engine play both sides from the current position until
// the game ends or maxPlies moves have been made (0 means no limit). It
// returns the number of moves played.
func (c *Console) SelfPlay(maxPlies int) int {
	c.agentColor = board.NoColor
	c.mode = storage.ModeSelfPlay

	played := 0
	for !c.position.IsGameOver() {
		if maxPlies > 0 && played >= maxPlies {
			c.printf("stopped after %d plies\n", played)
			if c.store != nil {
				c.handleSave()
			}
			break
		}

		before := c.position.Plies()
		c.engineMove(c.position.Turn(), c.depth)
		if c.position.Plies() == before {
			break
		}
		played++
	}

	return played
}
