package game

import "github.com/minaorangina/fanren/protocol"

// turn passes play to the next seat holding more than one card.
// A pending jump for that seat forces its phase. With no such seat left the game is over.
func (g *Game) turn() {
	numPlayers := len(g.Players)

	for i := 0; i < numPlayers; i++ {
		g.Curr = (g.Curr + 1) % numPlayers
		next := g.Players[g.Curr]
		if !next.active() {
			continue
		}

		if g.Jump != nil && g.Jump.PlayerID == next.ID {
			jump := g.Jump
			g.Jump = nil
			if g.possible(jump.Phase) {
				g.Phase = jump.Phase
			}
		}
		return
	}

	g.Finished = true
}

// endAction closes the current player's action
func (g *Game) endAction() {
	g.Phase = protocol.Default
	g.Target = ""
	g.Interaction = nil
	g.turn()
}
