package game

import "github.com/minaorangina/fanren/protocol"

// shape is the payload a command carries
type shape struct {
	targets  int
	decision int
}

var shapes = map[protocol.Cmd]shape{
	protocol.Embed:              {0, 1},
	protocol.Imprison:           {1, 1},
	protocol.Play:               {0, 1},
	protocol.TakeFromPlayed:     {0, 1},
	protocol.CheckPlayerCards:   {1, 0},
	protocol.CheckEmbedCards:    {0, 0},
	protocol.PickPlayerPickCard: {1, 2},
	protocol.MoveImprisonedCard: {2, 1},
	protocol.PickFromEmbed:      {0, 1},
	protocol.ExchangeWithEmbed:  {0, 2},
	protocol.PickPlayer:         {1, 0},
	protocol.ExchangeCard:       {0, 1},
	protocol.CheckPrisoner:      {0, 0},
	protocol.GiveToNext:         {0, 1},
}

// CheckParams validates the payload shape of a move
func CheckParams(msg protocol.InboundMessage) error {
	s, ok := shapes[msg.Command]
	if !ok {
		return errorf(CodeInvalidParams, "%s is not a move", msg.Command)
	}
	if len(msg.Targets) != s.targets || len(msg.Decision) != s.decision {
		return errorf(CodeInvalidParams, "%s takes %d targets and %d indices", msg.Command, s.targets, s.decision)
	}
	return nil
}

// Apply routes one move from a player to its handler
func (g *Game) Apply(msg protocol.InboundMessage) error {
	if err := CheckParams(msg); err != nil {
		return err
	}
	if _, err := g.Player(msg.PlayerID); err != nil {
		return err
	}
	if err := g.inProgress(); err != nil {
		return err
	}

	if msg.Command.Interactive() {
		if g.Phase != msg.Command {
			return invalidMove("expected %s, not %s", g.Phase, msg.Command)
		}
		return g.Collect(msg.PlayerID, msg.Decision)
	}

	if msg.PlayerID != g.CurrentPlayer() {
		return invalidMove("it is %s's turn", g.CurrentPlayer())
	}

	d, t := msg.Decision, msg.Targets
	switch msg.Command {
	case protocol.Embed:
		return g.EmbedCard(d[0])
	case protocol.Imprison:
		return g.ImprisonCard(d[0], t[0])
	case protocol.Play:
		return g.PlayCard(d[0])
	case protocol.TakeFromPlayed:
		return g.TakeFromPlayed(d[0])
	case protocol.CheckPlayerCards:
		return g.CheckPlayerCards(t[0])
	case protocol.CheckEmbedCards:
		return g.CheckEmbedCards()
	case protocol.PickPlayerPickCard:
		return g.PickPlayerPickCard(d[0], t[0], d[1])
	case protocol.MoveImprisonedCard:
		return g.MoveImprisonedCard(t[0], d[0], t[1])
	case protocol.PickFromEmbed:
		return g.PickFromEmbed(d[0])
	case protocol.ExchangeWithEmbed:
		return g.ExchangeWithEmbed(d[0], d[1])
	case protocol.PickPlayer:
		return g.PickPlayer(t[0])
	}

	return errorf(CodeInvalidParams, "%s is not a move", msg.Command)
}
