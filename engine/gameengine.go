package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/minaorangina/fanren/game"
	"github.com/minaorangina/fanren/journal"
	"github.com/minaorangina/fanren/protocol"
	"go.uber.org/zap"
)

var (
	ErrStopped   = errors.New("game engine has stopped")
	ErrNilGame   = errors.New("game is nil")
	ErrMissingID = errors.New("game engine needs an id")
)

// Journal records accepted moves
type Journal interface {
	Record(entry journal.Entry)
}

type nopJournal struct{}

func (nopJournal) Record(journal.Entry) {}

// Summary describes a game for listings
type Summary struct {
	GameID     string `json:"game_id"`
	Seats      int    `json:"seats"`
	NumPlayers int    `json:"num_players"`
	Started    bool   `json:"started"`
	Finished   bool   `json:"finished"`
}

// GameEngine owns one game. Every call is run by the Listen loop, one at a time.
type GameEngine struct {
	id      string
	game    *game.Game
	players Players
	journal Journal
	log     *zap.Logger

	opsCh  chan func()
	stopCh chan struct{}
	doneCh chan struct{}

	// timer for a time-based interaction, armed for one collector round
	timer      *time.Timer
	timerC     <-chan time.Time
	armedRound int
}

type GameEngineOpts struct {
	GameID  string
	Game    *game.Game
	Journal Journal
	Logger  *zap.Logger
}

// NewGameEngine constructs a GameEngine and starts its loop
func NewGameEngine(opts GameEngineOpts) (*GameEngine, error) {
	if opts.Game == nil {
		return nil, ErrNilGame
	}
	if opts.GameID == "" {
		return nil, ErrMissingID
	}

	ge := &GameEngine{
		id:      opts.GameID,
		game:    opts.Game,
		players: Players{},
		journal: opts.Journal,
		log:     opts.Logger,
		opsCh:   make(chan func()),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	if ge.journal == nil {
		ge.journal = nopJournal{}
	}
	if ge.log == nil {
		ge.log = zap.NewNop()
	}
	ge.log = ge.log.With(zap.String("game_id", ge.id))

	go ge.Listen()

	return ge, nil
}

func (ge *GameEngine) ID() string {
	return ge.id
}

// Listen runs calls into the game and fires the interaction timer
func (ge *GameEngine) Listen() {
	defer close(ge.doneCh)

	for {
		select {
		case op := <-ge.opsCh:
			op()

		case <-ge.timerC:
			ge.timerC = nil
			ge.timeout()

		case <-ge.stopCh:
			if ge.timer != nil {
				ge.timer.Stop()
			}
			return
		}
	}
}

// Stop ends the loop. Later calls fail with ErrStopped.
func (ge *GameEngine) Stop() {
	select {
	case <-ge.stopCh:
	default:
		close(ge.stopCh)
	}
	<-ge.doneCh
}

// do runs fn on the loop and waits for it
func (ge *GameEngine) do(fn func() error) error {
	result := make(chan error, 1)
	op := func() { result <- fn() }

	select {
	case ge.opsCh <- op:
		return <-result
	case <-ge.doneCh:
		return ErrStopped
	}
}

// Join seats a player. The game starts once every seat is taken.
func (ge *GameEngine) Join(playerID string) (started bool, err error) {
	err = ge.do(func() error {
		if err := ge.game.AddPlayer(playerID); err != nil {
			return err
		}
		ge.log.Info("player joined", zap.String("player_id", playerID))

		if len(ge.game.Players) < ge.game.Seats {
			ge.broadcast(protocol.Joined, fmt.Sprintf("%s joined", playerID))
			return nil
		}

		if err := ge.game.Start(); err != nil {
			return err
		}
		started = true
		ge.log.Info("game started", zap.String("first_player", ge.game.CurrentPlayer()))
		ge.broadcast(protocol.Joined, "game started")

		return nil
	})

	return started, err
}

// Connect attaches a connection to a seated player, replacing any earlier one
func (ge *GameEngine) Connect(p Player) error {
	return ge.do(func() error {
		if _, err := ge.game.Player(p.ID()); err != nil {
			return err
		}
		ge.players = ge.players.Replace(p)

		return ge.send(p, protocol.Sync, "connected")
	})
}

// Disconnect drops a player's connection. A player leaving a running game quits it.
// A connection that was already replaced is ignored.
func (ge *GameEngine) Disconnect(p Player) error {
	return ge.do(func() error {
		playerID := p.ID()
		if current, ok := ge.players.Find(playerID); !ok || current != p {
			return nil
		}
		ge.players = ge.players.Remove(playerID)

		if !ge.game.Started || ge.game.Finished {
			return nil
		}
		if err := ge.game.QuitPlayer(playerID); err != nil {
			return err
		}
		ge.log.Info("player quit", zap.String("player_id", playerID), zap.Bool("aborted", ge.game.Aborted))
		ge.syncTimer()
		ge.broadcast(protocol.Left, fmt.Sprintf("%s left", playerID))

		return nil
	})
}

// Receive applies one move and returns the mover's view of the result
func (ge *GameEngine) Receive(msg protocol.InboundMessage) (protocol.PersonalState, error) {
	var state protocol.PersonalState

	err := ge.do(func() error {
		if msg.Command != protocol.Sync {
			if err := ge.game.Apply(msg); err != nil {
				return err
			}
			ge.log.Debug("move accepted",
				zap.String("player_id", msg.PlayerID),
				zap.Stringer("command", msg.Command),
				zap.Stringer("phase", ge.game.Phase),
			)
			ge.journal.Record(journal.Entry{
				GameID:   ge.id,
				PlayerID: msg.PlayerID,
				Command:  msg.Command.String(),
				Targets:  msg.Targets,
				Decision: msg.Decision,
				Phase:    ge.game.Phase.String(),
			})

			if ge.game.InteractionReady(time.Now()) {
				ge.resolve()
			}
			ge.syncTimer()
			ge.broadcast(msg.Command, "")
		}

		var err error
		state, err = ge.game.PersonalState(msg.PlayerID)
		return err
	})

	return state, err
}

// FullState is the spectator view
func (ge *GameEngine) FullState() (protocol.GameState, error) {
	var state protocol.GameState
	err := ge.do(func() error {
		var err error
		state, err = ge.game.FullState()
		return err
	})
	return state, err
}

// PersonalState is one player's view
func (ge *GameEngine) PersonalState(playerID string) (protocol.PersonalState, error) {
	var state protocol.PersonalState
	err := ge.do(func() error {
		var err error
		state, err = ge.game.PersonalState(playerID)
		return err
	})
	return state, err
}

func (ge *GameEngine) Summary() Summary {
	var s Summary
	ge.do(func() error {
		s = Summary{
			GameID:     ge.id,
			Seats:      ge.game.Seats,
			NumPlayers: len(ge.game.Players),
			Started:    ge.game.Started,
			Finished:   ge.game.Finished,
		}
		return nil
	})
	return s
}

// Players returns the connected players
func (ge *GameEngine) Players() Players {
	var ps Players
	ge.do(func() error {
		ps = append(Players{}, ge.players...)
		return nil
	})
	return ps
}

func (ge *GameEngine) resolve() {
	phase := ge.game.Interaction.Phase
	if err := ge.game.ResolveInteraction(); err != nil {
		ge.log.Warn("interaction failed, collecting again", zap.Stringer("phase", phase), zap.Error(err))
		return
	}
	ge.log.Debug("interaction resolved", zap.Stringer("phase", phase))
}

// syncTimer arms the timer for an open time-based interaction, or stops it
func (ge *GameEngine) syncTimer() {
	c := ge.game.Interaction
	if c == nil || c.Readiness != game.ByTime {
		ge.stopTimer()
		return
	}
	if ge.timerC != nil && ge.armedRound == c.Round {
		return
	}

	ge.stopTimer()
	ge.timer = time.NewTimer(time.Until(c.Deadline()))
	ge.timerC = ge.timer.C
	ge.armedRound = c.Round
}

func (ge *GameEngine) stopTimer() {
	if ge.timer != nil {
		ge.timer.Stop()
	}
	ge.timer = nil
	ge.timerC = nil
}

func (ge *GameEngine) timeout() {
	c := ge.game.Interaction
	if c == nil || c.Round != ge.armedRound {
		return
	}

	if ge.game.InteractionReady(time.Now()) {
		ge.resolve()
		ge.broadcast(c.Phase, "")
	}
	ge.syncTimer()
}

// broadcast sends every connected player their own view
func (ge *GameEngine) broadcast(cmd protocol.Cmd, text string) {
	if ge.game.Finished {
		cmd = protocol.GameOver
	}

	msgs, err := ge.game.BuildMessages(cmd, text)
	if err != nil {
		ge.log.Error("could not build player views", zap.Error(err))
		return
	}

	for _, m := range msgs {
		p, ok := ge.players.Find(m.PlayerID)
		if !ok {
			continue
		}
		if err := p.Send(m); err != nil {
			ge.log.Warn("could not send to player", zap.String("player_id", p.ID()), zap.Error(err))
		}
	}
}

func (ge *GameEngine) send(p Player, cmd protocol.Cmd, text string) error {
	state, err := ge.game.PersonalState(p.ID())
	if err != nil {
		return err
	}
	return p.Send(protocol.OutboundMessage{
		PlayerID: p.ID(),
		Command:  cmd,
		Code:     200,
		Message:  text,
		State:    &state,
	})
}
