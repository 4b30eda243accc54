package game

import (
	"math/rand"
	"reflect"
	"time"

	"github.com/minaorangina/fanren/deck"
	"github.com/minaorangina/fanren/protocol"
)

// DefaultCheckWait is how long players may answer a prisoner check
const DefaultCheckWait = 10 * time.Second

// Game holds the whole state of one table.
// It is not safe for concurrent use; callers serialise access per game.
type Game struct {
	Seats    int
	Players  []*Player
	Played   []deck.Holding
	Embedded []deck.Holding

	// Curr is the seat whose turn it is. Phase is the command the game
	// expects next; protocol.Default means a primary move.
	Curr  int
	Phase protocol.Cmd

	// Target is the player picked for a two-party exchange
	Target      string
	Jump        *Jump
	Interaction *Collector

	Started  bool
	Finished bool
	Aborted  bool

	seats     map[string]int
	rounds    int
	rng       *rand.Rand
	clock     func() time.Time
	checkWait time.Duration
}

// Jump re-enters a phase when its player's turn next comes round
type Jump struct {
	PlayerID string
	Phase    protocol.Cmd
}

// Opts configures a game. Only Seats, Rand, Clock and CheckWait are read by New;
// the rest describe an existing game for Existing.
type Opts struct {
	Seats     int
	Players   []*Player
	Played    []deck.Holding
	Embedded  []deck.Holding
	Curr      int
	Phase     protocol.Cmd
	Target    string
	Jump      *Jump
	Started   bool
	Finished  bool
	Rand      *rand.Rand
	Clock     func() time.Time
	CheckWait time.Duration
}

// New constructs a game in the lobby
func New(opts Opts) (*Game, error) {
	if opts.Seats < deck.MinSeats || opts.Seats > deck.MaxSeats {
		return nil, errorf(CodeInvalidPlayerNum, "a table seats %d to %d players", deck.MinSeats, deck.MaxSeats)
	}

	g := &Game{
		Seats:    opts.Seats,
		Players:  []*Player{},
		Played:   []deck.Holding{},
		Embedded: []deck.Holding{},
		seats:    map[string]int{},
	}
	g.configure(opts)

	return g, nil
}

// Existing constructs a game from an explicit state
func Existing(opts Opts) *Game {
	if reflect.ValueOf(opts).IsZero() {
		g, _ := New(Opts{Seats: deck.MinSeats})
		return g
	}

	g := &Game{
		Seats:    opts.Seats,
		Players:  opts.Players,
		Played:   opts.Played,
		Embedded: opts.Embedded,
		Curr:     opts.Curr,
		Phase:    opts.Phase,
		Target:   opts.Target,
		Jump:     opts.Jump,
		Started:  opts.Started,
		Finished: opts.Finished,
	}
	g.configure(opts)

	if g.Players == nil {
		g.Players = []*Player{}
	}
	if g.Seats == 0 {
		g.Seats = len(g.Players)
	}
	if g.Played == nil {
		g.Played = []deck.Holding{}
	}
	if g.Embedded == nil {
		g.Embedded = []deck.Holding{}
	}
	g.reindex()

	if g.Started {
		g.openInteraction(g.Phase)
	}

	return g
}

func (g *Game) configure(opts Opts) {
	g.rng = opts.Rand
	g.clock = opts.Clock
	if g.clock == nil {
		g.clock = time.Now
	}
	g.checkWait = opts.CheckWait
	if g.checkWait <= 0 {
		g.checkWait = DefaultCheckWait
	}
}

func (g *Game) reindex() {
	g.seats = make(map[string]int, len(g.Players))
	for i, p := range g.Players {
		g.seats[p.ID] = i
	}
}

// AddPlayer seats a player in the lobby
func (g *Game) AddPlayer(playerID string) error {
	if len(g.Players) >= g.Seats {
		return errorf(CodeInvalidPlayerNum, "all %d seats are taken", g.Seats)
	}
	if g.Started {
		return invalidMove("game has already started")
	}
	if _, ok := g.seats[playerID]; ok {
		return errorf(CodeInvalidPlayerID, "player %s already joined", playerID)
	}

	g.Players = append(g.Players, NewPlayer(playerID))
	g.seats[playerID] = len(g.Players) - 1

	return nil
}

// QuitPlayer removes a player from a running game. Any open phase other than
// the current player's pick from the embed pile is abandoned and the turn
// passes on. A table left with fewer than three players is aborted.
func (g *Game) QuitPlayer(playerID string) error {
	if !g.Started {
		return invalidMove("game has not started")
	}
	if len(g.Players) == 0 {
		return errorf(CodeInvalidPlayerNum, "no players left")
	}
	seat, ok := g.seats[playerID]
	if !ok {
		return errorf(CodeInvalidPlayerID, "unknown player %s", playerID)
	}

	wasCurrent := seat == g.Curr
	// a deferred pick belongs to the current player alone
	keepPick := g.Phase == protocol.PickFromEmbed && !wasCurrent
	abandoned := g.Phase != protocol.Default && g.Phase != protocol.PickFromEmbed
	g.Players = append(g.Players[:seat:seat], g.Players[seat+1:]...)
	g.reindex()

	if g.Jump != nil && g.Jump.PlayerID == playerID {
		g.Jump = nil
	}
	if g.Finished {
		if g.Curr >= len(g.Players) {
			g.Curr = 0
		}
		return nil
	}

	g.Interaction = nil
	g.Target = ""
	if !keepPick {
		g.Phase = protocol.Default
	}

	if seat < g.Curr {
		g.Curr--
	}
	if len(g.Players) < deck.MinSeats {
		g.Curr = 0
		g.Finished = true
		g.Aborted = true
		return nil
	}

	switch {
	case wasCurrent:
		// the seat after the leaver now sits at the leaver's index
		g.Curr = (g.Curr - 1 + len(g.Players)) % len(g.Players)
		g.turn()
	case abandoned:
		g.turn()
	}

	return nil
}

// Start deals the cards. The holder of the student president opens.
func (g *Game) Start() error {
	if g.Started {
		return invalidMove("game has already started")
	}
	if len(g.Players) != g.Seats {
		return errorf(CodeInvalidPlayerNum, "%d of %d seats taken", len(g.Players), g.Seats)
	}

	d, err := deck.New(g.Seats)
	if err != nil {
		return errorf(CodeInvalidPlayerNum, "%v", err)
	}
	d.Shuffle(g.rng)

	handSize := len(d) / g.Seats
	for i, p := range g.Players {
		p.Hand = d.Deal(handSize)
		if p.holds(deck.StudentPresident) {
			g.Curr = i
		}
	}

	g.Phase = protocol.Default
	g.Started = true

	return nil
}

// GameOver reports whether the game has finished
func (g *Game) GameOver() bool {
	return g.Finished
}

// CurrentPlayer returns the id of the player whose turn it is
func (g *Game) CurrentPlayer() string {
	if !g.Started || g.Curr >= len(g.Players) {
		return ""
	}
	return g.Players[g.Curr].ID
}

// Player finds a player by id
func (g *Game) Player(playerID string) (*Player, error) {
	seat, ok := g.seats[playerID]
	if !ok {
		return nil, errorf(CodeInvalidPlayerID, "unknown player %s", playerID)
	}
	return g.Players[seat], nil
}

// Seat returns a player's index in turn order
func (g *Game) Seat(playerID string) (int, bool) {
	seat, ok := g.seats[playerID]
	return seat, ok
}

func (g *Game) current() *Player {
	return g.Players[g.Curr]
}

func (g *Game) inProgress() error {
	if !g.Started {
		return invalidMove("game has not started")
	}
	if g.Finished {
		return invalidMove("game is over")
	}
	return nil
}

// expect checks the game is waiting for cmd
func (g *Game) expect(cmd protocol.Cmd) error {
	if err := g.inProgress(); err != nil {
		return err
	}
	if g.Phase != cmd {
		return invalidMove("expected %s, not %s", g.Phase, cmd)
	}
	return nil
}
