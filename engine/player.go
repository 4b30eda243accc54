package engine

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/fanren/game"
	"github.com/minaorangina/fanren/protocol"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Messages queued for a slow peer before it is dropped.
	sendBuffer = 32
)

var ErrSlowPlayer = errors.New("player is not keeping up")

const CodeSystemError = "SYSTEM_ERROR"

// NewID constructs a game or player ID
func NewID() string {
	return uuid.NewV4().String()
}

// ErrorStatus maps an error to a status code and an error code for clients
func ErrorStatus(err error) (int, string) {
	var gerr *game.Error
	if errors.As(err, &gerr) && gerr.Code != game.CodeInvalidWinCondition {
		return http.StatusBadRequest, string(gerr.Code)
	}
	return http.StatusInternalServerError, CodeSystemError
}

// Player is a connection to a seated player. Send must not block.
type Player interface {
	ID() string
	Send(msg protocol.OutboundMessage) error
}

// Players represents the connected players
type Players []Player

// NewPlayers returns a set of Players
func NewPlayers(p ...Player) Players {
	return Players(p)
}

// Find finds a player by id
func (ps Players) Find(id string) (Player, bool) {
	for _, p := range ps {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// Replace adds p, dropping any player with the same id
func (ps Players) Replace(p Player) Players {
	return append(ps.Remove(p.ID()), p)
}

// Remove drops the player with the given id
func (ps Players) Remove(id string) Players {
	kept := Players{}
	for _, p := range ps {
		if p.ID() != id {
			kept = append(kept, p)
		}
	}
	return kept
}

// WSPlayer is a player connected over a websocket
type WSPlayer struct {
	id     string
	conn   *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
	ge     *GameEngine
	log    *zap.Logger
}

// NewWSPlayer constructs a WSPlayer, attaches it to the game and starts its pumps
func NewWSPlayer(id string, ws *websocket.Conn, ge *GameEngine, log *zap.Logger) (*WSPlayer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &WSPlayer{
		id:     id,
		conn:   ws,
		sendCh: make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		ge:     ge,
		log:    log.With(zap.String("player_id", id)),
	}

	go p.writePump()
	if err := ge.Connect(p); err != nil {
		close(p.done)
		return nil, err
	}
	go p.readPump()

	return p, nil
}

func (p *WSPlayer) ID() string {
	return p.id
}

// Send queues a message for the peer
func (p *WSPlayer) Send(msg protocol.OutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case p.sendCh <- data:
		return nil
	default:
		return ErrSlowPlayer
	}
}

// Receive handles one frame from the peer
func (p *WSPlayer) Receive(data []byte) {
	var msg protocol.InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		p.sendError(http.StatusBadRequest, string(game.CodeInvalidParams), err)
		return
	}
	msg.PlayerID = p.id

	state, err := p.ge.Receive(msg)
	if err != nil {
		code, errCode := ErrorStatus(err)
		p.sendError(code, errCode, err)
		return
	}

	// moves are answered by the broadcast
	if msg.Command == protocol.Sync {
		p.Send(protocol.OutboundMessage{
			PlayerID: p.id,
			Command:  protocol.Sync,
			Code:     http.StatusOK,
			State:    &state,
		})
	}
}

func (p *WSPlayer) sendError(code int, errCode string, err error) {
	p.log.Debug("move rejected", zap.String("code", errCode), zap.Error(err))
	p.Send(protocol.OutboundMessage{
		PlayerID: p.id,
		Command:  protocol.Error,
		Code:     code,
		Message:  errCode,
	})
}

func (p *WSPlayer) readPump() {
	defer func() {
		close(p.done)
		if err := p.ge.Disconnect(p); err != nil {
			p.log.Warn("could not disconnect player", zap.Error(err))
		}
		p.conn.Close()
	}()

	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				p.log.Info("connection closed", zap.Error(err))
			}
			return
		}
		p.Receive(data)
	}
}

func (p *WSPlayer) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-p.done:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			p.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
