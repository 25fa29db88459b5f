package model

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/MatthewR-B/Chess-Honors-Project/internal/engine"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// writeWait bounds a single state write.
const writeWait = 10 * time.Second

// Conn is the part of a WebSocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type deadlineConn interface {
	SetWriteDeadline(t time.Time) error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex // held while sending; states go out in the order they were made
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Game is one live game: the engine board, the click selection, the seated
// players and whoever is watching over WebSocket.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *engine.Board
	selection   *engine.Selection
	players     Players
	moves       []SimpleMove
	state       engine.GameState // recomputed after each move
	connections *GameConnections
	onFinish    func(Result)
}

func NewGame(id string) *Game {
	board := engine.NewBoard()
	return &Game{
		ID:          id,
		board:       board,
		selection:   engine.NewSelection(board),
		state:       engine.Ongoing,
		connections: NewGameConnections(),
	}
}

// OnFinish registers fn to run once, on its own goroutine, when the game
// reaches checkmate or stalemate.
func (g *Game) OnFinish(fn func(Result)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onFinish = fn
}

func (g *Game) AddPlayer(playerID string) (engine.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c := g.colorOf(playerID); c != engine.NoColor {
		return c, nil
	}
	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Color: engine.White}
		return engine.White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Color: engine.Black}
		return engine.Black, nil
	}
	return engine.NoColor, ErrGameFull
}

func (g *Game) colorOf(playerID string) engine.Color {
	switch {
	case playerID == "":
		return engine.NoColor
	case g.players.White.ID == playerID:
		return engine.White
	case g.players.Black.ID == playerID:
		return engine.Black
	}
	return engine.NoColor
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.colorOf(playerID) != engine.NoColor
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// View returns a snapshot of the game for clients.
func (g *Game) View() GameView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view()
}

func (g *Game) view() GameView {
	inCheck := g.state == engine.Checkmate
	if g.state == engine.Ongoing {
		inCheck = g.board.IsInCheck(g.board.Turn())
	}
	v := GameView{
		ID:          g.ID,
		Board:       boardView(g.board),
		ToMove:      g.board.Turn(),
		Highlighted: g.selection.Highlighted(),
		IsCheck:     inCheck,
		State:       g.state,
		Plies:       len(g.moves),
		Players:     g.players,
	}
	if n := len(g.moves); n > 0 {
		last := g.moves[n-1]
		v.LastMove = &last
	}
	return v
}

// Highlighted returns the moves on offer for the current selection.
func (g *Game) Highlighted() []engine.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selection.Highlighted()
}

// Click forwards a square click from a seated player to the selection. Only
// the player whose turn it is may click. The resulting state is sent to every
// connection before Click returns.
func (g *Game) Click(playerID string, click Click) (GameView, error) {
	g.mu.Lock()
	v, err := g.click(playerID, click)
	if err != nil {
		g.mu.Unlock()
		return GameView{}, err
	}
	g.connections.writeMu.Lock()
	g.mu.Unlock()
	defer g.connections.writeMu.Unlock()

	g.sendState(v)
	return v, nil
}

// click applies one click. Caller holds g.mu.
func (g *Game) click(playerID string, click Click) (GameView, error) {
	pos := click.Coordinate()
	if !pos.InBounds() {
		return GameView{}, fmt.Errorf("click %s: %w", pos, ErrOutOfBounds)
	}
	color := g.colorOf(playerID)
	if color == engine.NoColor {
		return GameView{}, ErrNotInGame
	}
	if g.state != engine.Ongoing {
		return GameView{}, ErrGameOver
	}
	if color != g.board.Turn() {
		return GameView{}, ErrNotYourTurn
	}

	mv, moved := g.selection.Click(pos)
	if moved {
		g.moves = append(g.moves, simpleMove(mv))
		g.state = g.board.State()
		log.Printf("game %s: %s played %s", g.ID, color, mv)
		if g.state != engine.Ongoing && g.onFinish != nil {
			go g.onFinish(g.result(g.state))
		}
	}
	return g.view(), nil
}

func (g *Game) result(state engine.GameState) Result {
	r := Result{
		GameID: g.ID,
		White:  g.players.White.ID,
		Black:  g.players.Black.ID,
		State:  state,
		Moves:  append([]SimpleMove(nil), g.moves...),
	}
	if state == engine.Checkmate {
		r.Winner = g.board.Turn().Opponent()
	}
	return r
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	isAuthorized := g.colorOf(playerID) != engine.NoColor || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the healthy connection and turn the new one away
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection for player %s", g.ID, playerID)

	g.broadcastCurrent()
	return nil
}

// broadcastCurrent sends the current state to every connection.
func (g *Game) broadcastCurrent() {
	g.mu.Lock()
	v := g.view()
	g.connections.writeMu.Lock()
	g.mu.Unlock()
	defer g.connections.writeMu.Unlock()

	g.sendState(v)
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[playerID]; exists {
		log.Printf("game %s: unregistering connection for player %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

// sendState writes v to every connection, dropping the ones that fail.
// Caller holds g.connections.writeMu, taken before g.mu was released so that
// a later state can never overtake an earlier one.
func (g *Game) sendState(v GameView) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}

	g.connections.mu.RLock()
	active := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		if dc, ok := conn.(deadlineConn); ok {
			_ = dc.SetWriteDeadline(time.Now().Add(writeWait))
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, playerID, err)
			g.connections.mu.Lock()
			delete(g.connections.connections, playerID)
			g.connections.mu.Unlock()
		}
	}
}

// SendTo writes msg to one player's connection, if they have one.
func (g *Game) SendTo(playerID string, msg ws.Message) error {
	g.connections.mu.RLock()
	conn, ok := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !ok {
		return nil
	}

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}
