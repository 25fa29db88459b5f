// service/game_manager.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/MatthewR-B/Chess-Honors-Project/internal/engine"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/model"
	"github.com/google/uuid"
)

// Archiver stores finished games.
type Archiver interface {
	InsertFinishedGame(ctx context.Context, r model.Result) error
}

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	pendingMatches   map[string]string // playerID -> match event nobody was waiting for
	archive          Archiver
	mu               sync.RWMutex
}

// NewGameManager returns a manager that archives finished games to archive,
// which may be nil.
func NewGameManager(archive Archiver) *GameManager {
	return &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		pendingMatches:   make(map[string]string),
		archive:          archive,
	}
}

// RunMatchmaking pairs queued players every interval until ctx is done.
func (gm *GameManager) RunMatchmaking(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.matchNextPair() {
			}
		}
	}
}

// matchNextPair seats the two longest-waiting players in a new game and
// notifies them. It reports whether a pair was matched.
func (gm *GameManager) matchNextPair() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	player1, player2, ok := gm.queue.GetNextPair()
	if !ok {
		return false
	}

	game := gm.newGame(uuid.New().String())
	p1Color, err := game.AddPlayer(player1.ID)
	if err != nil {
		log.Printf("matchmaking: seat %s: %v", player1.ID, err)
		return true
	}
	p2Color, err := game.AddPlayer(player2.ID)
	if err != nil {
		log.Printf("matchmaking: seat %s: %v", player2.ID, err)
		return true
	}
	gm.games[game.ID] = game

	log.Printf("matchmaking: game %s: %s vs %s", game.ID, player1.ID, player2.ID)
	gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: game.ID, Color: p1Color})
	gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: game.ID, Color: p2Color})
	return true
}

// notifyMatch hands the event to the player's waiting channel and closes it.
// A player with no waiting channel gets the event on their next
// RegisterMatchmakingChannel. Caller holds gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	msg := mustJSON(event)
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		gm.pendingMatches[playerID] = msg
		return
	}
	if !deliver(ch, msg) {
		gm.pendingMatches[playerID] = msg
	}
	delete(gm.matchingChannels, playerID)
}

// deliver sends msg on ch without blocking and closes ch either way.
func deliver(ch chan string, msg string) bool {
	defer close(ch)
	select {
	case ch <- msg:
		return true
	default:
		return false
	}
}

// RegisterMatchmakingChannel makes ch the player's waiting channel. ch must
// be buffered. If the player was already matched, the event is sent and ch
// closed at once.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	if msg, ok := gm.pendingMatches[playerID]; ok {
		if deliver(ch, msg) {
			delete(gm.pendingMatches, playerID)
		}
		return
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel forgets the player's channel without closing
// it; the goroutine that made the channel owns it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.matchingChannels[playerID] == ch {
		delete(gm.matchingChannels, playerID)
	}
}

func mustJSON(v interface{}) string {
	bytes, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

// newGame builds a game wired to the archive. Caller holds gm.mu.
func (gm *GameManager) newGame(id string) *model.Game {
	game := model.NewGame(id)
	game.OnFinish(gm.archiveGame)
	return game
}

func (gm *GameManager) archiveGame(r model.Result) {
	log.Printf("game %s finished: %s (%s)", r.GameID, r.State, r.Score())
	if gm.archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := gm.archive.InsertFinishedGame(ctx, r); err != nil {
		log.Printf("game %s: archive: %v", r.GameID, err)
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return model.ErrGameExists
	}

	gm.games[gameID] = gm.newGame(gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("game %s: %w", gameID, model.ErrGameNotFound)
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (engine.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return engine.NoColor, err
	}
	return game.AddPlayer(playerID)
}

// JoinMatchmaking queues the player, dropping any match they were never told
// about.
func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if err := gm.queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		return err
	}
	delete(gm.pendingMatches, playerID)
	return nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.Remove(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return game.View(), nil
}

func (gm *GameManager) Click(gameID string, playerID string, click model.Click) (model.GameView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return game.Click(playerID, click)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}
