package service

import (
	"context"
	"fmt"

	"github.com/MatthewR-B/Chess-Honors-Project/internal/engine"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/model"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/ws"
	"github.com/google/uuid"
)

// ArchiveReader lists archived games.
type ArchiveReader interface {
	ListFinishedGames(ctx context.Context, limit int) ([]model.Result, error)
	GetFinishedGame(ctx context.Context, gameID string) (model.Result, error)
}

type GameService struct {
	gameManager *GameManager
	archive     ArchiveReader
}

func NewGameService(gameManager *GameManager, archive ArchiveReader) *GameService {
	return &GameService{
		gameManager: gameManager,
		archive:     archive,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (engine.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) bool {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameView, error) {
	return gs.gameManager.GetGameState(gameID)
}

// HighlightedMoves returns the moves currently on offer in a game.
func (gs *GameService) HighlightedMoves(gameID string) ([]engine.Move, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.Highlighted(), nil
}

// HandleClick forwards a square click to the game's two-click protocol.
func (gs *GameService) HandleClick(gameID string, playerID string, click model.Click) (model.GameView, error) {
	return gs.gameManager.Click(gameID, playerID, click)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}

// SendError reports err to one player's game connection.
func (gs *GameService) SendError(gameID string, playerID string, err error) error {
	game, gerr := gs.gameManager.GetGame(gameID)
	if gerr != nil {
		return gerr
	}
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		return merr
	}
	return game.SendTo(playerID, msg)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) ListArchivedGames(ctx context.Context, limit int) ([]model.Result, error) {
	if gs.archive == nil {
		return []model.Result{}, nil
	}
	return gs.archive.ListFinishedGames(ctx, limit)
}

func (gs *GameService) GetArchivedGame(ctx context.Context, gameID string) (model.Result, error) {
	if gs.archive == nil {
		return model.Result{}, fmt.Errorf("game %s: %w", gameID, model.ErrGameNotFound)
	}
	return gs.archive.GetFinishedGame(ctx, gameID)
}
