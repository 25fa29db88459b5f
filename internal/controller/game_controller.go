package controller

import (
	"errors"

	"github.com/MatthewR-B/Chess-Honors-Project/internal/model"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/service"
	"github.com/gofiber/fiber/v2"
)

const defaultArchiveLimit = 20

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// statusFor maps session errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotInGame), errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull), errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrNotYourTurn), errors.Is(err, model.ErrAlreadyQueued),
		errors.Is(err, model.ErrGameExists):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrOutOfBounds):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// playerIDOf reads a player ID stored in locals by EnsurePlayerID.
func playerIDOf(v interface{}) (string, bool) {
	id, ok := v.(string)
	return id, ok && id != ""
}

func noPlayer(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "player ID is required",
	})
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID, ok := playerIDOf(c.Locals("playerID"))
	if !ok {
		return noPlayer(c)
	}

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	view, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

// Click is the onSquareClicked command: the first click selects, the second
// moves or deselects.
func (gc *GameController) Click(c *fiber.Ctx) error {
	var click model.Click
	if err := c.BodyParser(&click); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid click: " + err.Error(),
		})
	}
	playerID, ok := playerIDOf(c.Locals("playerID"))
	if !ok {
		return noPlayer(c)
	}

	view, err := gc.gameService.HandleClick(c.Params("gameId"), playerID, click)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) HighlightedMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.HighlightedMoves(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(moves)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID, ok := playerIDOf(c.Locals("playerID"))
	if !ok {
		return noPlayer(c)
	}

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	playerID, ok := playerIDOf(c.Locals("playerID"))
	if !ok {
		return noPlayer(c)
	}
	if !gc.gameService.LeaveMatchmaking(playerID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "player not in queue",
		})
	}
	return c.JSON(fiber.Map{
		"status": "left",
	})
}

func (gc *GameController) ListArchive(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultArchiveLimit)
	if limit <= 0 {
		limit = defaultArchiveLimit
	}
	games, err := gc.gameService.ListArchivedGames(c.UserContext(), limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(games)
}

func (gc *GameController) GetArchivedGame(c *fiber.Ctx) error {
	game, err := gc.gameService.GetArchivedGame(c.UserContext(), c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(game)
}
