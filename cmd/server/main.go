package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/MatthewR-B/Chess-Honors-Project/internal/config"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/controller"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/middleware"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/service"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.ArchivePath), 0o755); err != nil {
		log.Fatal(err)
	}
	archive, err := store.Open(cfg.ArchivePath)
	if err != nil {
		log.Fatal(err)
	}
	defer archive.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameManager := service.NewGameManager(archive)
	go gameManager.RunMatchmaking(ctx, cfg.MatchInterval)
	gameService := service.NewGameService(gameManager, archive)

	app := NewApp(cfg, gameService)

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	log.Printf("chess server listening on %s", cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}

// NewApp wires middleware and routes around gameService.
func NewApp(cfg config.Config, gameService *service.GameService) *fiber.App {
	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	wsConfig := websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         cfg.AllowedOrigins,
	}
	wsRoutes := app.Group("/ws", middleware.EnsurePlayerID(), middleware.WebSocketUpgrade())
	wsRoutes.Get("/game/:gameId", websocket.New(wsController.HandleConnection, wsConfig))
	wsRoutes.Get("/matchmaking", websocket.New(wsController.HandleMatchmaking, wsConfig))

	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Delete("/matchmaking", gameController.LeaveMatchmaking)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Post("/:gameId/click", gameController.Click)
	gameRoutes.Get("/:gameId/moves", gameController.HighlightedMoves)

	archiveRoutes := api.Group("/archive")
	archiveRoutes.Get("/", gameController.ListArchive)
	archiveRoutes.Get("/:gameId", gameController.GetArchivedGame)

	return app
}
