package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/MatthewR-B/Chess-Honors-Project/internal/model"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/service"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// connPlayerID reads the ID EnsurePlayerID stored before the upgrade. A
// missing ID closes the connection.
func connPlayerID(c *websocket.Conn) (string, bool) {
	playerID, ok := playerIDOf(c.Locals("playerID"))
	if !ok {
		log.Printf("websocket %s: no player ID", c.RemoteAddr())
		c.Close()
		return "", false
	}
	return playerID, true
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, ok := connPlayerID(c)
	if !ok {
		return
	}

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("game %s: register connection for %s: %v", gameID, playerID, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("game %s: read from %s: %v", gameID, playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("game %s: parse message from %s: %v", gameID, playerID, err)
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			if serr := wsc.gameService.SendError(gameID, playerID, err); serr != nil {
				log.Printf("game %s: send error to %s: %v", gameID, playerID, serr)
			}
		}
	}
}

// handleMessage routes one inbound message. Successful clicks are answered by
// the game's broadcast, so only errors come back here.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeClick:
		var click model.Click
		if err := json.Unmarshal(msg.Payload, &click); err != nil {
			return fmt.Errorf("invalid click: %w", err)
		}
		_, err := wsc.gameService.HandleClick(gameID, playerID, click)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking waits for the player's match and reports it as a
// matchFound message. The player must already be queued.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, ok := connPlayerID(c)
	if !ok {
		return
	}

	ch := make(chan string, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	// a read error means the client went away; stop waiting
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			return
		}
		err := c.WriteJSON(ws.Message{
			Type:    ws.MessageTypeMatchFound,
			Payload: json.RawMessage(event),
		})
		if err != nil {
			log.Printf("matchmaking: notify %s: %v", playerID, err)
		}
	case <-gone:
		wsc.gameService.LeaveMatchmaking(playerID)
	}
}
