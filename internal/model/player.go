package model

import "github.com/MatthewR-B/Chess-Honors-Project/internal/engine"

type Player struct {
	ID string
}

type ClientPlayer struct {
	ID    string       `json:"name"`
	Color engine.Color `json:"color"`
}

// MatchFoundEvent is sent to a queued player once a game has been made for them.
type MatchFoundEvent struct {
	GameID string       `json:"gameId"`
	Color  engine.Color `json:"color"`
}
