package model

import "github.com/MatthewR-B/Chess-Honors-Project/internal/engine"

// PieceView is what a client needs to draw one piece.
type PieceView struct {
	Type  engine.PieceType `json:"type"`
	Color engine.Color     `json:"color"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// GameView is the snapshot sent to clients after every change.
type GameView struct {
	ID          string           `json:"id"`
	Board       [][]*PieceView   `json:"board"`
	ToMove      engine.Color     `json:"toMove"`
	Highlighted []engine.Move    `json:"highlighted"`
	IsCheck     bool             `json:"isCheck"`
	State       engine.GameState `json:"state"`
	LastMove    *SimpleMove      `json:"lastMove"`
	Plies       int              `json:"plies"`
	Players     Players          `json:"players"`
}

func boardView(b *engine.Board) [][]*PieceView {
	rows := make([][]*PieceView, 0, engine.BoardSize)
	for row := 0; row < engine.BoardSize; row++ {
		cols := make([]*PieceView, engine.BoardSize)
		for col := range cols {
			if p := b.Occupant(engine.Coordinate{Row: row, Col: col}); p != nil {
				cols[col] = &PieceView{Type: p.Type, Color: p.Color}
			}
		}
		rows = append(rows, cols)
	}
	return rows
}
