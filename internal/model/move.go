package model

import (
	"fmt"
	"strings"

	"github.com/MatthewR-B/Chess-Honors-Project/internal/engine"
)

// Click is a square click forwarded by a client.
type Click struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Click) Coordinate() engine.Coordinate {
	return engine.Coordinate{Row: c.Row, Col: c.Col}
}

type SimpleMove struct {
	From engine.Coordinate `json:"from"`
	To   engine.Coordinate `json:"to"`
}

func simpleMove(mv engine.Move) SimpleMove {
	return SimpleMove{From: mv.Start(), To: mv.End()}
}

// String encodes the move as four digits: from row, from col, to row, to col.
func (m SimpleMove) String() string {
	return fmt.Sprintf("%d%d%d%d", m.From.Row, m.From.Col, m.To.Row, m.To.Col)
}

// JoinMoves encodes a move list as space separated SimpleMove strings.
func JoinMoves(moves []SimpleMove) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// Result summarizes a finished game for the archive.
type Result struct {
	GameID string           `json:"gameId"`
	White  string           `json:"white"`
	Black  string           `json:"black"`
	State  engine.GameState `json:"state"`
	Winner engine.Color     `json:"winner"`
	Moves  []SimpleMove     `json:"moves"`
}

// Score is the conventional result string: 1-0, 0-1 or 1/2-1/2.
func (r Result) Score() string {
	switch r.Winner {
	case engine.White:
		return "1-0"
	case engine.Black:
		return "0-1"
	}
	return "1/2-1/2"
}

// ParseMoves decodes the output of JoinMoves.
func ParseMoves(s string) ([]SimpleMove, error) {
	fields := strings.Fields(s)
	moves := make([]SimpleMove, 0, len(fields))
	for _, f := range fields {
		if len(f) != 4 {
			return nil, fmt.Errorf("parse move %q: want 4 digits", f)
		}
		var d [4]int
		for i := range d {
			if f[i] < '0' || f[i] > '7' {
				return nil, fmt.Errorf("parse move %q: %w", f, ErrOutOfBounds)
			}
			d[i] = int(f[i] - '0')
		}
		moves = append(moves, SimpleMove{
			From: engine.Coordinate{Row: d[0], Col: d[1]},
			To:   engine.Coordinate{Row: d[2], Col: d[3]},
		})
	}
	return moves, nil
}
