// Package engine implements the rules of standard chess: board state, move
// generation, legality filtering by simulation, and game-state classification.
package engine

import "fmt"

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

type Color string

const (
	NoColor Color = ""
	White   Color = "white"
	Black   Color = "black"
)

// Opponent returns the other side. NoColor has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// forward is the row delta a pawn of this color advances by.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// promotionRow is the opponent's back rank.
func (c Color) promotionRow() int {
	if c == White {
		return 0
	}
	return BoardSize - 1
}

// Coordinate addresses a square. Row 0 is black's back rank, column 0 is the
// queenside file.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coordinate) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

func (c Coordinate) offset(dRow, dCol int) Coordinate {
	return Coordinate{Row: c.Row + dRow, Col: c.Col + dCol}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
