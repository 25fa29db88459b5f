package engine

import (
	"encoding/json"
	"fmt"
)

type CastleSide string

const (
	NoCastle  CastleSide = ""
	Kingside  CastleSide = "kingside"
	Queenside CastleSide = "queenside"
)

// captureRule says what the end square of a move may hold.
type captureRule int

const (
	captureAllowed captureRule = iota
	captureForbidden
	captureRequired
)

// Move is a candidate move as produced by move generation. The path lists
// every square the moving piece occupies from start to end, inclusive, so
// blocking can be checked the same way for steps, slides and castling.
//
// A Move is never modified after construction.
type Move struct {
	path       []Coordinate
	castle     CastleSide
	doublePawn Color
	enPassant  bool
	capture    captureRule
}

func newMove(path []Coordinate) Move {
	return Move{path: path}
}

func (m Move) Start() Coordinate {
	return m.path[0]
}

func (m Move) End() Coordinate {
	return m.path[len(m.path)-1]
}

// Path returns a copy of the squares the move traverses.
func (m Move) Path() []Coordinate {
	out := make([]Coordinate, len(m.path))
	copy(out, m.path)
	return out
}

func (m Move) CastleSide() CastleSide {
	return m.castle
}

// DoublePawnColor is the color of the pawn making a two-square advance, or
// NoColor for any other move.
func (m Move) DoublePawnColor() Color {
	return m.doublePawn
}

func (m Move) IsEnPassant() bool {
	return m.enPassant
}

// firstStep is the move cut down to its first two squares. Castling uses it
// to ask whether the king would pass through check.
func (m Move) firstStep() Move {
	return Move{path: m.path[:2], capture: captureForbidden}
}

func (m Move) String() string {
	return fmt.Sprintf("%s to %s", m.Start(), m.End())
}

type moveJSON struct {
	From      Coordinate   `json:"from"`
	To        Coordinate   `json:"to"`
	Path      []Coordinate `json:"path"`
	Castle    CastleSide   `json:"castle,omitempty"`
	EnPassant bool         `json:"enPassant"`
}

func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal(moveJSON{
		From:      m.Start(),
		To:        m.End(),
		Path:      m.path,
		Castle:    m.castle,
		EnPassant: m.enPassant,
	})
}
