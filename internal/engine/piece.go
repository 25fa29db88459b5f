package engine

import "strings"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) letter() string {
	switch p {
	case King:
		return "k"
	case Queen:
		return "q"
	case Rook:
		return "r"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	case Pawn:
		return "p"
	}
	return "?"
}

// Piece is owned by at most one board. Its position is only ever written by
// Board.Place.
type Piece struct {
	Type     PieceType
	Color    Color
	Position Coordinate
	HasMoved bool
}

func NewPiece(t PieceType, c Color) *Piece {
	return &Piece{Type: t, Color: c}
}

// String is the piece's letter, upper case for white.
func (p *Piece) String() string {
	if p.Color == White {
		return strings.ToUpper(p.Type.letter())
	}
	return p.Type.letter()
}

type direction struct{ dRow, dCol int }

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	kingDirs   = append(append([]direction{}, rookDirs...), bishopDirs...)
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// kingHomeCol is the file both kings start on; castling is offered only from it.
const kingHomeCol = 4

// shapeMoves generates the piece's candidate moves from its movement pattern
// alone. The results are not yet checked for bounds, blocking or self-check.
func (p *Piece) shapeMoves(b *Board) []Move {
	switch p.Type {
	case Pawn:
		return p.pawnMoves(b)
	case Knight:
		return p.jumpMoves(knightDirs)
	case Bishop:
		return p.slideMoves(bishopDirs, BoardSize)
	case Rook:
		return p.slideMoves(rookDirs, BoardSize)
	case Queen:
		return p.slideMoves(kingDirs, BoardSize)
	case King:
		return append(p.slideMoves(kingDirs, 1), p.castleMoves(b)...)
	}
	return nil
}

func (p *Piece) jumpMoves(dirs []direction) []Move {
	moves := make([]Move, 0, len(dirs))
	for _, d := range dirs {
		moves = append(moves, newMove([]Coordinate{p.Position, p.Position.offset(d.dRow, d.dCol)}))
	}
	return moves
}

// slideMoves emits one move per reachable step along each direction, up to
// limit steps or the board edge. Blocking is left to the filter, which sees
// the whole path.
func (p *Piece) slideMoves(dirs []direction, limit int) []Move {
	var moves []Move
	for _, d := range dirs {
		path := []Coordinate{p.Position}
		cur := p.Position
		for step := 0; step < limit; step++ {
			cur = cur.offset(d.dRow, d.dCol)
			if !cur.InBounds() {
				break
			}
			path = append(path[:len(path):len(path)], cur)
			moves = append(moves, newMove(path))
		}
	}
	return moves
}

func (p *Piece) castleMoves(b *Board) []Move {
	if p.HasMoved || p.Position.Col != kingHomeCol {
		return nil
	}
	row := p.Position.Row
	var moves []Move

	if b.unmovedRook(Coordinate{Row: row, Col: 0}, p.Color) {
		// The b-file square is visited before the landing square so the
		// corridor check covers the rook's side too.
		path := []Coordinate{
			p.Position,
			{Row: row, Col: kingHomeCol - 1},
			{Row: row, Col: 1},
			{Row: row, Col: kingHomeCol - 2},
		}
		moves = append(moves, Move{path: path, castle: Queenside, capture: captureForbidden})
	}
	if b.unmovedRook(Coordinate{Row: row, Col: BoardSize - 1}, p.Color) {
		path := []Coordinate{
			p.Position,
			{Row: row, Col: kingHomeCol + 1},
			{Row: row, Col: kingHomeCol + 2},
		}
		moves = append(moves, Move{path: path, castle: Kingside, capture: captureForbidden})
	}
	return moves
}

func (p *Piece) pawnMoves(b *Board) []Move {
	dir := p.Color.forward()
	one := p.Position.offset(dir, 0)
	moves := []Move{{path: []Coordinate{p.Position, one}, capture: captureForbidden}}
	if !p.HasMoved {
		two := p.Position.offset(2*dir, 0)
		moves = append(moves, Move{
			path:       []Coordinate{p.Position, one, two},
			doublePawn: p.Color,
			capture:    captureForbidden,
		})
	}
	for _, dCol := range []int{-1, 1} {
		target := p.Position.offset(dir, dCol)
		if !target.InBounds() {
			continue
		}
		moves = append(moves, Move{
			path:      []Coordinate{p.Position, target},
			enPassant: b.Occupant(target) == nil && b.enPassantAllowed(p, target.Col),
			capture:   captureRequired,
		})
	}
	return moves
}
