package engine

import "strings"

// Board is the complete state of one game: squares, side to move and the
// moves played so far. It is not safe for concurrent use.
type Board struct {
	squares        [BoardSize][BoardSize]*Piece
	turn           Color
	history        []Move
	checkDetection bool
}

var backRank = []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns a board set up in the standard starting position with
// white to move.
func NewBoard() *Board {
	b := &Board{turn: White, checkDetection: true}
	for col, t := range backRank {
		b.Place(NewPiece(t, Black), Coordinate{Row: 0, Col: col})
		b.Place(NewPiece(Pawn, Black), Coordinate{Row: 1, Col: col})
		b.Place(NewPiece(Pawn, White), Coordinate{Row: BoardSize - 2, Col: col})
		b.Place(NewPiece(t, White), Coordinate{Row: BoardSize - 1, Col: col})
	}
	return b
}

// NewEmptyBoard returns a board with no pieces and white to move. Check
// detection starts disabled since there are no kings; enable it once both
// kings are placed.
func NewEmptyBoard() *Board {
	return &Board{turn: White}
}

func (b *Board) SetCheckDetection(on bool) {
	b.checkDetection = on
}

func (b *Board) CheckDetection() bool {
	return b.checkDetection
}

func (b *Board) Turn() Color {
	return b.turn
}

// SetTurn is for setting up positions; normal play flips the turn in ApplyMove.
func (b *Board) SetTurn(c Color) {
	b.turn = c
}

// History returns the moves applied so far, oldest first.
func (b *Board) History() []Move {
	out := make([]Move, len(b.history))
	copy(out, b.history)
	return out
}

func (b *Board) lastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1], true
}

func (b *Board) Occupant(pos Coordinate) *Piece {
	if !pos.InBounds() {
		violated("occupant", pos, ErrOutOfRange)
	}
	return b.squares[pos.Row][pos.Col]
}

// Place puts p on pos, replacing whatever was there. A nil p empties the
// square. The caller vacates the piece's previous square.
func (b *Board) Place(p *Piece, pos Coordinate) {
	if !pos.InBounds() {
		violated("place", pos, ErrOutOfRange)
	}
	b.squares[pos.Row][pos.Col] = p
	if p != nil {
		p.Position = pos
	}
}

// Pieces returns every piece of color c in row-major order.
func (b *Board) Pieces(c Color) []*Piece {
	var out []*Piece
	for row := range b.squares {
		for _, p := range b.squares[row] {
			if p != nil && p.Color == c {
				out = append(out, p)
			}
		}
	}
	return out
}

// ApplyMove plays mv, which must come from move generation on this board.
// It panics with a *PreconditionError when the start square is empty, when
// a castling rook is missing, or when an en passant capture has no victim.
func (b *Board) ApplyMove(mv Move) {
	start, end := mv.Start(), mv.End()
	p := b.Occupant(start)
	if p == nil {
		violated("apply", start, ErrEmptySquare)
	}

	var rook *Piece
	var rookFrom, rookTo Coordinate
	if mv.castle != NoCastle {
		rookFrom, rookTo = castleRookSquares(start.Row, mv.castle)
		rook = b.Occupant(rookFrom)
		if rook == nil || rook.Type != Rook || rook.Color != p.Color {
			violated("castle", rookFrom, ErrMissingRook)
		}
	}

	if mv.enPassant {
		prev, ok := b.lastMove()
		if !ok {
			violated("en passant", end, ErrNoEnPassantVictim)
		}
		b.Place(nil, prev.End())
	}

	b.Place(nil, start)
	b.Place(p, end)
	p.HasMoved = true

	if rook != nil {
		b.Place(nil, rookFrom)
		b.Place(rook, rookTo)
		rook.HasMoved = true
	}

	if p.Type == Pawn && end.Row == p.Color.promotionRow() {
		b.Place(&Piece{Type: Queen, Color: p.Color, HasMoved: true}, end)
	}

	b.history = append(b.history, mv)
	b.turn = b.turn.Opponent()
}

func castleRookSquares(row int, side CastleSide) (from, to Coordinate) {
	if side == Kingside {
		return Coordinate{Row: row, Col: BoardSize - 1}, Coordinate{Row: row, Col: kingHomeCol + 1}
	}
	return Coordinate{Row: row, Col: 0}, Coordinate{Row: row, Col: kingHomeCol - 1}
}

// Copy returns an independent board with the same position and history.
// Check detection is off on the copy: copies exist to be probed, and a probe
// must not recurse into its own self-check filtering.
func (b *Board) Copy() *Board {
	c := &Board{
		turn:    b.turn,
		history: make([]Move, len(b.history)),
	}
	copy(c.history, b.history)
	for row := range b.squares {
		for col, p := range b.squares[row] {
			if p != nil {
				cp := *p
				c.squares[row][col] = &cp
			}
		}
	}
	return c
}

func (b *Board) unmovedRook(pos Coordinate, c Color) bool {
	r := b.Occupant(pos)
	return r != nil && r.Type == Rook && r.Color == c && !r.HasMoved
}

// enPassantAllowed reports whether pawn p may capture en passant onto column
// col: the previous move was an opposing double push that ended beside p.
func (b *Board) enPassantAllowed(p *Piece, col int) bool {
	prev, ok := b.lastMove()
	if !ok || prev.doublePawn != p.Color.Opponent() {
		return false
	}
	end := prev.End()
	return end.Row == p.Position.Row && end.Col == col
}

// String renders the board one rank per line, '-' for empty squares.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.squares {
		for col, p := range b.squares[row] {
			if col > 0 {
				sb.WriteByte(' ')
			}
			if p == nil {
				sb.WriteByte('-')
			} else {
				sb.WriteString(p.String())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
