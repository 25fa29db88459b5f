package engine

// Selection drives the two-click move protocol: the first click highlights a
// piece's legal moves, the second either plays the move ending on the
// clicked square or clears the highlight.
type Selection struct {
	board       *Board
	highlighted []Move
}

func NewSelection(b *Board) *Selection {
	return &Selection{board: b}
}

func (s *Selection) Board() *Board {
	return s.board
}

// Highlighted returns the moves currently on offer.
func (s *Selection) Highlighted() []Move {
	out := make([]Move, len(s.highlighted))
	copy(out, s.highlighted)
	return out
}

// Select highlights the legal moves of the piece on pos if nothing is
// highlighted yet and the piece belongs to the side to move. It reports
// whether any moves are now highlighted.
func (s *Selection) Select(pos Coordinate) bool {
	if len(s.highlighted) > 0 || !pos.InBounds() {
		return false
	}
	p := s.board.Occupant(pos)
	if p == nil || p.Color != s.board.Turn() {
		return false
	}
	s.highlighted = s.board.LegalMoves(p)
	return len(s.highlighted) > 0
}

// Resolve plays the highlighted move ending on pos, if there is one. The
// highlight is cleared either way.
func (s *Selection) Resolve(pos Coordinate) (Move, bool) {
	if len(s.highlighted) == 0 {
		return Move{}, false
	}
	candidates := s.highlighted
	s.highlighted = nil
	for _, mv := range candidates {
		if mv.End() == pos {
			s.board.ApplyMove(mv)
			return mv, true
		}
	}
	return Move{}, false
}

// Click routes a square click to Select or Resolve. It returns the move
// played, if any.
func (s *Selection) Click(pos Coordinate) (Move, bool) {
	if len(s.highlighted) == 0 {
		s.Select(pos)
		return Move{}, false
	}
	return s.Resolve(pos)
}
