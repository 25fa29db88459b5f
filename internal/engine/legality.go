package engine

type GameState string

const (
	Ongoing   GameState = "ongoing"
	Checkmate GameState = "checkmate"
	Stalemate GameState = "stalemate"
)

// LegalMoves returns the moves p may play on this board. When check
// detection is disabled the result is only pseudo-legal.
func (b *Board) LegalMoves(p *Piece) []Move {
	candidates := b.pseudoLegalMoves(p)
	if !b.checkDetection {
		return candidates
	}
	legal := candidates[:0:0]
	for _, mv := range candidates {
		if b.safeForMover(p.Color, mv) {
			legal = append(legal, mv)
		}
	}
	return legal
}

// LegalMovesFrom is LegalMoves for the occupant of pos, or nil if it is empty.
func (b *Board) LegalMovesFrom(pos Coordinate) []Move {
	p := b.Occupant(pos)
	if p == nil {
		return nil
	}
	return b.LegalMoves(p)
}

func (b *Board) pseudoLegalMoves(p *Piece) []Move {
	var out []Move
	for _, mv := range p.shapeMoves(b) {
		if b.unobstructed(p, mv) {
			out = append(out, mv)
		}
	}
	return out
}

// unobstructed applies the geometric part of the filter: the end square is
// on the board, every square strictly between start and end is empty, and
// the end square's occupant fits the move's capture rule.
func (b *Board) unobstructed(p *Piece, mv Move) bool {
	end := mv.End()
	if !end.InBounds() {
		return false
	}
	for _, sq := range mv.path[1 : len(mv.path)-1] {
		if b.Occupant(sq) != nil {
			return false
		}
	}
	target := b.Occupant(end)
	switch mv.capture {
	case captureForbidden:
		return target == nil
	case captureRequired:
		if target == nil {
			return mv.enPassant
		}
	}
	return target == nil || target.Color != p.Color
}

// safeForMover simulates mv on a copy and asks whether the mover's king is
// attacked afterwards. Castling additionally may not start from check or
// cross an attacked square.
func (b *Board) safeForMover(c Color, mv Move) bool {
	if mv.castle != NoCastle {
		if b.IsInCheck(c) {
			return false
		}
		if b.leavesInCheck(c, mv.firstStep()) {
			return false
		}
	}
	return !b.leavesInCheck(c, mv)
}

func (b *Board) leavesInCheck(c Color, mv Move) bool {
	sim := b.Copy()
	sim.ApplyMove(mv)
	return sim.IsInCheck(c)
}

// IsInCheck reports whether any pseudo-legal move of the opponent ends on
// c's king. It panics with ErrNoKing if c has no king.
func (b *Board) IsInCheck(c Color) bool {
	king := b.king(c)
	for _, p := range b.Pieces(c.Opponent()) {
		for _, mv := range b.pseudoLegalMoves(p) {
			if mv.End() == king {
				return true
			}
		}
	}
	return false
}

func (b *Board) king(c Color) Coordinate {
	for _, p := range b.Pieces(c) {
		if p.Type == King {
			return p.Position
		}
	}
	violated("king of "+string(c), Coordinate{Row: -1, Col: -1}, ErrNoKing)
	return Coordinate{}
}

// IsGameOver reports whether the side to move has no legal move.
func (b *Board) IsGameOver() bool {
	for _, p := range b.Pieces(b.turn) {
		if len(b.LegalMoves(p)) > 0 {
			return false
		}
	}
	return true
}

// State classifies the position for the side to move.
func (b *Board) State() GameState {
	if !b.IsGameOver() {
		return Ongoing
	}
	if b.IsInCheck(b.turn) {
		return Checkmate
	}
	return Stalemate
}
