package engine

import (
	"sort"
	"testing"
)

var letterTypes = map[byte]PieceType{
	'k': King, 'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight, 'p': Pawn,
}

// parseBoard builds a position from eight rows of eight characters, row 0
// first. '.' is empty, upper case is white. Pawns off their starting rank
// count as moved; everything else is unmoved. Check detection is on.
func parseBoard(t *testing.T, turn Color, rows ...string) *Board {
	t.Helper()
	if len(rows) != BoardSize {
		t.Fatalf("parseBoard: got %d rows", len(rows))
	}
	b := NewEmptyBoard()
	for row, line := range rows {
		if len(line) != BoardSize {
			t.Fatalf("parseBoard: row %d has %d columns", row, len(line))
		}
		for col := 0; col < BoardSize; col++ {
			ch := line[col]
			if ch == '.' {
				continue
			}
			color := Black
			if ch >= 'A' && ch <= 'Z' {
				color = White
				ch += 'a' - 'A'
			}
			typ, ok := letterTypes[ch]
			if !ok {
				t.Fatalf("parseBoard: unknown piece %q", line[col])
			}
			p := NewPiece(typ, color)
			if typ == Pawn {
				p.HasMoved = (color == White && row != 6) || (color == Black && row != 1)
			}
			b.Place(p, Coordinate{Row: row, Col: col})
		}
	}
	b.SetTurn(turn)
	b.SetCheckDetection(true)
	return b
}

func at(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// ends returns the sorted end squares of moves.
func ends(moves []Move) []Coordinate {
	out := make([]Coordinate, 0, len(moves))
	for _, mv := range moves {
		out = append(out, mv.End())
	}
	sortCoords(out)
	return out
}

func sortCoords(cs []Coordinate) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Row != cs[j].Row {
			return cs[i].Row < cs[j].Row
		}
		return cs[i].Col < cs[j].Col
	})
}

func findMove(moves []Move, to Coordinate) (Move, bool) {
	for _, mv := range moves {
		if mv.End() == to {
			return mv, true
		}
	}
	return Move{}, false
}

// play applies the legal move from -> to, failing the test if there is none.
func play(t *testing.T, b *Board, from, to Coordinate) Move {
	t.Helper()
	mv, ok := findMove(b.LegalMovesFrom(from), to)
	if !ok {
		t.Fatalf("no legal move %s to %s on\n%s", from, to, b)
	}
	b.ApplyMove(mv)
	return mv
}
