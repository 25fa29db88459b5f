package engine

import (
	"errors"
	"fmt"
)

// Misuse of the engine is reported by panicking with a *PreconditionError
// wrapping one of these. Moves handed out by LegalMoves never trigger them.
var (
	ErrOutOfRange        = errors.New("coordinate out of range")
	ErrEmptySquare       = errors.New("no piece on start square")
	ErrMissingRook       = errors.New("castling rook not in its corner")
	ErrNoEnPassantVictim = errors.New("no double pawn push to capture en passant")
	ErrNoKing            = errors.New("no king on board")
)

type PreconditionError struct {
	Err error
	Op  string
	At  Coordinate
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.At, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

func violated(op string, at Coordinate, err error) {
	panic(&PreconditionError{Err: err, Op: op, At: at})
}
