package model

import "errors"

var (
	ErrInvalidSquare = errors.New("invalid square")
	ErrOutOfBounds   = errors.New("square out of bounds")
	ErrIllegalMove   = errors.New("illegal move")
	ErrNoPendingMove = errors.New("no pending move")
)
