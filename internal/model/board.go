package model

import (
	"fmt"
	"strings"
)

const BoardSize = 8

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) symbol() string {
	switch p {
	case King:
		return "♚"
	case Queen:
		return "♛"
	case Rook:
		return "♜"
	case Bishop:
		return "♝"
	case Knight:
		return "♞"
	case Pawn:
		return "♟"
	}
	return ""
}

// backRow is shared by the double-moves back row and both double-pieces rows.
var backRow = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Piece is a value; a moved piece is replaced by a copy with HasMoved set.
type Piece struct {
	Type     PieceType `json:"type"`
	Player   Player    `json:"player"`
	HasMoved bool      `json:"hasMoved"`
}

func (p Piece) Symbol() string {
	return p.Type.symbol()
}

func (p Piece) moved() *Piece {
	p.HasMoved = true
	return &p
}

// Position addresses a cell; row 0 is the top of the board (rank 8).
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

func (p Position) Notation() string {
	return fmt.Sprintf("%c%d", p.Col+'a', BoardSize-p.Row)
}

func (p Position) String() string {
	return p.Notation()
}

// ParseSquare converts algebraic notation such as "e2" into a Position.
func ParseSquare(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Position{Row: BoardSize - int(rank-'0'), Col: int(file - 'a')}, nil
}

// Board is copied by value; the pieces it points to are never mutated.
type Board [BoardSize][BoardSize]*Piece

// NewBoard returns the Scale Chess starting layout: double-moves on rows 0-1
// with a normal back row and pawns, double-pieces on rows 6-7 with two back rows.
func NewBoard() Board {
	var board Board
	for col := 0; col < BoardSize; col++ {
		board[0][col] = &Piece{Type: backRow[col], Player: DoubleMoves}
		board[1][col] = &Piece{Type: Pawn, Player: DoubleMoves}
		board[6][col] = &Piece{Type: backRow[col], Player: DoublePieces}
		board[7][col] = &Piece{Type: backRow[col], Player: DoublePieces}
	}
	return board
}

func (b Board) At(pos Position) *Piece {
	return b[pos.Row][pos.Col]
}

func (b Board) isEmpty(pos Position) bool {
	return b.At(pos) == nil
}

// Count returns the number of occupied cells.
func (b Board) Count() int {
	n := 0
	for row := range b {
		for col := range b[row] {
			if b[row][col] != nil {
				n++
			}
		}
	}
	return n
}

// String renders the board top row first, upper case for double-pieces.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			sb.WriteByte(b[row][col].letter())
		}
		if row < BoardSize-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (p *Piece) letter() byte {
	if p == nil {
		return '.'
	}
	var c byte
	switch p.Type {
	case King:
		c = 'k'
	case Queen:
		c = 'q'
	case Rook:
		c = 'r'
	case Bishop:
		c = 'b'
	case Knight:
		c = 'n'
	case Pawn:
		c = 'p'
	default:
		return '?'
	}
	if p.Player == DoublePieces {
		c -= 'a' - 'A'
	}
	return c
}
