package model

import "fmt"

// Move is a confirmed relocation as reported to clients.
type Move struct {
	Piece    Piece    `json:"piece"`
	From     Position `json:"from"`
	To       Position `json:"to"`
	Notation string   `json:"notation"`
}

func newMove(board Board, from, to Position) Move {
	move := Move{From: from, To: to}
	if piece := board.At(from); piece != nil {
		move.Piece = *piece
	}
	move.Notation = fmt.Sprintf("%s%s-%s", move.Piece.Symbol(), from.Notation(), to.Notation())
	return move
}

// PendingMove is a legal move waiting for the player to confirm it.
type PendingMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m PendingMove) Prompt() string {
	return fmt.Sprintf("Move from %s to %s?", m.From.Notation(), m.To.Notation())
}
