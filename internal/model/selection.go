package model

import "fmt"

// Selection is the presentation state between confirmed moves: the square the
// player has picked up and the move awaiting confirmation. It is owned by the
// caller and passed in; GameState never carries it.
type Selection struct {
	Selected *Position    `json:"selected"`
	Pending  *PendingMove `json:"pending"`
}

func ownsSquare(state GameState, pos Position) bool {
	piece := state.Board.At(pos)
	return piece != nil && piece.Player == state.CurrentPlayer
}

func selectIfOwned(state GameState, pos Position) Selection {
	if ownsSquare(state, pos) {
		return Selection{Selected: &pos}
	}
	return Selection{}
}

// Click applies a tap on pos. While a move is pending confirmation the tap is
// ignored. Tapping the selected square deselects it, tapping a legal
// destination makes the move pending, and anything else starts a new selection
// (or none if pos holds no piece of the current player).
func Click(state GameState, sel Selection, pos Position) Selection {
	if sel.Pending != nil {
		return sel
	}
	if sel.Selected == nil {
		return selectIfOwned(state, pos)
	}
	from := *sel.Selected
	if from == pos {
		return Selection{}
	}
	if IsLegalMove(state.Board, from, pos, state.CurrentPlayer) {
		return Selection{Selected: &from, Pending: &PendingMove{From: from, To: pos}}
	}
	return selectIfOwned(state, pos)
}

// Drag is the touch gesture: a press on from and a release on to.
func Drag(state GameState, sel Selection, from, to Position) Selection {
	return Click(state, Click(state, sel, from), to)
}

// Confirm applies the pending move and hands the turn on.
func Confirm(state GameState, sel Selection) (GameState, Selection, Move, error) {
	if sel.Pending == nil {
		return state, sel, Move{}, ErrNoPendingMove
	}
	from, to := sel.Pending.From, sel.Pending.To
	if !IsLegalMove(state.Board, from, to, state.CurrentPlayer) {
		return state, Selection{}, Move{}, fmt.Errorf("%w: %s to %s", ErrIllegalMove, from, to)
	}
	move := newMove(state.Board, from, to)
	next := state
	next.Board = ApplyMove(state.Board, from, to)
	return AdvanceTurn(next), Selection{}, move, nil
}

// Cancel drops the selection and any pending move.
func Cancel(Selection) Selection {
	return Selection{}
}
