package model

// IsLegalMove reports whether currentPlayer may move the piece on from to to.
// Both positions must be on the board. Only the shape of the move is checked:
// sliding pieces are never blocked and any occupant of the destination may be
// landed on, except that pawns only ever advance onto empty squares.
func IsLegalMove(board Board, from, to Position, currentPlayer Player) bool {
	piece := board.At(from)
	if piece == nil || piece.Player != currentPlayer {
		return false
	}

	dRow := to.Row - from.Row
	dCol := to.Col - from.Col
	switch piece.Type {
	case Pawn:
		return isLegalPawnMove(board, piece, from, to)
	case Rook:
		return dRow == 0 || dCol == 0
	case Knight:
		return (abs(dRow) == 2 && abs(dCol) == 1) || (abs(dRow) == 1 && abs(dCol) == 2)
	case Bishop:
		return abs(dRow) == abs(dCol)
	case Queen:
		return dRow == 0 || dCol == 0 || abs(dRow) == abs(dCol)
	case King:
		return abs(dRow) <= 1 && abs(dCol) <= 1
	default:
		return false
	}
}

func isLegalPawnMove(board Board, piece *Piece, from, to Position) bool {
	if to.Col != from.Col {
		return false
	}
	dir := piece.Player.pawnDirection()
	switch (to.Row - from.Row) * dir {
	case 1:
		return board.isEmpty(to)
	case 2:
		between := Position{Row: from.Row + dir, Col: from.Col}
		return !piece.HasMoved && board.isEmpty(between) && board.isEmpty(to)
	default:
		return false
	}
}

// LegalMoves lists every destination IsLegalMove accepts for the piece on
// from, in row-major order. from itself is never included.
func LegalMoves(board Board, from Position, currentPlayer Player) []Position {
	moves := []Position{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			to := Position{Row: row, Col: col}
			if to == from {
				continue
			}
			if IsLegalMove(board, from, to, currentPlayer) {
				moves = append(moves, to)
			}
		}
	}
	return moves
}

// ApplyMove returns a copy of board with the piece on from relocated to to and
// marked as moved. Whatever stood on to is dropped. Legality is not checked.
func ApplyMove(board Board, from, to Position) Board {
	next := board
	piece := next.At(from)
	if piece != nil {
		piece = piece.moved()
	}
	next[to.Row][to.Col] = piece
	next[from.Row][from.Col] = nil
	return next
}

// AdvanceTurn consumes one move of the current turn. double-moves plays twice
// before the turn passes; double-pieces always plays once.
func AdvanceTurn(state GameState) GameState {
	next := state
	switch {
	case state.CurrentPlayer == DoublePieces:
		next.CurrentPlayer = DoubleMoves
		next.MovesLeft = 2
	case state.MovesLeft <= 1:
		next.CurrentPlayer = DoublePieces
		next.MovesLeft = 1
	default:
		next.MovesLeft = state.MovesLeft - 1
	}
	return next
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
