package model

type Player string

const (
	DoubleMoves  Player = "double-moves"
	DoublePieces Player = "double-pieces"
)

func (p Player) Opponent() Player {
	if p == DoubleMoves {
		return DoublePieces
	}
	return DoubleMoves
}

// DisplayName is the label shown to players in the client.
func (p Player) DisplayName() string {
	switch p {
	case DoubleMoves:
		return "Double Moves"
	case DoublePieces:
		return "Double Pieces"
	}
	return ""
}

// pawnDirection is the row delta of a single pawn advance.
func (p Player) pawnDirection() int {
	if p == DoubleMoves {
		return 1
	}
	return -1
}
