package model

type GameState struct {
	Board         Board  `json:"board"`
	CurrentPlayer Player `json:"currentPlayer"`
	MovesLeft     int    `json:"movesLeft"`
}

// InitialGameState opens with double-moves to play both of its moves.
func InitialGameState() GameState {
	return GameState{
		Board:         NewBoard(),
		CurrentPlayer: DoubleMoves,
		MovesLeft:     2,
	}
}
