package session

import "micattix/game/engine"

// PlayerScore records one player's captures for the current round, in order,
// together with the running total of their numeric values.
type PlayerScore struct {
	Pieces []engine.Piece `json:"pieces"`
	Total  int            `json:"total"`
}

// AddPiece appends a captured piece and folds its value into the total.
// Non-numeric pieces are recorded but do not contribute.
func (s *PlayerScore) AddPiece(piece engine.Piece) {
	if piece.Kind == engine.Number {
		s.Total += piece.Value
	}
	s.Pieces = append(s.Pieces, piece)
}
