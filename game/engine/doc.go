// Package engine implements the Micattix board rules.
//
// A board is a square grid of numbered tiles with a single movable cross
// marker. On each turn a player slides the marker along their assigned axis
// (rows for First/Third, columns for Second/Fourth) onto a remaining tile,
// capturing it. The vacated cell stays empty, so the board drains until only
// the marker is left and the round is over.
//
// Core types:
//
// Board owns the grid and the marker position. BoardSize picks the 4x4 or
// 6x6 tile table, Piece is the tagged cell value, and Player/GameMode carry
// the axis assignment and turn order used by the session layer.
//
// Usage:
//
//	rng := rand.New(rand.NewSource(seed))
//	board := engine.NewBoard(engine.Small, rng)
//
//	moves := board.ValidMoves(engine.First)
//	piece, err := board.MakeMove(engine.First, moves[0])
//
// Board generation is deterministic for a given rng, which is what the tests
// and the simulator rely on.
package engine
