package service

import (
	"time"

	"micattix/game/engine"
	"micattix/game/manager"
)

// CreateOptions selects how a new session is set up. Size and Mode take the
// values accepted by engine.ParseBoardSize / engine.ParseGameMode;
// unrecognized values fall back to a small board and two players, with a
// warning, matching the console front-end's behavior. A zero Seed means a
// time-seeded board shuffle.
type CreateOptions struct {
	Size string `json:"size,omitempty"`
	Mode string `json:"mode,omitempty"`
	Seed uint64 `json:"seed,omitempty"`
}

// SessionInfo describes one active session.
type SessionInfo struct {
	ID             string         `json:"id"`
	Size           string         `json:"size"`
	Mode           string         `json:"mode"`
	CreatedAt      time.Time      `json:"created_at"`
	LastAccessedAt time.Time      `json:"last_accessed_at"`
	State          *StateSnapshot `json:"state"`
}

// StateSnapshot is the full read model a presentation layer needs to render
// a session: grid contents, marker position, turn and score state.
type StateSnapshot struct {
	Grid          [][]engine.Piece `json:"grid"`
	Cross         engine.Coord     `json:"cross"`
	Round         int              `json:"round"`
	CurrentPlayer engine.Player    `json:"current_player"`
	Players       []engine.Player  `json:"players"`
	RoundOver     bool             `json:"round_over"`
	RoundScores   map[string]int   `json:"round_scores"`
	Totals        map[string]int   `json:"totals"`
}

// MoveResult reports a move attempt: the events it produced (exactly one of
// move_made or invalid_move, plus round_ended when the move finished the
// round) and the state afterwards.
type MoveResult struct {
	Success bool            `json:"success"`
	Events  []manager.Event `json:"events"`
	State   *StateSnapshot  `json:"state"`
}

// GameSummary is the overall standing reported when a game is ended.
type GameSummary struct {
	Winner *engine.Player  `json:"winner,omitempty"`
	Draw   bool            `json:"draw"`
	Totals map[string]int  `json:"totals"`
	Events []manager.Event `json:"events"`
}

// RoundResult reports the state after advancing to a new round.
type RoundResult struct {
	Round  int             `json:"round"`
	Events []manager.Event `json:"events"`
	State  *StateSnapshot  `json:"state"`
}
