package service

import (
	"context"

	"micattix/game/engine"
)

// GameService defines the operations the transports (REST, MCP, WebSocket
// hub wiring) need: session lifecycle plus the four externally callable game
// operations and their read models.
type GameService interface {
	// Session management
	CreateSession(ctx context.Context, opts CreateOptions) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game operations
	Move(ctx context.Context, sessionID string, target engine.Coord) (*MoveResult, error)
	NextRound(ctx context.Context, sessionID string) (*RoundResult, error)
	EndGame(ctx context.Context, sessionID string) (*GameSummary, error)

	// Read models
	GetState(ctx context.Context, sessionID string) (*StateSnapshot, error)
	ValidMoves(ctx context.Context, sessionID string) ([]engine.Coord, error)
}
