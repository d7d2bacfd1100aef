package manager

import "micattix/game/engine"

// EventType labels the game events published to listeners.
type EventType string

const (
	EventGameStarted  EventType = "game_started"
	EventRoundStarted EventType = "round_started"
	EventMoveMade     EventType = "move_made"
	EventInvalidMove  EventType = "invalid_move"
	EventRoundEnded   EventType = "round_ended"
	EventGameEnded    EventType = "game_ended"
)

// Event is an immutable record of one state transition. It is produced once,
// delivered synchronously to every listener, then discarded; the engine keeps
// no event history.
//
// Which fields are set depends on Type: Round for round_started; Player,
// Target and Piece for move_made; Player, Target and Reason for invalid_move;
// Winner and Scores for round_ended (round totals) and game_ended (cumulative
// totals). Player and Winner are pointers so that the first seat, the zero
// value, still serializes when set. A nil Winner means a draw.
type Event struct {
	Type   EventType      `json:"type"`
	Round  int            `json:"round,omitempty"`
	Player *engine.Player `json:"player,omitempty"`
	Target engine.Coord   `json:"target,omitempty"`
	Piece  engine.Piece   `json:"piece,omitempty"`
	Reason string         `json:"reason,omitempty"`
	Winner *engine.Player `json:"winner,omitempty"`
	Scores map[string]int `json:"scores,omitempty"`
}

// EventListener receives every game event, in emission order.
type EventListener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a plain function to the EventListener interface.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }
