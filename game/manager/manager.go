package manager

import (
	"golang.org/x/exp/rand"

	"micattix/game/engine"
	"micattix/game/session"
)

// Manager wraps a session with event notification. It exposes the externally
// callable game operations and turns every internal outcome into an event
// published to all registered listeners before the operation returns.
//
// Notification is synchronous and runs in registration order; listeners must
// not call back into the manager's mutating operations from OnEvent.
type Manager struct {
	session   *session.Session
	listeners []EventListener
}

// New creates a manager over a fresh session.
func New(size engine.BoardSize, mode engine.GameMode, rng *rand.Rand) *Manager {
	return &Manager{session: session.New(size, mode, rng)}
}

// NewWithBoard creates a manager over a pre-built board, for scripted
// scenarios.
func NewWithBoard(board *engine.Board, mode engine.GameMode) *Manager {
	return &Manager{session: session.NewWithBoard(board, mode)}
}

// Session exposes the underlying session for read access by presentation
// layers.
func (m *Manager) Session() *session.Session { return m.session }

// AddListener registers a listener for the manager's lifetime. There is no
// way to remove one.
func (m *Manager) AddListener(l EventListener) {
	m.listeners = append(m.listeners, l)
}

func (m *Manager) notify(e Event) {
	for _, l := range m.listeners {
		l.OnEvent(e)
	}
}

// StartGame announces the game and its first round, in that order.
func (m *Manager) StartGame() {
	m.notify(Event{Type: EventGameStarted})
	m.notify(Event{Type: EventRoundStarted, Round: m.session.Round()})
}

// MakeMove plays the current player's move. A successful move emits
// move_made, followed by round_ended when it cleared the last tile. A
// rejected move emits invalid_move and changes nothing. Exactly one of the
// two outcomes is published per call.
func (m *Manager) MakeMove(target engine.Coord) {
	player := m.session.CurrentPlayer()
	captured := m.session.Board().GetPiece(target.Row, target.Col)

	if err := m.session.ProcessMove(target); err != nil {
		m.notify(Event{
			Type:   EventInvalidMove,
			Player: &player,
			Target: target,
			Reason: err.Error(),
		})
		return
	}

	m.notify(Event{
		Type:   EventMoveMade,
		Player: &player,
		Target: target,
		Piece:  captured,
	})

	if m.session.IsRoundOver() {
		e := Event{
			Type:   EventRoundEnded,
			Round:  m.session.Round(),
			Scores: scoresByName(m.session.RoundTotals()),
		}
		if winner, ok := m.session.RoundWinner(); ok {
			e.Winner = &winner
		}
		m.notify(e)
	}
}

// StartNextRound advances the session to a new round and announces it.
func (m *Manager) StartNextRound() {
	m.session.StartNextRound()
	m.notify(Event{Type: EventRoundStarted, Round: m.session.Round()})
}

// EndGame reports the overall standing. It only reads session state, so
// calling it mid-round is legal and simply reflects the totals accumulated
// so far.
func (m *Manager) EndGame() {
	e := Event{
		Type:   EventGameEnded,
		Scores: scoresByName(m.session.CumulativeTotals()),
	}
	if winner, ok := m.session.OverallWinner(); ok {
		e.Winner = &winner
	}
	m.notify(e)
}

func scoresByName(totals map[engine.Player]int) map[string]int {
	scores := make(map[string]int, len(totals))
	for p, total := range totals {
		scores[p.String()] = total
	}
	return scores
}
