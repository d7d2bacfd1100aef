package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"micattix/game/engine"
	"micattix/game/manager"
)

// ErrSessionNotFound is returned for operations on unknown session IDs.
var ErrSessionNotFound = errors.New("session not found")

// gameSession is one registry entry. The pending slice is filled by the
// manager listener registered at creation and drained by the operation that
// triggered the events; listeners cannot be removed, so this buffer is how
// the synchronous event stream reaches per-call results.
type gameSession struct {
	id             string
	mgr            *manager.Manager
	size           engine.BoardSize
	mode           engine.GameMode
	createdAt      time.Time
	lastAccessedAt time.Time
	pending        []manager.Event
}

func (s *gameSession) drainEvents() []manager.Event {
	events := s.pending
	s.pending = nil
	return events
}

// gameServiceImpl implements GameService over an in-memory session registry.
type gameServiceImpl struct {
	sessions map[string]*gameSession
	mu       sync.RWMutex
}

// NewGameService creates an empty game service.
func NewGameService() GameService {
	return &gameServiceImpl{
		sessions: make(map[string]*gameSession),
	}
}

// CreateSession builds a manager for the requested size and mode, registers
// an event-buffering listener and starts the game. Unrecognized size or mode
// strings fall back to the small board and two players with a warning.
func (s *gameServiceImpl) CreateSession(ctx context.Context, opts CreateOptions) (*SessionInfo, error) {
	size, ok := engine.ParseBoardSize(opts.Size)
	if !ok && opts.Size != "" {
		log.Warn().Str("size", opts.Size).Msg("unrecognized board size, using small board")
	}
	mode, ok := engine.ParseGameMode(opts.Mode)
	if !ok && opts.Mode != "" {
		log.Warn().Str("mode", opts.Mode).Msg("unrecognized game mode, using two players")
	}

	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	entry := &gameSession{
		id:             uuid.NewString(),
		mgr:            manager.New(size, mode, rng),
		size:           size,
		mode:           mode,
		createdAt:      time.Now(),
		lastAccessedAt: time.Now(),
	}
	entry.mgr.AddListener(manager.ListenerFunc(func(e manager.Event) {
		entry.pending = append(entry.pending, e)
	}))

	s.mu.Lock()
	s.sessions[entry.id] = entry
	entry.mgr.StartGame()
	entry.drainEvents()
	info := s.info(entry)
	s.mu.Unlock()

	log.Info().
		Str("session", entry.id).
		Stringer("size", size).
		Stringer("mode", mode).
		Msg("session created")

	return info, nil
}

func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return s.info(entry), nil
}

func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]*SessionInfo, 0, len(s.sessions))
	for _, entry := range s.sessions {
		infos = append(infos, s.info(entry))
	}
	return infos, nil
}

func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sessionID]; !exists {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	log.Info().Str("session", sessionID).Msg("session deleted")
	return nil
}

// Move plays a move for the session's current player. The returned result
// carries the events the move produced; Success reflects whether the move
// was accepted.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, target engine.Coord) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	entry.lastAccessedAt = time.Now()

	entry.mgr.MakeMove(target)
	events := entry.drainEvents()

	success := false
	for _, e := range events {
		if e.Type == manager.EventMoveMade {
			success = true
		}
	}

	return &MoveResult{
		Success: success,
		Events:  events,
		State:   s.snapshot(entry),
	}, nil
}

func (s *gameServiceImpl) NextRound(ctx context.Context, sessionID string) (*RoundResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	entry.lastAccessedAt = time.Now()

	entry.mgr.StartNextRound()
	events := entry.drainEvents()

	return &RoundResult{
		Round:  entry.mgr.Session().Round(),
		Events: events,
		State:  s.snapshot(entry),
	}, nil
}

// EndGame reports the overall standing without mutating the session; the
// caller decides whether to delete the session afterwards.
func (s *gameServiceImpl) EndGame(ctx context.Context, sessionID string) (*GameSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	entry.lastAccessedAt = time.Now()

	entry.mgr.EndGame()
	events := entry.drainEvents()

	summary := &GameSummary{
		Totals: namedTotals(entry.mgr.Session().CumulativeTotals()),
		Events: events,
	}
	if winner, ok := entry.mgr.Session().OverallWinner(); ok {
		summary.Winner = &winner
	} else {
		summary.Draw = true
	}
	return summary, nil
}

func (s *gameServiceImpl) GetState(ctx context.Context, sessionID string) (*StateSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return s.snapshot(entry), nil
}

func (s *gameServiceImpl) ValidMoves(ctx context.Context, sessionID string) ([]engine.Coord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	sess := entry.mgr.Session()
	return sess.Board().ValidMoves(sess.CurrentPlayer()), nil
}

func (s *gameServiceImpl) info(entry *gameSession) *SessionInfo {
	return &SessionInfo{
		ID:             entry.id,
		Size:           entry.size.String(),
		Mode:           entry.mode.String(),
		CreatedAt:      entry.createdAt,
		LastAccessedAt: entry.lastAccessedAt,
		State:          s.snapshot(entry),
	}
}

// snapshot builds the full read model for one session.
func (s *gameServiceImpl) snapshot(entry *gameSession) *StateSnapshot {
	sess := entry.mgr.Session()
	board := sess.Board()
	rows, cols := board.Size().Dimensions()

	grid := make([][]engine.Piece, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]engine.Piece, cols)
		for c := 0; c < cols; c++ {
			grid[r][c] = board.GetPiece(r, c)
		}
	}

	return &StateSnapshot{
		Grid:          grid,
		Cross:         board.CrossPosition(),
		Round:         sess.Round(),
		CurrentPlayer: sess.CurrentPlayer(),
		Players:       sess.Players(),
		RoundOver:     sess.IsRoundOver(),
		RoundScores:   namedTotals(sess.RoundTotals()),
		Totals:        namedTotals(sess.CumulativeTotals()),
	}
}

func namedTotals(totals map[engine.Player]int) map[string]int {
	named := make(map[string]int, len(totals))
	for p, total := range totals {
		named[p.String()] = total
	}
	return named
}
