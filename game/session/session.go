package session

import (
	"fmt"

	"golang.org/x/exp/rand"

	"micattix/game/engine"
)

// Session owns all mutable state for one game: the current board, per-player
// round scores, cumulative totals across rounds, turn order and the round
// counter. Nothing outside the session mutates that state.
type Session struct {
	board   *engine.Board
	size    engine.BoardSize
	mode    engine.GameMode
	players []engine.Player
	current engine.Player
	scores  map[engine.Player]*PlayerScore
	totals  map[engine.Player]int
	round   int
	rng     *rand.Rand
}

// New starts a session with a freshly generated board. rng drives board
// generation for this round and every subsequent one; nil means time-seeded.
func New(size engine.BoardSize, mode engine.GameMode, rng *rand.Rand) *Session {
	return newSession(engine.NewBoard(size, rng), mode, rng)
}

// NewWithBoard starts a session over a pre-built board, used by scripted
// scenarios and tests. Later rounds regenerate boards of the same size.
func NewWithBoard(board *engine.Board, mode engine.GameMode) *Session {
	return newSession(board, mode, nil)
}

func newSession(board *engine.Board, mode engine.GameMode, rng *rand.Rand) *Session {
	players := mode.Players()
	scores := make(map[engine.Player]*PlayerScore, len(players))
	totals := make(map[engine.Player]int, len(players))
	for _, p := range players {
		scores[p] = &PlayerScore{}
		totals[p] = 0
	}

	return &Session{
		board:   board,
		size:    board.Size(),
		mode:    mode,
		players: players,
		current: engine.First,
		scores:  scores,
		totals:  totals,
		round:   1,
		rng:     rng,
	}
}

// Board exposes the current round's board.
func (s *Session) Board() *engine.Board { return s.board }

// Mode returns the session's game mode.
func (s *Session) Mode() engine.GameMode { return s.mode }

// Players returns the active players in turn order.
func (s *Session) Players() []engine.Player { return s.players }

// CurrentPlayer returns the player whose turn it is.
func (s *Session) CurrentPlayer() engine.Player { return s.current }

// Round returns the 1-based round counter.
func (s *Session) Round() int { return s.round }

// Score returns the given player's record for the current round.
func (s *Session) Score(p engine.Player) *PlayerScore { return s.scores[p] }

// RoundTotals returns a copy of every active player's round total.
func (s *Session) RoundTotals() map[engine.Player]int {
	totals := make(map[engine.Player]int, len(s.players))
	for _, p := range s.players {
		totals[p] = s.scores[p].Total
	}
	return totals
}

// CumulativeTotals returns a copy of every active player's total across
// completed rounds. The running round is not included until StartNextRound
// folds it in.
func (s *Session) CumulativeTotals() map[engine.Player]int {
	totals := make(map[engine.Player]int, len(s.players))
	for _, p := range s.players {
		totals[p] = s.totals[p]
	}
	return totals
}

// ProcessMove executes the current player's move. On success the captured
// piece is credited to their round score and the turn passes to the next
// active player. On failure the board error is returned unchanged and the
// turn does not advance.
func (s *Session) ProcessMove(target engine.Coord) error {
	piece, err := s.board.MakeMove(s.current, target)
	if err != nil {
		return err
	}

	if piece.Kind == engine.Number {
		s.scores[s.current].AddPiece(piece)
	}
	s.current = engine.NextPlayer(s.players, s.current)
	return nil
}

// IsRoundOver reports whether the board has been cleared of numbered tiles.
func (s *Session) IsRoundOver() bool {
	return s.board.IsGameOver()
}

// RoundWinner returns the player with the strictly highest round total once
// the round is over. The second value is false while the round is still
// running or when two or more players tie at the maximum.
func (s *Session) RoundWinner() (engine.Player, bool) {
	if !s.IsRoundOver() {
		return engine.First, false
	}
	return leader(s.players, s.RoundTotals())
}

// OverallWinner applies the same strict-maximum rule to cumulative totals.
func (s *Session) OverallWinner() (engine.Player, bool) {
	return leader(s.players, s.CumulativeTotals())
}

// leader finds the strictly highest total among the given players. A tie at
// the maximum means no winner.
func leader(players []engine.Player, totals map[engine.Player]int) (engine.Player, bool) {
	var winner engine.Player
	best := 0
	tie := false
	for i, p := range players {
		total := totals[p]
		if i == 0 || total > best {
			best = total
			winner = p
			tie = false
		} else if total == best {
			tie = true
		}
	}
	if tie {
		return engine.First, false
	}
	return winner, true
}

// StartNextRound folds the finished round's scores into the cumulative
// totals, generates a fresh board of the same size, clears the round scores
// and advances the round counter. The starting player rotates with the round
// number: round N is opened by players[(N-1) mod len(players)].
func (s *Session) StartNextRound() {
	for _, p := range s.players {
		s.totals[p] += s.scores[p].Total
		s.scores[p] = &PlayerScore{}
	}

	s.board = engine.NewBoard(s.size, s.rng)
	s.round++
	s.current = s.players[(s.round-1)%len(s.players)]
}

// PlayerName returns the presentation label for a player, including their
// movement axis.
func (s *Session) PlayerName(p engine.Player) string {
	return fmt.Sprintf("Player %d (%s)", int(p)+1, p.Axis())
}
