// Command simulate plays the game against itself. Each simulated game picks
// uniformly random captures until the round ends, for a configurable number
// of games and rounds, then reports how often each seat wins. Useful for
// spotting first-move advantage and checking the engine never deadlocks.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"micattix/game/engine"
	"micattix/game/session"
)

var (
	games  = flag.Int("games", 1000, "number of games to simulate")
	rounds = flag.Int("rounds", 1, "rounds per game")
	size   = flag.String("size", "small", "board size: small or large")
	mode   = flag.String("mode", "two", "player count: two or four")
	seed   = flag.Uint64("seed", 1, "base seed; game i uses seed+i")
)

// result aggregates outcomes across simulated games.
type result struct {
	wins   map[engine.Player]int
	draws  int
	points map[engine.Player]int
	moves  int
}

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	boardSize, ok := engine.ParseBoardSize(*size)
	if !ok {
		log.Warn().Str("size", *size).Msg("unrecognized board size, using small board")
	}
	gameMode, ok := engine.ParseGameMode(*mode)
	if !ok {
		log.Warn().Str("mode", *mode).Msg("unrecognized game mode, using two players")
	}

	log.Info().
		Int("games", *games).
		Int("rounds", *rounds).
		Stringer("size", boardSize).
		Stringer("mode", gameMode).
		Msg("starting simulation")

	res := result{
		wins:   make(map[engine.Player]int),
		points: make(map[engine.Player]int),
	}

	for i := 0; i < *games; i++ {
		simulateGame(boardSize, gameMode, *seed+uint64(i), *rounds, &res)
	}

	report(gameMode, &res)
}

// simulateGame plays one full game with a uniformly random policy.
func simulateGame(size engine.BoardSize, mode engine.GameMode, seed uint64, rounds int, res *result) {
	rng := rand.New(rand.NewSource(seed))
	sess := session.New(size, mode, rng)

	for round := 0; round < rounds; round++ {
		if round > 0 {
			sess.StartNextRound()
		}

		for {
			moves := sess.Board().ValidMoves(sess.CurrentPlayer())
			if len(moves) == 0 {
				break
			}

			target := moves[rng.Intn(len(moves))]
			if err := sess.ProcessMove(target); err != nil {
				// A listed move must never be rejected
				log.Fatal().Err(err).Msg("engine rejected a valid move")
			}
			res.moves++
		}
	}

	// Cumulative totals only cover folded rounds, so add the final round in.
	totals := sess.CumulativeTotals()
	for player, total := range sess.RoundTotals() {
		totals[player] += total
	}
	for player, total := range totals {
		res.points[player] += total
	}

	if winner, ok := strictLeader(sess.Players(), totals); ok {
		res.wins[winner]++
	} else {
		res.draws++
	}
}

// strictLeader returns the player with the strictly highest total; a tie at
// the maximum means no winner.
func strictLeader(players []engine.Player, totals map[engine.Player]int) (engine.Player, bool) {
	var winner engine.Player
	best := 0
	tie := false
	for i, p := range players {
		if i == 0 || totals[p] > best {
			best = totals[p]
			winner = p
			tie = false
		} else if totals[p] == best {
			tie = true
		}
	}
	if tie {
		return engine.First, false
	}
	return winner, true
}

func report(mode engine.GameMode, res *result) {
	fmt.Printf("Simulated %d games (%d moves total)\n\n", *games, res.moves)

	for _, player := range mode.Players() {
		fmt.Printf("%-6s  wins: %5d (%5.1f%%)  avg points: %6.2f\n",
			player,
			res.wins[player],
			percent(res.wins[player], *games),
			float64(res.points[player])/float64(*games))
	}
	fmt.Printf("draws   %5d (%5.1f%%)\n", res.draws, percent(res.draws, *games))
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
