// Command micattix plays the game in the terminal: two or four players share
// the keyboard, entering captures as "row,col" until they quit or run out of
// moves.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/exp/rand"

	"micattix/game/engine"
	"micattix/game/manager"
)

func main() {
	cmd := &cli.Command{
		Name:  "micattix",
		Usage: "play Micattix in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "size",
				Value: "small",
				Usage: "board size: small (4x4) or large (6x6)",
			},
			&cli.StringFlag{
				Name:  "mode",
				Value: "two",
				Usage: "player count: two or four",
			},
			&cli.UintFlag{
				Name:  "seed",
				Usage: "shuffle seed for a reproducible board",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			size, ok := engine.ParseBoardSize(cmd.String("size"))
			if !ok {
				fmt.Println("Invalid size, using 4x4 board")
			}
			mode, ok := engine.ParseGameMode(cmd.String("mode"))
			if !ok {
				fmt.Println("Invalid mode, using two players")
			}

			var rng *rand.Rand
			if seed := cmd.Uint("seed"); seed != 0 {
				rng = rand.New(rand.NewSource(uint64(seed)))
			}

			ui := newConsoleUI(size, mode, rng)
			return ui.run()
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// consoleUI drives one game on stdin/stdout. It registers itself as the
// manager's event listener, so game announcements print as they happen.
type consoleUI struct {
	manager *manager.Manager
	in      *bufio.Scanner
}

func newConsoleUI(size engine.BoardSize, mode engine.GameMode, rng *rand.Rand) *consoleUI {
	ui := &consoleUI{
		manager: manager.New(size, mode, rng),
		in:      bufio.NewScanner(os.Stdin),
	}
	ui.manager.AddListener(ui)
	return ui
}

func (ui *consoleUI) run() error {
	fmt.Println("Welcome to Micattix!")
	ui.manager.StartGame()

	for {
		sess := ui.manager.Session()

		fmt.Println(sess.Board().String())
		fmt.Printf("Current player: %s\n", sess.PlayerName(sess.CurrentPlayer()))
		for _, player := range sess.Players() {
			fmt.Printf("%s score: %d\n", sess.PlayerName(player), sess.Score(player).Total)
		}

		moves := sess.Board().ValidMoves(sess.CurrentPlayer())
		fmt.Printf("Valid moves: %s\n", formatMoves(moves))

		fmt.Print("Enter move (row,col): ")
		if !ui.in.Scan() {
			return ui.in.Err()
		}

		input := strings.TrimSpace(ui.in.Text())
		if input == "quit" {
			break
		}

		target, err := parseTarget(input)
		if err != nil {
			fmt.Println(err)
			continue
		}

		ui.manager.MakeMove(target)

		if ui.manager.Session().IsRoundOver() {
			if !ui.promptNextRound() {
				break
			}
		}
	}

	ui.manager.EndGame()
	return nil
}

// promptNextRound asks whether to deal another board. It returns false when
// the players want the game to end.
func (ui *consoleUI) promptNextRound() bool {
	fmt.Print("Start next round? (y/n): ")
	if !ui.in.Scan() {
		return false
	}

	if strings.ToLower(strings.TrimSpace(ui.in.Text())) == "y" {
		ui.manager.StartNextRound()
		return true
	}
	return false
}

func parseTarget(input string) (engine.Coord, error) {
	coords := strings.Split(input, ",")
	if len(coords) != 2 {
		return engine.Coord{}, fmt.Errorf("invalid input, enter as 'row,col'")
	}

	row, errRow := strconv.Atoi(strings.TrimSpace(coords[0]))
	col, errCol := strconv.Atoi(strings.TrimSpace(coords[1]))
	if errRow != nil || errCol != nil {
		return engine.Coord{}, fmt.Errorf("invalid coordinates")
	}

	return engine.Coord{Row: row, Col: col}, nil
}

func formatMoves(moves []engine.Coord) string {
	if len(moves) == 0 {
		return "(none)"
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = fmt.Sprintf("(%d,%d)", m.Row, m.Col)
	}
	return strings.Join(parts, " ")
}

// OnEvent implements manager.EventListener.
func (ui *consoleUI) OnEvent(e manager.Event) {
	switch e.Type {
	case manager.EventGameStarted:
		fmt.Println("Game started!")

	case manager.EventRoundStarted:
		fmt.Printf("Round %d started!\n", e.Round)

	case manager.EventMoveMade:
		fmt.Printf("%s moved to (%d,%d) and got %s\n",
			e.Player, e.Target.Row, e.Target.Col, strings.TrimSpace(e.Piece.String()))

	case manager.EventInvalidMove:
		fmt.Printf("Invalid move by %s to (%d,%d): %s\n",
			e.Player, e.Target.Row, e.Target.Col, e.Reason)

	case manager.EventRoundEnded:
		fmt.Println("Round ended!")
		for player, score := range e.Scores {
			fmt.Printf("%s score: %d\n", player, score)
		}
		if e.Winner != nil {
			fmt.Printf("Winner: %s\n", e.Winner)
		} else {
			fmt.Println("Round ended in a draw")
		}

	case manager.EventGameEnded:
		fmt.Println("Game over!")
		fmt.Println("Final scores:")
		for player, score := range e.Scores {
			fmt.Printf("%s: %d\n", player, score)
		}
		if e.Winner != nil {
			fmt.Printf("Overall winner: %s\n", e.Winner)
		} else {
			fmt.Println("Overall result: Draw")
		}
	}
}
