// Command validate checks board generation across a range of seeds. For each
// size and seed it deals a board and verifies:
//   - Exactly one cross marker, at the position the board reports
//   - Every cell filled (a fresh board has no empty cells)
//   - The value census matches the size's tile table
//   - The same seed deals the same board twice
//
// It prints a concise report and exits non-zero if any board is invalid.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/rand"

	"micattix/game/engine"
)

var seeds = flag.Int("seeds", 50, "number of seeds to check per board size")

// ValidationResult captures the outcome of validating one generated board.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	Size   engine.BoardSize
	Seed   uint64
	Valid  bool
	Errors []string
}

// referenceCensus returns the expected value counts for a board size.
func referenceCensus(size engine.BoardSize) map[int]int {
	census := map[int]int{}
	switch size {
	case engine.Small:
		for v := 1; v <= 7; v++ {
			census[v] = 2
		}
		census[8] = 1
	case engine.Large:
		for v := 1; v <= 9; v++ {
			census[v] = 2
		}
		for v := 1; v <= 6; v++ {
			census[v]++
		}
		for v := 1; v <= 10; v++ {
			census[-v] = 1
		}
		census[10]++
	}
	return census
}

// validateBoard deals a board for the seed and runs every check against it.
func validateBoard(size engine.BoardSize, seed uint64) ValidationResult {
	result := ValidationResult{
		Size:   size,
		Seed:   seed,
		Valid:  true,
		Errors: []string{},
	}

	board := engine.NewBoard(size, rand.New(rand.NewSource(seed)))
	rows, cols := size.Dimensions()

	census := map[int]int{}
	var crosses []engine.Coord
	empties := 0

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			piece := board.GetPiece(r, c)
			switch piece.Kind {
			case engine.Cross:
				crosses = append(crosses, engine.Coord{Row: r, Col: c})
			case engine.Number:
				census[piece.Value]++
			case engine.Empty:
				empties++
			}
		}
	}

	if len(crosses) != 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Expected exactly one cross, found %d", len(crosses)))
	} else if crosses[0] != board.CrossPosition() {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Cross reported at %v but found at %v", board.CrossPosition(), crosses[0]))
	} else {
		result.Errors = append(result.Errors, "✓ Cross: one marker, position consistent")
	}

	if empties != 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Fresh board has %d empty cells", empties))
	} else {
		result.Errors = append(result.Errors, "✓ Fill: every cell occupied")
	}

	reference := referenceCensus(size)
	censusOK := len(census) == len(reference)
	for v, n := range reference {
		if census[v] != n {
			censusOK = false
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Census mismatch for value %d: expected %d, got %d", v, n, census[v]))
		}
	}
	if censusOK {
		result.Errors = append(result.Errors, "✓ Census: tile table matches")
	}

	// Same seed, same deal
	again := engine.NewBoard(size, rand.New(rand.NewSource(seed)))
	identical := true
	for r := 0; r < rows && identical; r++ {
		for c := 0; c < cols; c++ {
			if board.GetPiece(r, c) != again.GetPiece(r, c) {
				identical = false
				break
			}
		}
	}
	if !identical {
		result.Valid = false
		result.Errors = append(result.Errors, "Same seed produced different boards")
	} else {
		result.Errors = append(result.Errors, "✓ Determinism: same seed, same board")
	}

	return result
}

// main validates boards for both sizes across the configured seed range,
// printing a concise report and exiting with non-zero status on failure.
func main() {
	flag.Parse()

	allValid := true
	checked := 0

	for _, size := range []engine.BoardSize{engine.Small, engine.Large} {
		failures := 0
		for seed := uint64(1); seed <= uint64(*seeds); seed++ {
			result := validateBoard(size, seed)
			checked++

			if !result.Valid {
				allValid = false
				failures++
				fmt.Printf("\n%s %s board, seed %d\n", strings.Repeat("=", 20), size, seed)
				fmt.Println("❌ INVALID")
				for _, err := range result.Errors {
					if !strings.HasPrefix(err, "✓") {
						fmt.Println("  ❌ " + err)
					}
				}
			}
		}

		if failures == 0 {
			fmt.Printf("✅ %s board: %d seeds valid\n", size, *seeds)
		} else {
			fmt.Printf("❌ %s board: %d of %d seeds invalid\n", size, failures, *seeds)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Printf("✅ All %d generated boards are valid!\n", checked)
	} else {
		fmt.Println("❌ Some generated boards have errors")
		os.Exit(1)
	}
}
