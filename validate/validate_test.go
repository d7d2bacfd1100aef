package main

import (
	"strings"
	"testing"

	"micattix/game/engine"
)

func TestValidateBoardSmall(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		result := validateBoard(engine.Small, seed)
		if !result.Valid {
			t.Errorf("seed %d: expected valid board, got errors: %v", seed, result.Errors)
		}
	}
}

func TestValidateBoardLarge(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		result := validateBoard(engine.Large, seed)
		if !result.Valid {
			t.Errorf("seed %d: expected valid board, got errors: %v", seed, result.Errors)
		}
	}
}

func TestValidateBoardReportsChecks(t *testing.T) {
	result := validateBoard(engine.Small, 3)

	joined := strings.Join(result.Errors, "\n")
	for _, check := range []string{"Cross", "Fill", "Census", "Determinism"} {
		if !strings.Contains(joined, check) {
			t.Errorf("expected a %s check in the report, got: %v", check, result.Errors)
		}
	}
}

func TestReferenceCensusTotals(t *testing.T) {
	smallTiles := 0
	for _, n := range referenceCensus(engine.Small) {
		smallTiles += n
	}
	// 4x4 board minus the cross
	if smallTiles != 15 {
		t.Errorf("small census totals %d tiles, want 15", smallTiles)
	}

	largeTiles := 0
	for _, n := range referenceCensus(engine.Large) {
		largeTiles += n
	}
	// 6x6 board minus the cross
	if largeTiles != 35 {
		t.Errorf("large census totals %d tiles, want 35", largeTiles)
	}
}
