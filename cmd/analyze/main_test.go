package main

import (
	"testing"

	"micattix/game/engine"
)

func TestTileCensusSmall(t *testing.T) {
	census, crossCount, tileCount := tileCensus(engine.Small)

	if crossCount != 1 {
		t.Errorf("expected 1 cross, got %d", crossCount)
	}
	if tileCount != 15 {
		t.Errorf("expected 15 numbered tiles, got %d", tileCount)
	}

	for v := 1; v <= 7; v++ {
		if census[v] != 2 {
			t.Errorf("expected two tiles of value %d, got %d", v, census[v])
		}
	}
	if census[8] != 1 {
		t.Errorf("expected one tile of value 8, got %d", census[8])
	}
}

func TestTileCensusLarge(t *testing.T) {
	census, crossCount, tileCount := tileCensus(engine.Large)

	if crossCount != 1 {
		t.Errorf("expected 1 cross, got %d", crossCount)
	}
	if tileCount != 35 {
		t.Errorf("expected 35 numbered tiles, got %d", tileCount)
	}

	negatives := 0
	for v, n := range census {
		if v < 0 {
			negatives += n
		}
	}
	if negatives != 10 {
		t.Errorf("expected 10 negative tiles, got %d", negatives)
	}

	if census[10] != 1 {
		t.Errorf("expected one +10 tile, got %d", census[10])
	}
	if census[-10] != 1 {
		t.Errorf("expected one -10 tile, got %d", census[-10])
	}
}

func TestTileCensusSeedIndependent(t *testing.T) {
	// The census is a property of the size, not the shuffle.
	a, _, _ := tileCensus(engine.Small)
	b, _, _ := tileCensus(engine.Small)

	if len(a) != len(b) {
		t.Fatalf("census sizes differ: %d vs %d", len(a), len(b))
	}
	for v, n := range a {
		if b[v] != n {
			t.Errorf("census mismatch at value %d: %d vs %d", v, n, b[v])
		}
	}
}
