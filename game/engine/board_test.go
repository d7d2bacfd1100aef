package engine

import (
	"testing"

	"golang.org/x/exp/rand"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// uniformBoard builds a 4x4 board of Number(1) tiles with the cross at the
// given cell, for deterministic move scenarios.
func uniformBoard(t *testing.T, cross Coord) *Board {
	t.Helper()
	b := NewBoard(Small, testRNG(1))
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			b.SetPiece(r, c, NumberPiece(1))
		}
	}
	b.SetPiece(cross.Row, cross.Col, CrossPiece())
	return b
}

func TestBoardSizeDimensions(t *testing.T) {
	if r, c := Small.Dimensions(); r != 4 || c != 4 {
		t.Errorf("Small.Dimensions() = (%d,%d), want (4,4)", r, c)
	}
	if r, c := Large.Dimensions(); r != 6 || c != 6 {
		t.Errorf("Large.Dimensions() = (%d,%d), want (6,6)", r, c)
	}
}

func TestSmallBoardCensus(t *testing.T) {
	b := NewBoard(Small, testRNG(7))

	counts := map[int]int{}
	numbers, crosses, empties := 0, 0, 0
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			switch p := b.GetPiece(r, c); p.Kind {
			case Number:
				numbers++
				counts[p.Value]++
			case Cross:
				crosses++
			case Empty:
				empties++
			}
		}
	}

	if numbers != 15 {
		t.Errorf("numbered tiles = %d, want 15", numbers)
	}
	if crosses != 1 {
		t.Errorf("cross tiles = %d, want 1", crosses)
	}
	if empties != 0 {
		t.Errorf("empty cells = %d, want 0", empties)
	}
	for v := 1; v <= 7; v++ {
		if counts[v] != 2 {
			t.Errorf("value %d appears %d times, want 2", v, counts[v])
		}
	}
	if counts[8] != 1 {
		t.Errorf("value 8 appears %d times, want 1", counts[8])
	}
}

func TestLargeBoardCensus(t *testing.T) {
	b := NewBoard(Large, testRNG(7))

	positives, negatives, crosses, empties := 0, 0, 0, 0
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			switch p := b.GetPiece(r, c); p.Kind {
			case Number:
				if p.Value > 0 {
					positives++
				} else if p.Value < 0 {
					negatives++
				}
			case Cross:
				crosses++
			case Empty:
				empties++
			}
		}
	}

	if crosses != 1 {
		t.Errorf("cross tiles = %d, want 1", crosses)
	}
	if empties != 0 {
		t.Errorf("empty cells = %d, want 0", empties)
	}
	if negatives != 10 {
		t.Errorf("negative tiles = %d, want 10", negatives)
	}
	if positives+negatives+crosses != 36 {
		t.Errorf("total accounted cells = %d, want 36", positives+negatives+crosses)
	}
}

func TestNewBoardDeterministicForSeed(t *testing.T) {
	a := NewBoard(Large, testRNG(42))
	b := NewBoard(Large, testRNG(42))

	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			if a.GetPiece(r, c) != b.GetPiece(r, c) {
				t.Fatalf("boards diverge at (%d,%d) for identical seeds", r, c)
			}
		}
	}
	if a.CrossPosition() != b.CrossPosition() {
		t.Errorf("cross positions differ: %v vs %v", a.CrossPosition(), b.CrossPosition())
	}
}

func TestValidMoves(t *testing.T) {
	b := uniformBoard(t, Coord{Row: 1, Col: 2})

	horizontal := b.ValidMoves(First)
	if len(horizontal) != 3 {
		t.Fatalf("horizontal moves = %v, want 3 cells", horizontal)
	}
	want := []Coord{{1, 0}, {1, 1}, {1, 3}}
	for i, m := range horizontal {
		if m != want[i] {
			t.Errorf("horizontal move %d = %v, want %v", i, m, want[i])
		}
	}

	vertical := b.ValidMoves(Second)
	if len(vertical) != 3 {
		t.Fatalf("vertical moves = %v, want 3 cells", vertical)
	}
	want = []Coord{{0, 2}, {2, 2}, {3, 2}}
	for i, m := range vertical {
		if m != want[i] {
			t.Errorf("vertical move %d = %v, want %v", i, m, want[i])
		}
	}
}

func TestValidMovesSkipsEmptyCells(t *testing.T) {
	b := uniformBoard(t, Coord{Row: 1, Col: 2})
	b.SetPiece(1, 0, EmptyPiece())

	moves := b.ValidMoves(First)
	for _, m := range moves {
		if m == (Coord{Row: 1, Col: 0}) {
			t.Errorf("ValidMoves included emptied cell %v", m)
		}
		if m == b.CrossPosition() {
			t.Errorf("ValidMoves included the marker's own cell")
		}
	}
	if len(moves) != 2 {
		t.Errorf("moves = %v, want 2 cells", moves)
	}
}

func TestMakeMove(t *testing.T) {
	b := uniformBoard(t, Coord{Row: 1, Col: 2})
	b.SetPiece(1, 3, NumberPiece(5))

	captured, err := b.MakeMove(First, Coord{Row: 1, Col: 3})
	if err != nil {
		t.Fatalf("MakeMove failed: %v", err)
	}
	if captured != NumberPiece(5) {
		t.Errorf("captured = %v, want Number(5)", captured)
	}
	if b.CrossPosition() != (Coord{Row: 1, Col: 3}) {
		t.Errorf("cross position = %v, want (1,3)", b.CrossPosition())
	}
	if b.GetPiece(1, 3).Kind != Cross {
		t.Errorf("target cell holds %v, want cross", b.GetPiece(1, 3))
	}
	if b.GetPiece(1, 2).Kind != Empty {
		t.Errorf("origin cell holds %v, want empty", b.GetPiece(1, 2))
	}
}

func TestMakeMoveRejections(t *testing.T) {
	cases := []struct {
		name   string
		target Coord
	}{
		{"off axis", Coord{Row: 2, Col: 3}},
		{"marker cell", Coord{Row: 1, Col: 2}},
		{"out of bounds", Coord{Row: 5, Col: 5}},
		{"emptied cell", Coord{Row: 1, Col: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := uniformBoard(t, Coord{Row: 1, Col: 2})
			b.SetPiece(1, 0, EmptyPiece())

			_, err := b.MakeMove(First, tc.target)
			if err == nil {
				t.Fatalf("MakeMove(%v) succeeded, want error", tc.target)
			}
			if b.CrossPosition() != (Coord{Row: 1, Col: 2}) {
				t.Errorf("failed move shifted the cross to %v", b.CrossPosition())
			}
		})
	}
}

func TestIsGameOver(t *testing.T) {
	b := NewBoard(Small, testRNG(3))
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			b.SetPiece(r, c, EmptyPiece())
		}
	}
	b.SetPiece(1, 2, CrossPiece())

	if !b.IsGameOver() {
		t.Error("board with only the cross should be over")
	}

	b.SetPiece(0, 0, NumberPiece(3))
	if b.IsGameOver() {
		t.Error("board with a numbered tile left should not be over")
	}
}

func TestGetPieceOutOfBounds(t *testing.T) {
	b := NewBoard(Small, testRNG(3))
	if p := b.GetPiece(-1, 0); p.Kind != Empty {
		t.Errorf("GetPiece(-1,0) = %v, want empty", p)
	}
	if p := b.GetPiece(4, 4); p.Kind != Empty {
		t.Errorf("GetPiece(4,4) = %v, want empty", p)
	}
}

func TestPieceString(t *testing.T) {
	if got := NumberPiece(5).String(); got != "  5" {
		t.Errorf("Number(5) = %q", got)
	}
	if got := NumberPiece(-3).String(); got != " -3" {
		t.Errorf("Number(-3) = %q", got)
	}
	if got := CrossPiece().String(); got != "  X" {
		t.Errorf("Cross = %q", got)
	}
	if got := EmptyPiece().String(); got != "   " {
		t.Errorf("Empty = %q", got)
	}
}
