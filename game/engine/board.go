package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/rand"
)

// BoardSize selects the grid dimensions and tile table.
type BoardSize int

const (
	Small BoardSize = iota // 4x4
	Large                  // 6x6
)

// Dimensions returns the row and column count for the size.
func (s BoardSize) Dimensions() (rows, cols int) {
	if s == Large {
		return 6, 6
	}
	return 4, 4
}

func (s BoardSize) String() string {
	if s == Large {
		return "large"
	}
	return "small"
}

// PieceKind distinguishes the three cell states.
type PieceKind int

const (
	Empty PieceKind = iota
	Number
	Cross
)

var pieceKindNames = [...]string{"empty", "number", "cross"}

func (k PieceKind) String() string {
	if k < Empty || k > Cross {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return pieceKindNames[k]
}

// MarshalJSON encodes the kind as its lowercase name.
func (k PieceKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON decodes a kind from its lowercase name.
func (k *PieceKind) UnmarshalJSON(data []byte) error {
	s := string(data)
	for i, name := range pieceKindNames {
		if s == `"`+name+`"` {
			*k = PieceKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %s", s)
}

// Piece is the value held by one board cell: a numbered tile, the single
// movable cross marker, or an empty (already captured) cell.
type Piece struct {
	Kind  PieceKind `json:"kind"`
	Value int       `json:"value,omitempty"`
}

// NumberPiece returns a numbered tile.
func NumberPiece(v int) Piece { return Piece{Kind: Number, Value: v} }

// CrossPiece returns the cross marker.
func CrossPiece() Piece { return Piece{Kind: Cross} }

// EmptyPiece returns an empty cell.
func EmptyPiece() Piece { return Piece{} }

// String renders the piece the way the console board does: numbers
// right-aligned in three columns, the cross as "  X", empty as spaces.
func (p Piece) String() string {
	switch p.Kind {
	case Number:
		return fmt.Sprintf("%3d", p.Value)
	case Cross:
		return "  X"
	default:
		return "   "
	}
}

// Coord addresses a board cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// ErrInvalidMove is wrapped by every move rejection returned from MakeMove.
var ErrInvalidMove = errors.New("invalid move")

// Board holds the grid of pieces and the cross marker position. It is created
// fresh at the start of every round and mutated only through MakeMove (and
// SetPiece in test scenarios).
type Board struct {
	size  BoardSize
	cells [][]Piece
	cross Coord
}

// NewBoard generates a freshly shuffled board of the given size. The tile
// multiset is fixed per size; rng drives the placement shuffle so a seeded
// generator reproduces the same layout. A nil rng falls back to a
// time-seeded one.
func NewBoard(size BoardSize, rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	rows, cols := size.Dimensions()
	tiles := tileSet(size)
	if len(tiles) != rows*cols {
		panic(fmt.Sprintf("engine: tile set for %s board has %d pieces, want %d", size, len(tiles), rows*cols))
	}

	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	b := &Board{
		size:  size,
		cells: make([][]Piece, rows),
	}
	for r := 0; r < rows; r++ {
		b.cells[r] = make([]Piece, cols)
		for c := 0; c < cols; c++ {
			piece := tiles[r*cols+c]
			b.cells[r][c] = piece
			if piece.Kind == Cross {
				b.cross = Coord{Row: r, Col: c}
			}
		}
	}
	return b
}

// tileSet builds the tile multiset for a board size, cross included.
//
// The large table is intentionally lopsided: 1-9 twice, -1..-10 once, +10
// once and the cross only cover 30 of the 36 cells, so low filler values 1-6
// top it up. Changing this multiset changes game balance; keep it as is.
func tileSet(size BoardSize) []Piece {
	var tiles []Piece
	switch size {
	case Small:
		for v := 1; v <= 7; v++ {
			tiles = append(tiles, NumberPiece(v), NumberPiece(v))
		}
		tiles = append(tiles, NumberPiece(8), CrossPiece())
	case Large:
		for v := 1; v <= 9; v++ {
			tiles = append(tiles, NumberPiece(v), NumberPiece(v))
		}
		for v := 1; v <= 10; v++ {
			tiles = append(tiles, NumberPiece(-v))
		}
		tiles = append(tiles, NumberPiece(10), CrossPiece())
		for v := 1; v <= 6; v++ {
			tiles = append(tiles, NumberPiece(v))
		}
	}
	return tiles
}

// Size returns the board size.
func (b *Board) Size() BoardSize { return b.size }

// CrossPosition returns the cell currently holding the cross marker.
func (b *Board) CrossPosition() Coord { return b.cross }

// ValidMoves returns every capturable destination for the player: the
// non-empty cells sharing the cross marker's row (horizontal axis) or column
// (vertical axis), in ascending order along the scanned axis. The marker's
// own cell is never included.
func (b *Board) ValidMoves(player Player) []Coord {
	rows, cols := b.size.Dimensions()

	var moves []Coord
	if player.Axis() == Horizontal {
		for c := 0; c < cols; c++ {
			if c != b.cross.Col && b.cells[b.cross.Row][c].Kind != Empty {
				moves = append(moves, Coord{Row: b.cross.Row, Col: c})
			}
		}
	} else {
		for r := 0; r < rows; r++ {
			if r != b.cross.Row && b.cells[r][b.cross.Col].Kind != Empty {
				moves = append(moves, Coord{Row: r, Col: b.cross.Col})
			}
		}
	}
	return moves
}

// MakeMove slides the cross to target and returns the piece captured there.
// A target that is not among ValidMoves(player), whether off the player's
// axis, the marker's own cell, out of bounds, or already empty, yields an
// error wrapping ErrInvalidMove and leaves the board untouched.
func (b *Board) MakeMove(player Player, target Coord) (Piece, error) {
	valid := false
	for _, m := range b.ValidMoves(player) {
		if m == target {
			valid = true
			break
		}
	}
	if !valid {
		return EmptyPiece(), fmt.Errorf("%w: %s cannot reach %s", ErrInvalidMove, player, target)
	}

	captured := b.cells[target.Row][target.Col]
	b.cells[b.cross.Row][b.cross.Col] = EmptyPiece()
	b.cells[target.Row][target.Col] = CrossPiece()
	b.cross = target
	return captured, nil
}

// IsGameOver reports whether no numbered tile remains on the board.
func (b *Board) IsGameOver() bool {
	for _, row := range b.cells {
		for _, piece := range row {
			if piece.Kind == Number {
				return false
			}
		}
	}
	return true
}

// GetPiece returns the piece at (row, col), or an empty piece for any
// out-of-bounds coordinate so presentation callers need no bounds checks.
func (b *Board) GetPiece(row, col int) Piece {
	if row < 0 || row >= len(b.cells) || col < 0 || col >= len(b.cells[0]) {
		return EmptyPiece()
	}
	return b.cells[row][col]
}

// SetPiece writes a piece directly into the grid, for scenario setup in
// tests. Writing a Cross also moves the recorded marker position.
// Out-of-bounds coordinates are ignored.
func (b *Board) SetPiece(row, col int, piece Piece) {
	if row < 0 || row >= len(b.cells) || col < 0 || col >= len(b.cells[0]) {
		return
	}
	b.cells[row][col] = piece
	if piece.Kind == Cross {
		b.cross = Coord{Row: row, Col: col}
	}
}

// String renders the grid for debugging and the console front-end.
func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.cells {
		for _, piece := range row {
			sb.WriteString(piece.String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
