package tetris

import (
	"fmt"
	"image/color"
	"math/rand"
)

// Type tags a catalog silhouette. The catalog carries the seven
// standard tetrominoes plus the extended pentomino-style set of the
// original game.
type Type int

const (
	TypeI Type = iota
	TypeO
	TypeT
	TypeS
	TypeZ
	TypeJ
	TypeL
	TypeF
	TypeP
	TypeN
	TypeU
	TypeX
	TypeY
	TypeW
	TypeZLarge
	TypeTLarge
	TypeSingle
)

var typeNames = map[Type]string{
	TypeI:      "I",
	TypeO:      "O",
	TypeT:      "T",
	TypeS:      "S",
	TypeZ:      "Z",
	TypeJ:      "J",
	TypeL:      "L",
	TypeF:      "F",
	TypeP:      "P",
	TypeN:      "N",
	TypeU:      "U",
	TypeX:      "X",
	TypeY:      "Y",
	TypeW:      "W",
	TypeZLarge: "Z-large",
	TypeTLarge: "T-large",
	TypeSingle: "single",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// silhouette describes a shape as its bounding box plus the cells that
// are switched off inside it. Absent from the off list means filled.
type silhouette struct {
	rows, cols int
	off        [][2]int
}

var silhouettes = map[Type]silhouette{
	TypeI:      {rows: 4, cols: 1},
	TypeO:      {rows: 2, cols: 2},
	TypeT:      {rows: 2, cols: 3, off: [][2]int{{1, 0}, {1, 2}}},
	TypeS:      {rows: 2, cols: 3, off: [][2]int{{0, 0}, {1, 2}}},
	TypeZ:      {rows: 2, cols: 3, off: [][2]int{{0, 2}, {1, 0}}},
	TypeJ:      {rows: 3, cols: 2, off: [][2]int{{0, 0}, {1, 0}}},
	TypeL:      {rows: 3, cols: 2, off: [][2]int{{0, 1}, {1, 1}}},
	TypeF:      {rows: 3, cols: 3, off: [][2]int{{0, 0}, {1, 2}, {2, 0}, {2, 2}}},
	TypeP:      {rows: 3, cols: 2, off: [][2]int{{2, 1}}},
	TypeN:      {rows: 4, cols: 2, off: [][2]int{{0, 0}, {1, 0}, {3, 1}}},
	TypeU:      {rows: 2, cols: 3, off: [][2]int{{0, 1}}},
	TypeX:      {rows: 3, cols: 3, off: [][2]int{{0, 0}, {0, 2}, {2, 0}, {2, 2}}},
	TypeY:      {rows: 4, cols: 2, off: [][2]int{{0, 1}, {2, 1}, {3, 1}}},
	TypeW:      {rows: 3, cols: 3, off: [][2]int{{0, 1}, {0, 2}, {1, 2}, {2, 0}}},
	TypeZLarge: {rows: 3, cols: 3, off: [][2]int{{0, 2}, {1, 0}, {1, 2}, {2, 0}}},
	TypeTLarge: {rows: 3, cols: 3, off: [][2]int{{1, 0}, {1, 2}, {2, 0}, {2, 2}}},
	TypeSingle: {rows: 1, cols: 1},
}

var simpleTypes = []Type{TypeI, TypeO, TypeJ, TypeL, TypeS, TypeZ, TypeT}

// NewTetrominoOfType builds a fresh tetromino of the given type at the
// origin. Every call produces new Block instances.
func NewTetrominoOfType(t Type, c color.Color) (*Tetromino, error) {
	sil, ok := silhouettes[t]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, t)
	}
	if c == nil {
		return nil, ErrNilColor
	}
	shape := make([][]*Block, sil.rows)
	for r := range shape {
		shape[r] = make([]*Block, sil.cols)
		for col := range shape[r] {
			b, err := NewBlock(col*BlockSize, r*BlockSize, BlockSize, BlockSize, c)
			if err != nil {
				return nil, err
			}
			shape[r][col] = b
		}
	}
	for _, cell := range sil.off {
		shape[cell[0]][cell[1]].SetVisible(false)
	}
	return NewColoredTetromino(c, shape)
}

// NewDefaultTetromino is NewTetrominoOfType with the package default
// color.
func NewDefaultTetromino(t Type) (*Tetromino, error) {
	return NewTetrominoOfType(t, DefaultBlockColor)
}

// RandomType draws a uniformly random type from the full catalog.
func RandomType() Type {
	return AllTypes()[rand.Intn(len(silhouettes))]
}

// RandomSimpleType draws from the seven standard tetrominoes only.
func RandomSimpleType() Type {
	return simpleTypes[rand.Intn(len(simpleTypes))]
}

// SimpleTypes lists the seven standard tetromino types.
func SimpleTypes() []Type {
	out := make([]Type, len(simpleTypes))
	copy(out, simpleTypes)
	return out
}

// AllTypes lists every catalog type in declaration order.
func AllTypes() []Type {
	out := make([]Type, 0, len(silhouettes))
	for t := TypeI; t <= TypeSingle; t++ {
		out = append(out, t)
	}
	return out
}

// OneOfEach builds one default-colored tetromino per catalog type, in
// declaration order.
func OneOfEach() ([]*Tetromino, error) {
	out := make([]*Tetromino, 0, len(silhouettes))
	for _, t := range AllTypes() {
		tet, err := NewDefaultTetromino(t)
		if err != nil {
			return nil, err
		}
		out = append(out, tet)
	}
	return out, nil
}
