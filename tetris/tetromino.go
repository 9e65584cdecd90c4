package tetris

import (
	"fmt"
	"image/color"
)

// Direction is a movement command for the active tetromino.
type Direction int

const (
	Left Direction = iota
	Right
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Down:
		return "down"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

func (d Direction) valid() bool { return d == Left || d == Right || d == Down }

// Rotation selects the turn performed by Rotate.
type Rotation int

const (
	Clockwise Rotation = iota
	CounterClockwise
)

func (r Rotation) String() string {
	switch r {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	}
	return fmt.Sprintf("rotation(%d)", int(r))
}

func (r Rotation) valid() bool { return r == Clockwise || r == CounterClockwise }

// Borders reports which edges of a tetromino cell face an absent or
// invisible neighbour within the piece. Renderers outline exactly
// these edges, so a piece reads as one connected silhouette instead of
// a grid of squares.
type Borders struct {
	Top, Bottom, Left, Right bool
}

// Tetromino is the falling piece: a rectangular matrix of blocks with
// an origin in pixel units and per-axis speeds in those same units.
// The piece exclusively owns its block matrix until the play field
// incorporates it.
type Tetromino struct {
	shape     [][]*Block
	blockSize int
	x, y      int
	hSpeed    int
	vSpeed    int
	tetColor  color.Color // applied to visible cells that do not color themselves
}

// NewTetromino builds a tetromino from a rectangular block matrix,
// using the package default color. The shape must be non-empty and
// rectangular, every cell non-nil and sized like the first cell, and
// no two cells may reference the same Block instance.
func NewTetromino(shape [][]*Block) (*Tetromino, error) {
	return NewColoredTetromino(DefaultBlockColor, shape)
}

// NewColoredTetromino is NewTetromino with an explicit color.
func NewColoredTetromino(c color.Color, shape [][]*Block) (*Tetromino, error) {
	if c == nil {
		return nil, ErrNilColor
	}
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	t := &Tetromino{
		shape:     shape,
		blockSize: shape[0][0].Width(), // arbitrarily goes off width
		tetColor:  c,
	}
	t.x = shape[0][0].X()
	t.y = shape[0][0].Y()
	t.hSpeed = t.blockSize
	t.vSpeed = t.blockSize
	t.UpdateBlockPositions()
	return t, nil
}

func validateShape(shape [][]*Block) error {
	if len(shape) == 0 || len(shape[0]) == 0 {
		return fmt.Errorf("%w: shape is empty", ErrInvalidShape)
	}
	cols := len(shape[0])
	size := -1
	seen := make(map[*Block]struct{}, len(shape)*cols)
	for r, row := range shape {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidShape, r, len(row), cols)
		}
		for c, b := range row {
			if b == nil {
				return fmt.Errorf("%w: nil block at (%d,%d)", ErrInvalidShape, r, c)
			}
			if size == -1 {
				size = b.Width()
			}
			if b.Width() != size || b.Height() != size {
				return fmt.Errorf("%w: block sizes are not all equal", ErrInvalidShape)
			}
			if _, dup := seen[b]; dup {
				return fmt.Errorf("%w: blocks must all be unique instances", ErrInvalidShape)
			}
			seen[b] = struct{}{}
		}
	}
	return nil
}

func (t *Tetromino) X() int { return t.x }
func (t *Tetromino) Y() int { return t.y }

// SetX and SetY reposition the piece origin without touching the cell
// blocks; callers follow up with UpdateBlockPositions.
func (t *Tetromino) SetX(x int) { t.x = x }
func (t *Tetromino) SetY(y int) { t.y = y }

// HBlockCount is the piece width in cells, VBlockCount its height.
// Both swap after a rotation.
func (t *Tetromino) HBlockCount() int { return len(t.shape[0]) }
func (t *Tetromino) VBlockCount() int { return len(t.shape) }

// BlockSize is the uniform cell size of this piece.
func (t *Tetromino) BlockSize() int { return t.blockSize }

func (t *Tetromino) Color() color.Color { return t.tetColor }

func (t *Tetromino) SetColor(c color.Color) error {
	if c == nil {
		return ErrNilColor
	}
	t.tetColor = c
	return nil
}

func (t *Tetromino) HorizontalSpeed() int { return t.hSpeed }
func (t *Tetromino) VerticalSpeed() int   { return t.vSpeed }

func (t *Tetromino) SetHorizontalSpeed(speed int) { t.hSpeed = speed }
func (t *Tetromino) SetVerticalSpeed(speed int)   { t.vSpeed = speed }

// Row returns the blocks of one row, top to bottom.
func (t *Tetromino) Row(rowNum int) ([]*Block, error) {
	if rowNum < 0 || rowNum >= t.VBlockCount() {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, rowNum, t.VBlockCount())
	}
	return t.shape[rowNum], nil
}

// Column returns the blocks of one column, left to right.
func (t *Tetromino) Column(colNum int) ([]*Block, error) {
	if colNum < 0 || colNum >= t.HBlockCount() {
		return nil, fmt.Errorf("%w: column %d of %d", ErrOutOfRange, colNum, t.HBlockCount())
	}
	col := make([]*Block, t.VBlockCount())
	for ri := range t.shape {
		col[ri] = t.shape[ri][colNum]
	}
	return col, nil
}

func (t *Tetromino) LeftColumn() []*Block {
	col, _ := t.Column(0)
	return col
}

func (t *Tetromino) RightColumn() []*Block {
	col, _ := t.Column(t.HBlockCount() - 1)
	return col
}

func (t *Tetromino) BottomRow() []*Block {
	row, _ := t.Row(t.VBlockCount() - 1)
	return row
}

// BlockAt returns the block at (row, col) in the piece's current
// orientation.
func (t *Tetromino) BlockAt(row, col int) (*Block, error) {
	if row < 0 || row >= t.VBlockCount() {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, row, t.VBlockCount())
	}
	if col < 0 || col >= t.HBlockCount() {
		return nil, fmt.Errorf("%w: column %d of %d", ErrOutOfRange, col, t.HBlockCount())
	}
	return t.shape[row][col], nil
}

// Move shifts the origin one step in the given direction and
// resynchronizes every cell position.
func (t *Tetromino) Move(d Direction) error {
	switch d {
	case Left:
		t.x -= t.hSpeed
	case Right:
		t.x += t.hSpeed
	case Down:
		t.y += t.vSpeed
	default:
		return fmt.Errorf("%w: %v", ErrInvalidDirection, d)
	}
	t.UpdateBlockPositions()
	return nil
}

// Rotate replaces the block matrix with a reoriented one of transposed
// dimensions. Clockwise moves (i,j) to (j, rows-1-i); counter-clockwise
// moves (i,j) to (cols-1-j, i). Four rotations in the same direction
// restore the original arrangement index for index.
func (t *Tetromino) Rotate(r Rotation) error {
	if !r.valid() {
		return fmt.Errorf("%w: %v", ErrInvalidRotation, r)
	}
	rows := t.VBlockCount()
	cols := t.HBlockCount()
	rotated := make([][]*Block, cols)
	for i := range rotated {
		rotated[i] = make([]*Block, rows)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if r == Clockwise {
				rotated[j][rows-1-i] = t.shape[i][j]
			} else {
				rotated[cols-1-j][i] = t.shape[i][j]
			}
		}
	}
	t.shape = rotated
	t.UpdateBlockPositions()
	return nil
}

// UpdateBlockPositions writes origin-relative pixel coordinates into
// every cell: cell (row, col) sits at (x + col*size, y + row*size).
// Called internally after every mutation; the play field also calls it
// after repositioning a freshly spawned piece.
func (t *Tetromino) UpdateBlockPositions() {
	for row := range t.shape {
		for col := range t.shape[row] {
			t.shape[row][col].SetX(t.x + col*t.blockSize)
			t.shape[row][col].SetY(t.y + row*t.blockSize)
		}
	}
}

// BorderEdges reports, for the cell at (row, col), which edges face an
// absent or invisible neighbour within the piece. Only meaningful for
// visible cells.
func (t *Tetromino) BorderEdges(row, col int) (Borders, error) {
	if _, err := t.BlockAt(row, col); err != nil {
		return Borders{}, err
	}
	return Borders{
		Top:    row == 0 || !t.shape[row-1][col].Visible(),
		Bottom: row+1 == t.VBlockCount() || !t.shape[row+1][col].Visible(),
		Left:   col == 0 || !t.shape[row][col-1].Visible(),
		Right:  col+1 == t.HBlockCount() || !t.shape[row][col+1].Visible(),
	}, nil
}
