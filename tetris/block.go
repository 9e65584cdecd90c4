package tetris

import (
	"fmt"
	"image/color"
)

// Block is the smallest addressable cell of the game: a square with a
// position in pixel units, a visibility flag and a color. Both the
// play-field grid and every tetromino are built out of blocks. Grid
// blocks are created once and recycled; they are never freed.
type Block struct {
	x, y          int
	width, height int
	visible       bool
	blockColor    color.Color
}

// NewBlock builds a visible block at (x, y). It rejects negative
// geometry and a nil color.
func NewBlock(x, y, width, height int, c color.Color) (*Block, error) {
	for _, v := range [...]struct {
		name  string
		value int
	}{{"x", x}, {"y", y}, {"width", width}, {"height", height}} {
		if v.value < 0 {
			return nil, fmt.Errorf("%w: %s is %d", ErrNegativeGeometry, v.name, v.value)
		}
	}
	if c == nil {
		return nil, ErrNilColor
	}
	return &Block{x: x, y: y, width: width, height: height, visible: true, blockColor: c}, nil
}

// NewDefaultBlock is NewBlock with the package default color.
func NewDefaultBlock(x, y, width, height int) (*Block, error) {
	return NewBlock(x, y, width, height, DefaultBlockColor)
}

func (b *Block) X() int      { return b.x }
func (b *Block) Y() int      { return b.y }
func (b *Block) Width() int  { return b.width }
func (b *Block) Height() int { return b.height }

// Visible reports whether the block counts as filled. A grid cell is
// occupied iff its block is visible.
func (b *Block) Visible() bool      { return b.visible }
func (b *Block) Color() color.Color { return b.blockColor }

// SetX and SetY never fail; moving structures reposition their blocks
// freely, including through transiently negative coordinates while a
// piece sits against the left wall.
func (b *Block) SetX(x int) { b.x = x }
func (b *Block) SetY(y int) { b.y = y }

func (b *Block) SetWidth(width int) error {
	if width < 0 {
		return fmt.Errorf("%w: width is %d", ErrNegativeGeometry, width)
	}
	b.width = width
	return nil
}

func (b *Block) SetHeight(height int) error {
	if height < 0 {
		return fmt.Errorf("%w: height is %d", ErrNegativeGeometry, height)
	}
	b.height = height
	return nil
}

func (b *Block) SetVisible(visible bool) { b.visible = visible }

func (b *Block) SetColor(c color.Color) error {
	if c == nil {
		return ErrNilColor
	}
	b.blockColor = c
	return nil
}

func (b *Block) String() string {
	return fmt.Sprintf("block{x: %d, y: %d, w: %d, h: %d, visible: %t}", b.x, b.y, b.width, b.height, b.visible)
}
