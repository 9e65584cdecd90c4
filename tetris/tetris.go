// Package tetris contains the grid/piece simulation engine:
// the play field, the falling tetromino, collision detection,
// lock-in, line clearing and scoring.
package tetris

import (
	"errors"
	"image/color"
)

// BlockSize is the uniform cell size, in pixel units, used by the
// shape catalog and the play-field grid.
const BlockSize = 20

// DefaultBlockColor is used whenever a block or tetromino is built
// without an explicit color.
var DefaultBlockColor = color.RGBA{R: 0xff, A: 0xff}

var (
	// ErrGameOver is returned by Matrix.Spawn when the spawn footprint
	// overlaps locked cells. It is a terminal state, not a fault: the
	// caller is expected to stop its loop and present the result.
	ErrGameOver = errors.New("tetris: field exhausted")

	// ErrInvalidShape covers every malformed tetromino shape: empty or
	// ragged containers, nil cells, mismatched cell sizes and aliased
	// block instances.
	ErrInvalidShape = errors.New("tetris: invalid tetromino shape")

	// ErrUnknownType is returned by the shape catalog for a Type it has
	// no silhouette for.
	ErrUnknownType = errors.New("tetris: unknown tetromino type")

	// ErrOutOfRange is returned by row/column/cell accessors for
	// indices outside the current dimensions.
	ErrOutOfRange = errors.New("tetris: index out of range")

	// ErrNegativeGeometry is returned by block constructors and size
	// setters for negative coordinates or dimensions.
	ErrNegativeGeometry = errors.New("tetris: negative geometry")

	// ErrNilColor is returned wherever an explicit color is required.
	ErrNilColor = errors.New("tetris: color is nil")

	// ErrInvalidDirection and ErrInvalidRotation are returned for
	// direction/rotation values outside the defined enumerations.
	ErrInvalidDirection = errors.New("tetris: invalid direction")
	ErrInvalidRotation  = errors.New("tetris: invalid rotation")
)
