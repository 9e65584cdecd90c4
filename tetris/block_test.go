package tetris

import (
	"errors"
	"image/color"
	"testing"
)

func TestNewBlock(t *testing.T) {
	tests := []struct {
		name                string
		x, y, width, height int
		color               color.Color
		wantErr             error
	}{
		{
			name: "valid block", x: 10, y: 20, width: 20, height: 20,
			color: color.White,
		},
		{
			name: "zero geometry is allowed",
			color: color.White,
		},
		{
			name: "negative x", x: -1, width: 20, height: 20,
			color: color.White, wantErr: ErrNegativeGeometry,
		},
		{
			name: "negative y", y: -1, width: 20, height: 20,
			color: color.White, wantErr: ErrNegativeGeometry,
		},
		{
			name: "negative width", width: -20, height: 20,
			color: color.White, wantErr: ErrNegativeGeometry,
		},
		{
			name: "negative height", width: 20, height: -20,
			color: color.White, wantErr: ErrNegativeGeometry,
		},
		{
			name: "nil color", width: 20, height: 20,
			wantErr: ErrNilColor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBlock(tt.x, tt.y, tt.width, tt.height, tt.color)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				return
			}
			if b.X() != tt.x || b.Y() != tt.y {
				t.Errorf("Expected position (%d,%d), got (%d,%d)", tt.x, tt.y, b.X(), b.Y())
			}
			if !b.Visible() {
				t.Error("Expected new block to be visible")
			}
		})
	}
}

func TestNewDefaultBlock(t *testing.T) {
	b, err := NewDefaultBlock(0, 0, BlockSize, BlockSize)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if b.Color() != DefaultBlockColor {
		t.Errorf("Expected default color, got %v", b.Color())
	}
}

func TestBlockSetters(t *testing.T) {
	b, err := NewDefaultBlock(0, 0, BlockSize, BlockSize)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	t.Run("position setters accept any value", func(t *testing.T) {
		b.SetX(-40)
		b.SetY(-40)
		if b.X() != -40 || b.Y() != -40 {
			t.Errorf("Expected position (-40,-40), got (%d,%d)", b.X(), b.Y())
		}
	})

	t.Run("size setters reject negatives", func(t *testing.T) {
		if err := b.SetWidth(-1); !errors.Is(err, ErrNegativeGeometry) {
			t.Errorf("Expected ErrNegativeGeometry, got %v", err)
		}
		if err := b.SetHeight(-1); !errors.Is(err, ErrNegativeGeometry) {
			t.Errorf("Expected ErrNegativeGeometry, got %v", err)
		}
		if b.Width() != BlockSize || b.Height() != BlockSize {
			t.Error("Expected size to be unchanged after rejected set")
		}
	})

	t.Run("color setter rejects nil", func(t *testing.T) {
		if err := b.SetColor(nil); !errors.Is(err, ErrNilColor) {
			t.Errorf("Expected ErrNilColor, got %v", err)
		}
		if err := b.SetColor(color.White); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("visibility toggles freely", func(t *testing.T) {
		b.SetVisible(false)
		if b.Visible() {
			t.Error("Expected block to be invisible")
		}
		b.SetVisible(true)
		if !b.Visible() {
			t.Error("Expected block to be visible")
		}
	})
}
