package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorScale(t *testing.T) {
	tests := []struct {
		name       string
		winW, winH int
		fbW, fbH   int
		sx, sy     float64
	}{
		{"1x display", 800, 600, 800, 600, 1, 1},
		{"2x hidpi", 800, 600, 1600, 1200, 2, 2},
		{"fractional 1.5x", 1000, 800, 1500, 1200, 1.5, 1.5},
		{"anisotropic", 800, 600, 1600, 600, 2, 1},
		{"zero window falls back to identity", 0, 0, 1600, 1200, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := cursorScale(tt.winW, tt.winH, tt.fbW, tt.fbH)
			assert.Equal(t, tt.sx, sx)
			assert.Equal(t, tt.sy, sy)
		})
	}
}
