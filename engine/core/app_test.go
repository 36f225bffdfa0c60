package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chxry/u/engine/ui"
)

func TestMouseButtonFlagIndex(t *testing.T) {
	tests := []struct {
		name   string
		button MouseButton
		idx    int
		ok     bool
	}{
		{"primary", MouseButtonLeft, ui.MousePrimary, true},
		{"middle", MouseButtonMiddle, ui.MouseMiddle, true},
		{"secondary", MouseButtonRight, ui.MouseSecondary, true},
		{"unknown", MouseButton(42), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := tt.button.FlagIndex()
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.idx, idx)
			}
		})
	}
}

// Index 1 is reserved: no button may map onto it.
func TestFlagIndexNeverUsesReservedSlot(t *testing.T) {
	for b := MouseButton(0); b < 16; b++ {
		if idx, ok := b.FlagIndex(); ok {
			assert.NotEqual(t, 1, idx, "button %d maps to the reserved slot", b)
			assert.Less(t, idx, ui.MouseButtonCount)
		}
	}
}
