package ui

// Mouse button flag indices. The ordinals are fixed by the windowing
// boundary: primary 0, middle 2, secondary 3. Index 1 is reserved.
const (
	MousePrimary   = 0
	MouseMiddle    = 2
	MouseSecondary = 3

	MouseButtonCount = 8
)

// InputState is the instantaneous pointer state read by widget evaluation.
// The event boundary overwrites CursorPos on every move (last writer wins, no
// queue) and flips MouseButtons on every button event. Multiple transitions
// between two frames collapse to the final state.
type InputState struct {
	CursorPos    [2]float32
	MouseButtons [MouseButtonCount]bool
}
