package ui

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/chxry/u/engine/colors"
)

// ErrNoFrame is returned by EndFrame when no frame is active.
var ErrNoFrame = errors.New("ui: no active frame")

const buttonPadding = 8

var (
	textColor     = colors.White
	buttonIdleBg  = colors.Color{0.22, 0.24, 0.29}
	hoverScale    = float32(1.25)
	pressedScale  = float32(0.75)
	defaultMargin = [2]float32{10, 10}
)

// widgetState is the interaction state persisted across frames, keyed by a
// stable widget identity (label + per-frame occurrence), so reordering or
// conditionally skipping widgets cannot misattribute a press. Entries not
// evaluated in a frame are pruned at EndFrame: a widget that skips a frame
// loses its button observation and is re-seeded when it reappears.
type widgetState struct {
	wasDown   bool
	lastFrame uint64
}

// Context is the immediate-mode UI context: it owns the font atlas, the
// input snapshot and the per-frame draw list. Widgets are re-evaluated from
// scratch every frame between BeginFrame and EndFrame.
type Context struct {
	fonts FontAtlas
	input InputState

	draw   DrawList
	frame  *Frame
	margin [2]float32
	frameN uint64

	state map[string]widgetState
	seen  map[string]int
}

func NewContext() *Context {
	return &Context{
		margin: defaultMargin,
		state:  make(map[string]widgetState),
		seen:   make(map[string]int),
	}
}

// Fonts exposes the atlas builder. AddFont must succeed before the first
// frame; the atlas is read-only afterwards.
func (c *Context) Fonts() *FontAtlas { return &c.fonts }

// Input exposes the mutable input snapshot for the event boundary. All
// pending events must be applied before BeginFrame for the same frame.
func (c *Context) Input() *InputState { return &c.input }

// SetMargin sets the layout origin used at BeginFrame.
func (c *Context) SetMargin(x, y float32) { c.margin = [2]float32{x, y} }

// BeginFrame clears the draw list, resets the layout cursor to the margin
// and returns a handle valid until EndFrame. Beginning a new frame while one
// is active invalidates the stale handle; the new frame starts clean.
func (c *Context) BeginFrame() *Frame {
	if c.frame != nil {
		slog.Warn("ui: BeginFrame while a frame is active, dropping stale frame")
		c.frame.ctx = nil
	}
	c.draw = DrawList{}
	clear(c.seen)
	c.frameN++
	f := &Frame{ctx: c, pen: c.margin, left: c.margin[0]}
	c.frame = f
	return f
}

// EndFrame finalizes the frame and returns the accumulated draw list by
// value, invalidating the frame handle. Calling it with no active frame
// returns ErrNoFrame.
func (c *Context) EndFrame() (DrawList, error) {
	if c.frame == nil {
		return DrawList{}, ErrNoFrame
	}
	c.frame.ctx = nil
	c.frame = nil

	// Drop state for widgets not evaluated this frame. A press that begins
	// while a widget is skipped must not read as a fresh transition when the
	// widget reappears, and the map stays bounded by the live widget set.
	for id, st := range c.state {
		if st.lastFrame != c.frameN {
			delete(c.state, id)
		}
	}

	out := c.draw
	c.draw = DrawList{}
	return out, nil
}

// Frame is the handle for widget calls within exactly one frame. Widget
// calls on an ended or superseded frame are defined no-ops: Text draws
// nothing, Button reports false.
type Frame struct {
	ctx  *Context
	pen  [2]float32
	left float32 // x the pen returns to on a line break
}

func (f *Frame) valid() bool { return f.ctx != nil && f.ctx.frame == f }

// Cursor reports the current layout cursor position.
func (f *Frame) Cursor() (x, y float32) { return f.pen[0], f.pen[1] }

// Measure reports the pixel extent label would occupy.
func (f *Frame) Measure(label string) (w, h float32) {
	if !f.valid() {
		return 0, 0
	}
	return f.ctx.fonts.Measure(label)
}

// Text emits one quad per mapped rune at the layout cursor and advances the
// cursor by the glyph advances. Unmapped runes draw nothing and advance by a
// fallback width. A newline returns the pen to the line start.
func (f *Frame) Text(label string) {
	if !f.valid() {
		return
	}
	f.drawString(label, textColor)
}

// Button draws a padded background rect at the layout cursor with the label
// on top, then advances the cursor past it. It reports true exactly once per
// discrete press: on the frame where the primary button goes down while the
// pointer is inside the rect. Holding does not re-trigger.
func (f *Frame) Button(label string) bool {
	if !f.valid() {
		return false
	}
	c := f.ctx
	fonts := &c.fonts

	tw, th := fonts.Measure(label)
	x, y := f.pen[0], f.pen[1]
	w := tw + 2*buttonPadding
	h := th + 2*buttonPadding

	cur := c.input.CursorPos
	inside := cur[0] >= x && cur[0] <= x+w && cur[1] >= y && cur[1] <= y+h
	down := c.input.MouseButtons[MousePrimary]

	id := f.widgetID(label)
	st, known := c.state[id]
	if !known {
		// First observation seeds the edge detector: a widget appearing
		// under an already-held button must not click.
		st.wasDown = down
	}
	clicked := inside && down && !st.wasDown
	st.wasDown = down
	st.lastFrame = c.frameN
	c.state[id] = st

	bg := buttonIdleBg
	if inside && down {
		bg = bg.Scale(pressedScale)
	} else if inside {
		bg = bg.Scale(hoverScale)
	}

	// Background first, label glyphs after: fixed draw order within the list.
	su, sv := fonts.solidUV()
	c.draw.quad(x, y, x+w, y+h, su, sv, su, sv, bg)
	c.drawStringAt(label, textColor, [2]float32{x + buttonPadding, y + buttonPadding}, x+buttonPadding)

	f.pen[0] = x + w
	return clicked
}

func (f *Frame) widgetID(label string) string {
	n := f.ctx.seen[label]
	f.ctx.seen[label] = n + 1
	return label + "##" + strconv.Itoa(n)
}

func (f *Frame) drawString(s string, col colors.Color) {
	f.pen = f.ctx.drawStringAt(s, col, f.pen, f.left)
}

// drawStringAt emits glyph quads for s starting at pen and returns the final
// pen position. A newline returns the pen x to left.
func (c *Context) drawStringAt(s string, col colors.Color, pen [2]float32, left float32) [2]float32 {
	fonts := &c.fonts
	for _, r := range s {
		if r == '\n' {
			pen[0] = left
			pen[1] += fonts.lineH
			continue
		}
		g, ok := fonts.glyph(r)
		if !ok {
			pen[0] += fonts.fallback
			continue
		}
		x := pen[0] + g.BearingX
		y := pen[1] + fonts.ascent - g.BearingY
		c.draw.quad(x, y, x+float32(g.W), y+float32(g.H), g.U0, g.V0, g.U1, g.V1, col)
		pen[0] += g.Advance
	}
	return pen
}
