package core

import (
	"time"

	"github.com/chxry/u/engine/ui"
)

// App defines the application hooks around the frame loop.
type App interface {
	OnStart(e *Engine) error // called once after window/renderer init; an error aborts startup
	OnRender(e *Engine)      // evaluate and draw exactly one frame
	OnEvent(e *Engine, ev Event)
	OnShutdown(e *Engine)
}

// Engine exposes core services to the App.
type Engine struct {
	Window   Window
	Renderer Renderer
	start    time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Window abstraction over the platform layer.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
}

// Renderer abstraction: composites the procedural background pass and the
// UI draw list into the window surface.
type Renderer interface {
	Init() error
	Resize(w, h int)
	UploadFontAtlas(w, h int, pix []byte) error
	Render(consts ui.Consts, list ui.DrawList)
	Shutdown()
}

// Event model for the windowing boundary.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button  MouseButton
	Pressed bool
}

func (EventMouseButton) isEvent() {}

// MouseButton identifies a pointer button at the windowing boundary.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
)

// FlagIndex maps a button to its fixed input-state ordinal: primary 0,
// middle 2, secondary 3 (1 is reserved). Unknown buttons report ok=false
// and must be ignored.
func (b MouseButton) FlagIndex() (idx int, ok bool) {
	switch b {
	case MouseButtonLeft:
		return ui.MousePrimary, true
	case MouseButtonMiddle:
		return ui.MouseMiddle, true
	case MouseButtonRight:
		return ui.MouseSecondary, true
	default:
		return 0, false
	}
}

// Config for the engine run.
type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}
