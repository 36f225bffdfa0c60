package core

import (
	"log/slog"
	"runtime"
	"time"
)

// Run wires the platform window + renderer and executes the frame loop.
// Each iteration applies all pending windowing events before the frame is
// evaluated, so widget hit-testing always sees the latest input.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{Window: win, Renderer: rend, start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		app.OnEvent(eng, ev)
		if _, ok := ev.(EventResize); ok {
			fw, fh := win.FramebufferSize()
			if fw < 1 || fh < 1 {
				return
			}
			rend.Resize(fw, fh)
		}
	})

	if err := app.OnStart(eng); err != nil {
		return err
	}

	for !win.ShouldClose() {
		// All pending input is applied here, strictly before the frame.
		win.PollEvents()

		fw, fh := win.FramebufferSize()
		if fw < 1 || fh < 1 {
			// Minimized or zero-sized surface: skip the frame, never abort.
			time.Sleep(10 * time.Millisecond)
			continue
		}

		app.OnRender(eng)
		win.SwapBuffers()
	}

	app.OnShutdown(eng)
	slog.Info("engine exit")
	return nil
}
