package main

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/chxry/u/engine/core"
	glbackend "github.com/chxry/u/engine/gfx/gl"
	"github.com/chxry/u/engine/platform"
	"github.com/chxry/u/engine/ui"
)

const fontSizePx = 18

type App struct {
	ctx *ui.Context
}

func (a *App) OnStart(e *core.Engine) error {
	a.ctx = ui.NewContext()
	if err := a.ctx.Fonts().AddFont(goregular.TTF, fontSizePx); err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	w, h := a.ctx.Fonts().Size()
	if err := e.Renderer.UploadFontAtlas(w, h, a.ctx.Fonts().BuildTex()); err != nil {
		return fmt.Errorf("upload font atlas: %w", err)
	}
	slog.Info("font atlas built", "width", w, "height", h)
	return nil
}

func (a *App) OnRender(e *core.Engine) {
	f := a.ctx.BeginFrame()
	f.Text("hello floppa")
	if f.Button("button") {
		slog.Info("pressed")
	}
	out, err := a.ctx.EndFrame()
	if err != nil {
		slog.Error("end frame", "err", err)
		return
	}

	fw, fh := e.Window.FramebufferSize()
	e.Renderer.Render(ui.Consts{ScreenSize: [2]float32{float32(fw), float32(fh)}}, out)
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	if a.ctx == nil {
		return
	}
	in := a.ctx.Input()
	switch v := ev.(type) {
	case core.EventMouseMove:
		in.CursorPos = [2]float32{float32(v.X), float32(v.Y)}
	case core.EventMouseButton:
		if idx, ok := v.Button.FlagIndex(); ok {
			in.MouseButtons[idx] = v.Pressed
		}
	}
}

func (a *App) OnShutdown(e *core.Engine) {}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg := core.Config{
		Title:  "u",
		Width:  800,
		Height: 600,
		VSync:  true,
	}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(&App{}, cfg, newWindow, newRenderer); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}
