package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"scene-viewer/internal/config"
	"scene-viewer/internal/input"
	"scene-viewer/internal/logger"
	"scene-viewer/internal/profiling"
	"scene-viewer/internal/ui/widget"
)

const slowFrame = 20 * time.Millisecond

// App runs the window loop around one Session.
type App struct {
	window  *glfw.Window
	input   *input.InputManager
	session *Session
	watcher *config.Watcher
	limiter *FPSLimiter
	log     *slog.Logger
	title   string

	cursor  cursorTracker
	pointer widget.Pointer
}

// NewApp wires the window callbacks. watcher may be nil when hot reload is off.
func NewApp(window *glfw.Window, im *input.InputManager, session *Session, watcher *config.Watcher, title string, log *slog.Logger) *App {
	a := &App{
		window:  window,
		input:   im,
		session: session,
		watcher: watcher,
		limiter: NewFPSLimiter(),
		log:     log,
		title:   title,
	}
	SetupInputHandlers(a)
	a.onLockChange(im.IsPointerLocked())
	return a
}

// Run ticks until the window is closed or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	for !a.window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.tick()
	}
	return nil
}

func (a *App) tick() {
	profiling.ResetFrame()
	start := time.Now()

	glfw.PollEvents()
	a.applyReloads()
	if a.input.JustPressed(input.ActionToggleStats) {
		a.session.ToggleStats()
	}
	a.routePointer()

	a.session.Tick(start)
	a.window.SwapBuffers()

	if d := time.Since(start); d > slowFrame {
		st := a.session.Renderer.LastStats()
		a.log.Debug("slow frame", "duration", d, "top", profiling.TopN(5),
			"draws", st.DrawCalls, "triangles", st.Triangles, "culled", st.Culled)
	}

	a.input.PostUpdate()
	a.limiter.Wait(!a.input.IsPointerLocked())
}

// routePointer hands the unlocked pointer to the settings panel. A click the
// panel does not use locks the pointer.
func (a *App) routePointer() {
	ptr := a.pointer
	a.pointer.JustPressed = false
	if a.input.IsPointerLocked() {
		return
	}
	if !a.session.HandlePointer(ptr) && ptr.JustPressed {
		a.input.Lock()
	}
}

// applyReloads takes at most one pending config from the watcher.
func (a *App) applyReloads() {
	if a.watcher == nil {
		return
	}
	select {
	case cfg := <-a.watcher.Updates():
		logger.SetLevel(cfg.Logging.Level)
		a.session.Apply(cfg)
		a.log.Info("config reloaded")
	default:
	}
}

func (a *App) onLockChange(locked bool) {
	a.cursor.reset()
	if locked {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		a.window.SetTitle(a.title)
		return
	}
	a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	a.window.SetTitle(a.title + " (click to play)")
}

// RefreshRender repaints during a live resize, when the loop is blocked in PollEvents.
func (a *App) RefreshRender() {
	a.session.Redraw()
	a.window.SwapBuffers()
}
