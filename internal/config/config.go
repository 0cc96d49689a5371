package config

import "sync"

// RuntimeSettings holds values the render loop reads every frame and that a
// config reload may change.
type RuntimeSettings struct {
	mu               sync.RWMutex
	fpsLimit         int // 0 means uncapped
	showStats        bool
	mouseSensitivity float64
}

var globalRuntimeSettings = &RuntimeSettings{
	fpsLimit:         0,
	mouseSensitivity: 0.1146,
}

// GetFPSLimit returns the frame cap, 0 when uncapped
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame cap
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRuntimeSettings.fpsLimit = limit
}

// GetShowStats reports whether the frame statistics line is drawn
func GetShowStats() bool {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.showStats
}

func SetShowStats(show bool) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.showStats = show
}

// GetMouseSensitivity returns the look speed in degrees per pixel
func GetMouseSensitivity() float64 {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.mouseSensitivity
}

func SetMouseSensitivity(s float64) {
	if s <= 0 {
		return
	}
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.mouseSensitivity = s
}

// ApplyRuntime copies the per-frame settings out of cfg.
func ApplyRuntime(cfg *Config) {
	SetFPSLimit(cfg.Window.FPSLimit)
	SetShowStats(cfg.Window.ShowStats)
	SetMouseSensitivity(cfg.Controls.MouseSensitivity)
}
