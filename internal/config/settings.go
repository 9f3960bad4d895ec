package config

import "sync"

// RuntimeSettings holds values the running game may change.
type RuntimeSettings struct {
	mu            sync.RWMutex
	fpsLimit      int
	showProfiling bool
}

var globalRuntimeSettings = &RuntimeSettings{
	fpsLimit: 60,
}

const (
	MinFPSLimit = 10
	MaxFPSLimit = 1000
)

// GetFPSLimit returns the frame cap; 0 means uncapped.
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame cap. 0 or less disables it.
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if limit <= 0 {
		globalRuntimeSettings.fpsLimit = 0
		return
	}
	// Clamp to reasonable values
	if limit < MinFPSLimit {
		limit = MinFPSLimit
	}
	if limit > MaxFPSLimit {
		limit = MaxFPSLimit
	}
	globalRuntimeSettings.fpsLimit = limit
}

func GetShowProfiling() bool {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.showProfiling
}

func ToggleShowProfiling() bool {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.showProfiling = !globalRuntimeSettings.showProfiling
	return globalRuntimeSettings.showProfiling
}
