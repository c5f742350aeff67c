package game

// DebugState holds global debug flags that persist across game resets
type DebugState struct {
	ShowMines bool // Outline every mine while the game runs
}

// Global debug state instance (persists across game resets)
var globalDebugState = &DebugState{
	ShowMines: false,
}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}
