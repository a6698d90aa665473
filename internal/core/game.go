package core

// Game is the interface the platform drives.
// Games contain pure logic with no Bubble Tea dependency; the platform handles
// input mapping, timing and terminal rendering.
type Game interface {
	// ID returns a unique identifier used for CLI commands and run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in InputFrame) StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *Screen)

	// State returns the current game state.
	State() GameState
}
