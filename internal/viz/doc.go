// Package viz renders a running simulation in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: steps an engine each frame and draws its published snapshot
//   - [NewInteractiveApp]: preset picker that launches a [Model]
//   - [Canvas]: braille pixel canvas with per-cell color
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	S     - Single tick while paused
//	+/-   - Ticks per frame
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
package viz
