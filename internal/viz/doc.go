// Package viz renders numerical results in the terminal.
//
//   - [Canvas]: braille pixel canvas with a world-space [Viewport]
//   - [Player]: Bubble Tea model animating an epicycle chain
//   - lipgloss styles shared by the CLI output
//
// # Player keys
//
//	Space - Pause/Resume
//	R     - Restart the period
//	+/-   - Add or drop a circle
//	[ ]   - Halve or double the speed
//	C     - Toggle the circle chain
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
