// Package tui provides the Bubble Tea back end: it displays the frames the
// match loop paints, turns key events into per-player key state, rings the
// terminal bell and shows the match history table.
package tui

// FrameMsg carries a fully rendered frame from the match loop.
type FrameMsg string

// MatchDoneMsg tells the program that the match loop has returned.
type MatchDoneMsg struct{}
