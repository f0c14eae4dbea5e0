// Package viz renders simulation output for the terminal and for files.
//
//   - [PlotASCII]: multi-series concentration chart via asciigraph
//   - [SavePNG]: concentration-versus-time figure via gonum/plot
//   - [Model]: Bubble Tea replay of a computed trajectory
//   - [RenderSystem], [RenderFinal], [RenderMetrics]: lipgloss summaries
//
// # Replay Keys
//
//	Space - Pause/Resume playback
//	R     - Restart from t = 0
//	[ ]   - Step backward/forward while paused
//	+ -   - Change playback speed
//	T     - Cycle color themes
//	Q     - Quit
package viz
