// Package viz draws figures in the terminal.
//
//   - [Canvas]: braille dot canvas, 2x4 dots per cell
//   - [Camera]: azimuth/elevation view of 3D figures with spring easing
//   - [DrawFigure], [DrawFrame] and [DrawContour]: figure renderers
//   - [LineChart]: asciigraph plot for curves sharing an evenly spaced x
//
// Colours come from a [Theme]; [NewStyles] turns one into lipgloss styles.
package viz
