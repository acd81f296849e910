// Package ui provides theme and color support for seqcalc's terminal output.
// It defines ANSI color schemes, the lipgloss styles used for titles and
// table headers, and honors NO_COLOR.
package ui
