// Package ui renders console output: the per-project header lines, the
// project table for list, and the yes/no confirmation prompt. Styling is
// only applied when the destination is a terminal.
package ui
