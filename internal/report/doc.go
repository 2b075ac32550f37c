// Package report writes a YAML record of one baseline update run: which
// projects were visited, in order, and how the run ended.
package report
