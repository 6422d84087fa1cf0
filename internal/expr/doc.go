// Package expr edits the calculator display string.
//
// Every function is a pure transform from the current display (and, where
// relevant, whether it holds a freshly computed result) to the next display.
// Operators are committed as " <op> " with single-space padding; "0" stands
// for the empty display and "Error" for a failed calculation.
package expr
