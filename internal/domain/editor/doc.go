// Package editor holds the text buffer behind the JSON editor pane and the
// search primitives that operate on it.
//
// Positions are zero-based lines and rune columns. A Searcher drives a
// case-insensitive literal search cursor through two states (idle and
// searching) and wraps around the buffer once before reporting ErrNotFound.
// ReplaceAll applies a global ECMAScript regular expression to the whole
// buffer.
package editor
