// Package libdiff computes path-level differences between two ir trees.
//
// Field labels of each struct pair are diffed as rune sequences with
// go-diff, so insertions and deletions are reported once at the field
// that changed; fields present on both sides are compared recursively.
// List elements are aligned by a summary of their struct id and labels
// before recursing. Changed strings carry an inline word-level diff.
//
// Element paths of changes inside lists, and of insertions, use the
// index in the newer tree; deletions use the index in the older tree.
package libdiff
