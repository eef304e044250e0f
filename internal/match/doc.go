// Package match finds near-miss names for diagnostics: a misspelled field
// type or type kind gets the closest known names as suggestions.
//
// Key functions:
//   - Normalize: folds case and separators before comparing
//   - Distance: edit distance between two strings
//   - Closest: ranks known names against an input
package match
