// Package plan synthesizes the decode and encode operation sequences of a
// declared type from its field descriptors.
//
// Synthesis pipeline:
//  1. Merge the field paths into one tree (package tree)
//  2. Annotate scopes as required or probed (package presence)
//  3. Emit the decode sequence: open or probe every scope once, then
//     assign every leaf, with one IfPresent/Else/EndIf block per probed
//     scope carrying the fallback cascade
//  4. Emit the encode sequence: open every scope for writing, then write
//     every leaf, nilable ones only when non-nil
//  5. Derive the initializer from the type kind
//
// Plans are plain data: the interpreter executes them, the renderer turns
// them into Go source and Export serializes them for golden files.
package plan
