// Package gen renders decode and encode plans as Go source.
//
// Generation uses text/template + go/format. Each plan becomes one file
// holding:
//   - key constants, one per key table entry
//   - the struct, nilable fields as pointers
//   - a constructor; value types only take the fields without default
//   - Decode<Type> and Encode<Type> running the plan against the keyed
//     runtime, plus DecodeFrom / EncodeTo methods for reference types
//
// The generated decode function opens or probes every scope first, then
// assigns fields inside one if/else per probed scope, the else branch
// assigning the fallback of every field below it.
package gen
