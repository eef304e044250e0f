// Package field holds the normalized per-field descriptors consumed by the
// path tree builder and the synthesizers.
//
// A descriptor names a field, locates its value with an ordered path of key
// segments and carries a Policy describing what happens when the value is
// absent from the decoding source:
//   - Required: absence is a decode failure
//   - Optional: absence resolves to nil
//   - Implicit: implicitly unwrapped optional, absence resolves to nil
//   - Defaulted: absence resolves to the declared default value
package field
