// Package diagnostic provides structured errors, warnings and notes
// produced while validating schema files, each tagged with the type and
// field it relates to.
package diagnostic
