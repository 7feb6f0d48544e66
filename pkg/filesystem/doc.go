// Package filesystem provides filesystem implementations for packup.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and an afero-backed adapter
// used by tests.
package filesystem
