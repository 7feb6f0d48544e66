// Package types defines the shared interfaces used across packup packages.
//
// The central type is FS, the filesystem seam every component reads and
// writes through. Tests substitute an in-memory implementation; production
// code uses the OS-backed one from pkg/filesystem.
package types
