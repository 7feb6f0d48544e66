// Package exclude implements the exclusion engine that decides, for every
// path in a project tree, whether it is kept or dropped during a pack run.
//
// Manifest patterns come in three flavors, classified at compile time:
//
//   - literal paths ("docs/NOTES.txt") which must match a path exactly
//   - directory shorthands ("scratch" or "scratch/") which exclude an
//     existing directory and everything beneath it
//   - globs ("Data/Backup/**", "*.bak") where `*` matches within one path
//     segment and `**` matches zero or more whole segments
//
// Directory shorthand depends on what currently exists on disk: a bare name
// is only expanded to "name/**" when a directory by that name is present
// under the project root. That lookup is injected as a types.DirExistsFunc
// so the evaluator itself stays filesystem-free.
//
// On top of the manifest patterns, a fixed set of rules always applies:
// dot-prefixed directories at any depth, the root-level bin and obj
// directories, and the dependency cache are never copied.
package exclude
