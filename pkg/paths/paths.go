// Package paths provides centralized path handling for packup.
// It resolves the dependency cache and runtime home locations from
// caller-supplied overrides and provides the relative-path computations
// the config writer and script generator share. Environment state is
// the CLI's concern: the resolver only sees already-read values.
package paths

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names, read by the CLI and passed in as
// overrides. Nothing in this package consults the environment.
const (
	// EnvPackagesDir overrides the dependency cache location
	EnvPackagesDir = "KRE_PACKAGES"

	// EnvRuntimeHome overrides the runtime home location
	EnvRuntimeHome = "KRE_HOME"
)

// Default directories and files
const (
	// DefaultRuntimeHomeDir is the directory name for the runtime home,
	// relative to the user's home directory
	DefaultRuntimeHomeDir = ".kre"

	// RuntimePackagesDir is the subdirectory of the runtime home that
	// holds extracted runtime packages
	RuntimePackagesDir = "packages"
)

// Paths holds the resolved locations for one pack run
type Paths struct {
	// ProjectRoot is the absolute path of the project being packed
	ProjectRoot string

	// PackagesDir is the dependency cache location
	PackagesDir string

	// RuntimeHome is the root under which extracted runtime packages live
	RuntimeHome string
}

// New resolves paths for a project. An empty packagesOverride falls
// back to the project-local default; an empty runtimeHomeOverride falls
// back to ~/.kre.
func New(projectRoot, packagesOverride, runtimeHomeOverride, packagesDirName string) *Paths {
	p := &Paths{ProjectRoot: projectRoot}

	if packagesOverride != "" {
		p.PackagesDir = packagesOverride
	} else {
		p.PackagesDir = filepath.Join(projectRoot, packagesDirName)
	}

	if runtimeHomeOverride != "" {
		p.RuntimeHome = runtimeHomeOverride
	} else {
		p.RuntimeHome = filepath.Join(xdg.Home, DefaultRuntimeHomeDir)
	}

	return p
}

// RuntimePackageDir returns the expected location of an extracted runtime
// package inside the runtime home
func (p *Paths) RuntimePackageDir(runtimeName string) string {
	return filepath.Join(p.RuntimeHome, RuntimePackagesDir, runtimeName)
}

// PackageCacheRel reports whether the dependency cache lives under the
// project root, and if so its path relative to the root (slash-separated).
// The partitioner uses this to keep the cache out of both output trees.
func (p *Paths) PackageCacheRel() (string, bool) {
	rel, err := filepath.Rel(p.ProjectRoot, p.PackagesDir)
	if err != nil || rel == "." || rel == ".." || filepath.IsAbs(rel) {
		return "", false
	}
	if len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Relative returns the path from one directory to another in host
// separator convention. It falls back to the absolute target when no
// relative path exists (distinct volumes on Windows).
func Relative(fromDir, toDir string) string {
	rel, err := filepath.Rel(fromDir, toDir)
	if err != nil {
		return toDir
	}
	return rel
}
