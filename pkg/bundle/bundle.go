// Package bundle embeds a pre-extracted runtime package into the pack
// output for self-contained deployment. The extracted tree is copied
// verbatim, packaging-only metadata is stripped from the copy, and an
// integrity digest of the original archive is written alongside it.
package bundle

import (
	"crypto/sha512"
	"encoding/base64"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/packup/pkg/errors"
	"github.com/arthur-debert/packup/pkg/logging"
	"github.com/arthur-debert/packup/pkg/types"
)

// Packaging artifacts that carry no runtime value and are stripped from
// the copied tree
var strippedArtifacts = []string{
	"[Content_Types].xml",
	"_rels",
	"package",
}

// Identity describes a bundled runtime, parsed from its package name
// (e.g. "KRE-Mono.1.0.0-beta1" is flavor Mono, version 1.0.0-beta1)
type Identity struct {
	Name    string
	Version string
	Flavor  string
}

// Bundler copies runtime packages into the output tree
type Bundler struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a bundler over the given filesystem
func New(fs types.FS) *Bundler {
	return &Bundler{
		fs:     fs,
		logger: logging.GetLogger("bundle"),
	}
}

// Bundle copies the extracted runtime at runtimeDir into
// outPackagesDir/<name>, writes the <name>.nupkg.sha512 sidecar, and
// strips packaging metadata from the copy. The runtime missing from the
// cache is fatal; no fetch is attempted.
func (b *Bundler) Bundle(runtimeName, runtimeDir, outPackagesDir string) (*Identity, error) {
	info, err := b.fs.Stat(runtimeDir)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrRuntimeNotFound,
			"runtime %q not found in package cache at %s", runtimeName, runtimeDir).
			WithDetail("runtime", runtimeName)
	}

	dest := filepath.Join(outPackagesDir, runtimeName)
	b.logger.Info().Str("runtime", runtimeName).Str("dest", dest).Msg("Bundling runtime")

	if err := b.copyTree(runtimeDir, dest); err != nil {
		return nil, err
	}

	if err := b.writeDigest(runtimeName, runtimeDir, outPackagesDir); err != nil {
		return nil, err
	}

	for _, artifact := range strippedArtifacts {
		if err := b.fs.RemoveAll(filepath.Join(dest, artifact)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite,
				"failed to strip %s from bundled runtime", artifact)
		}
	}

	id := ParseIdentity(runtimeName)
	return &id, nil
}

// writeDigest hashes the original package archive, not the extracted
// tree, and writes the base64 SHA-512 sidecar
func (b *Bundler) writeDigest(runtimeName, runtimeDir, outPackagesDir string) error {
	archive := filepath.Join(runtimeDir, runtimeName+".nupkg")
	data, err := b.fs.ReadFile(archive)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRuntimeNotFound,
			"runtime archive %s missing from package cache", archive)
	}

	sum := sha512.Sum512(data)
	digest := base64.StdEncoding.EncodeToString(sum[:])

	sidecar := filepath.Join(outPackagesDir, runtimeName+".nupkg.sha512")
	if err := b.fs.WriteFile(sidecar, []byte(digest), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite,
			"failed to write digest sidecar %s", sidecar)
	}
	return nil
}

// copyTree copies src into dest verbatim, empty directories included
func (b *Bundler) copyTree(src, dest string) error {
	if err := b.fs.MkdirAll(dest, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dest)
	}

	entries, err := b.fs.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "failed to read directory %s", src)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			if err := b.copyTree(srcPath, destPath); err != nil {
				return err
			}
			continue
		}

		data, err := b.fs.ReadFile(srcPath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileCopy, "failed to read %s", srcPath)
		}
		perm := fs.FileMode(0644)
		if info, err := entry.Info(); err == nil && info.Mode().Perm() != 0 {
			perm = info.Mode().Perm()
		}
		if err := b.fs.WriteFile(destPath, data, perm); err != nil {
			return errors.Wrapf(err, errors.ErrFileCopy, "failed to write %s", destPath)
		}
	}
	return nil
}

// ParseIdentity splits a runtime package name into flavor and version.
// The name format is <product>-<flavor>[-<arch>].<version>.
func ParseIdentity(runtimeName string) Identity {
	id := Identity{Name: runtimeName}

	dot := strings.Index(runtimeName, ".")
	if dot < 0 {
		return id
	}
	id.Version = runtimeName[dot+1:]

	parts := strings.Split(runtimeName[:dot], "-")
	if len(parts) > 1 {
		id.Flavor = parts[1]
	}
	return id
}
