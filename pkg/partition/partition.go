// Package partition walks a project tree once and classifies every
// retained path into the application and public destination trees.
package partition

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/packup/pkg/errors"
	"github.com/arthur-debert/packup/pkg/exclude"
	"github.com/arthur-debert/packup/pkg/logging"
	"github.com/arthur-debert/packup/pkg/types"
)

// Dest identifies which output tree a retained file is copied into
type Dest int

const (
	// DestApplication routes a file into approot/src/<project>/
	DestApplication Dest = iota

	// DestPublic routes a file into the public tree
	DestPublic
)

// File is one classified source file
type File struct {
	// SourceRel is the slash-separated path relative to the project root
	SourceRel string

	// Dest is the output tree the file belongs to
	Dest Dest

	// DestRel is the slash-separated path relative to the destination
	// tree root (for public files, relative to the webroot)
	DestRel string
}

// Partitioner performs the classification walk
type Partitioner struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a partitioner over the given filesystem
func New(fs types.FS) *Partitioner {
	return &Partitioner{
		fs:     fs,
		logger: logging.GetLogger("partition"),
	}
}

// DirExists returns the directory-existence query used during pattern
// normalization, bound to the project root. The exclusion evaluator itself
// never sees the filesystem.
func DirExists(fs types.FS, root string) types.DirExistsFunc {
	return func(rel string) bool {
		info, err := fs.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		return err == nil && info.IsDir()
	}
}

// Partition walks the tree under root depth-first and returns every
// retained file with its destination. webroot is the slash-separated
// public root relative to the project root, or empty for no public split.
// manifestName is always retained in the application tree, whatever the
// patterns say.
func (p *Partitioner) Partition(root, webroot, manifestName string, matcher *exclude.Matcher) ([]File, error) {
	webroot = strings.Trim(webroot, "/")

	var files []File
	if err := p.walk(root, "", webroot, manifestName, matcher, &files); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].SourceRel < files[j].SourceRel })

	p.logger.Debug().
		Int("fileCount", len(files)).
		Str("root", root).
		Msg("Partition complete")
	return files, nil
}

func (p *Partitioner) walk(root, rel, webroot, manifestName string, matcher *exclude.Matcher, out *[]File) error {
	abs := root
	if rel != "" {
		abs = filepath.Join(root, filepath.FromSlash(rel))
	}

	entries, err := p.fs.ReadDir(abs)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "failed to read directory %s", abs)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		entryRel := path.Join(rel, entry.Name())

		if entry.IsDir() {
			// A directory matched at its own path is pruned whole;
			// patterns aimed at deeper files keep the walk going.
			if matcher.IsExcluded(entryRel, true) {
				p.logger.Trace().Str("dir", entryRel).Msg("Pruned directory")
				continue
			}
			if err := p.walk(root, entryRel, webroot, manifestName, matcher, out); err != nil {
				return err
			}
			continue
		}

		// The manifest travels with the application tree no matter what
		if entryRel == manifestName {
			*out = append(*out, File{SourceRel: entryRel, Dest: DestApplication, DestRel: entryRel})
			continue
		}

		if matcher.IsExcluded(entryRel, false) {
			continue
		}

		*out = append(*out, classify(entryRel, webroot))
	}

	return nil
}

// classify routes one retained file. With a webroot configured, paths at
// or beneath it are public-only with webroot-relative destinations;
// everything else is application-only.
func classify(rel, webroot string) File {
	if webroot != "" && strings.HasPrefix(rel, webroot+"/") {
		return File{
			SourceRel: rel,
			Dest:      DestPublic,
			DestRel:   strings.TrimPrefix(rel, webroot+"/"),
		}
	}
	return File{SourceRel: rel, Dest: DestApplication, DestRel: rel}
}
