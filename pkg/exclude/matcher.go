package exclude

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/packup/pkg/logging"
)

// Matcher answers the single question the partitioner asks: is this path
// excluded from the output trees?
type Matcher struct {
	patterns    []Pattern
	defaultDirs []string
	cacheRel    string
	logger      zerolog.Logger
}

// NewMatcher creates a matcher from compiled manifest patterns.
// defaultDirs are directory names excluded directly under the project root
// (bin and obj by default); cacheRel is the dependency cache's path
// relative to the root, or empty when the cache lives elsewhere.
func NewMatcher(patterns []Pattern, defaultDirs []string, cacheRel string) *Matcher {
	return &Matcher{
		patterns:    patterns,
		defaultDirs: defaultDirs,
		cacheRel:    strings.Trim(strings.ReplaceAll(cacheRel, "\\", "/"), "/"),
		logger:      logging.GetLogger("exclude.matcher"),
	}
}

// IsExcluded reports whether a slash-separated path relative to the
// project root is excluded. isDir distinguishes a directory from a file of
// the same name: dot-prefixed files are retained, dot-prefixed directories
// never are.
func (m *Matcher) IsExcluded(rel string, isDir bool) bool {
	rel = strings.Trim(strings.ReplaceAll(rel, "\\", "/"), "/")
	if rel == "" {
		return false
	}
	segs := strings.Split(rel, "/")

	// Dot-prefixed directories are out unconditionally, at any depth.
	// Only the final segment can be a file.
	for i, seg := range segs {
		if strings.HasPrefix(seg, ".") && (i < len(segs)-1 || isDir) {
			return true
		}
	}

	// bin and obj directly under the project root
	for _, d := range m.defaultDirs {
		if segs[0] == d && (len(segs) > 1 || isDir) {
			return true
		}
	}

	// The dependency cache is never copied
	if m.cacheRel != "" {
		if rel == m.cacheRel && isDir {
			return true
		}
		if strings.HasPrefix(rel, m.cacheRel+"/") {
			return true
		}
	}

	// Manifest patterns, against the path itself and each ancestor
	// directory: excluding a directory takes its whole subtree with it.
	for _, p := range m.patterns {
		if p.Match(rel) {
			m.logger.Trace().Str("path", rel).Str("pattern", p.Raw).Msg("Path excluded by pattern")
			return true
		}
		for i := 1; i < len(segs); i++ {
			if p.Match(strings.Join(segs[:i], "/")) {
				m.logger.Trace().Str("path", rel).Str("pattern", p.Raw).Msg("Ancestor excluded by pattern")
				return true
			}
		}
	}

	return false
}
