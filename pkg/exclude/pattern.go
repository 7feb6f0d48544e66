package exclude

import (
	"strings"

	"github.com/arthur-debert/packup/pkg/errors"
	"github.com/arthur-debert/packup/pkg/types"
)

// PatternKind classifies how a compiled pattern is evaluated
type PatternKind int

const (
	// PatternLiteral matches one exact path (case-insensitively)
	PatternLiteral PatternKind = iota

	// PatternDirectory is a shorthand for an existing directory and its
	// entire subtree
	PatternDirectory

	// PatternGlob is evaluated segment-wise with * and ** wildcards
	PatternGlob
)

// Pattern is a compiled exclusion pattern. Compile once per pack run;
// Match is pure and safe for reuse.
type Pattern struct {
	// Raw is the pattern as written in the manifest
	Raw string

	// Kind records how the pattern was classified at compile time
	Kind PatternKind

	segments []string
}

// Compile normalizes and classifies a single manifest pattern. dirExists
// is consulted only here, to decide whether a bare name is a directory
// shorthand; the returned Pattern never touches the filesystem.
func Compile(raw string, dirExists types.DirExistsFunc) (Pattern, error) {
	norm := normalize(raw)
	if norm == "" {
		return Pattern{}, errors.Newf(errors.ErrPatternInvalid,
			"exclusion pattern %q is empty after normalization", raw).
			WithDetail("pattern", raw)
	}
	for _, seg := range strings.Split(norm, "/") {
		if seg == ".." {
			return Pattern{}, errors.Newf(errors.ErrPatternInvalid,
				"exclusion pattern %q escapes the project root", raw).
				WithDetail("pattern", raw)
		}
	}

	p := Pattern{Raw: raw}

	hasGlob := strings.Contains(norm, "*")
	trailingSep := strings.HasSuffix(normalizeSeparators(raw), "/")

	switch {
	case !hasGlob && (trailingSep || (dirExists != nil && dirExists(norm))):
		// A bare directory name means "this directory and everything
		// beneath it", whether or not the user wrote the trailing slash.
		p.Kind = PatternDirectory
		p.segments = append(strings.Split(norm, "/"), "**")
	case hasGlob:
		p.Kind = PatternGlob
		p.segments = strings.Split(norm, "/")
	default:
		p.Kind = PatternLiteral
		p.segments = strings.Split(norm, "/")
	}

	return p, nil
}

// CompileAll compiles every pattern in order, failing on the first invalid one
func CompileAll(raws []string, dirExists types.DirExistsFunc) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(raws))
	for _, raw := range raws {
		p, err := Compile(raw, dirExists)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Match reports whether the pattern matches a slash-separated path
// relative to the project root
func (p Pattern) Match(rel string) bool {
	if rel == "" {
		return false
	}
	return matchSegments(p.segments, strings.Split(rel, "/"))
}

// normalizeSeparators canonicalizes path separators without any further cleanup
func normalizeSeparators(pattern string) string {
	return strings.ReplaceAll(pattern, "\\", "/")
}

// normalize canonicalizes separators and strips redundant leading/trailing
// markers so patterns compare against clean relative paths
func normalize(pattern string) string {
	norm := normalizeSeparators(strings.TrimSpace(pattern))
	norm = strings.TrimPrefix(norm, "./")
	norm = strings.Trim(norm, "/")
	for strings.Contains(norm, "//") {
		norm = strings.ReplaceAll(norm, "//", "/")
	}
	return norm
}
