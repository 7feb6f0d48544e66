// Test Type: Unit Test
// Description: Tests for the exclude package - pattern compilation and path exclusion

package exclude_test

import (
	"testing"

	"github.com/arthur-debert/packup/pkg/errors"
	"github.com/arthur-debert/packup/pkg/exclude"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dirSet builds a DirExistsFunc over a fixed set of directory paths
func dirSet(dirs ...string) func(string) bool {
	set := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		set[d] = true
	}
	return func(rel string) bool { return set[rel] }
}

func compileAll(t *testing.T, raws []string, dirExists func(string) bool) []exclude.Pattern {
	t.Helper()
	patterns, err := exclude.CompileAll(raws, dirExists)
	require.NoError(t, err)
	return patterns
}

func TestCompile_Classification(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		dirs    []string
		want    exclude.PatternKind
	}{
		{"bare_name_of_existing_dir", "scratch", []string{"scratch"}, exclude.PatternDirectory},
		{"trailing_slash_without_dir", "scratch/", nil, exclude.PatternDirectory},
		{"bare_name_no_dir_is_literal", "scratch", nil, exclude.PatternLiteral},
		{"glob_star", "*.bak", nil, exclude.PatternGlob},
		{"glob_doublestar", "Data/Backup/**", nil, exclude.PatternGlob},
		{"backslash_separators", `Data\Backup\**`, nil, exclude.PatternGlob},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := exclude.Compile(tt.pattern, dirSet(tt.dirs...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Kind)
		})
	}
}

func TestCompile_InvalidPatterns(t *testing.T) {
	for _, pattern := range []string{"", "   ", "/", "../outside", "a/../../b"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := exclude.Compile(pattern, nil)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
		})
	}
}

func TestPattern_Match(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		dirs    []string
		path    string
		want    bool
	}{
		// Directory shorthand covers the whole subtree
		{"shorthand_matches_dir_itself", "scratch", []string{"scratch"}, "scratch", true},
		{"shorthand_matches_deep_child", "scratch", []string{"scratch"}, "scratch/a/b/c.txt", true},
		{"shorthand_with_slash", "scratch/", nil, "scratch/a.txt", true},
		{"shorthand_does_not_match_sibling", "scratch", []string{"scratch"}, "scratch2/a.txt", false},

		// Literal patterns match exactly one path
		{"literal_exact", "docs/NOTES.txt", nil, "docs/NOTES.txt", true},
		{"literal_case_insensitive", "docs/NOTES.txt", nil, "Docs/notes.TXT", true},
		{"literal_no_partial_segment", "docs/NOTE", nil, "docs/NOTES.txt", false},

		// ** consumes zero or more whole segments
		{"doublestar_zero_segments", "Data/**", nil, "Data", true},
		{"doublestar_many_segments", "Data/**", nil, "Data/a/b/c", true},
		{"doublestar_mid_pattern", "a/**/z.txt", nil, "a/z.txt", true},
		{"doublestar_mid_pattern_deep", "a/**/z.txt", nil, "a/b/c/z.txt", true},
		{"doublestar_mid_pattern_miss", "a/**/z.txt", nil, "a/b/c/y.txt", false},

		// * stays within one segment
		{"star_single_segment", "Data/*", nil, "Data/a", true},
		{"star_does_not_cross_separator", "Data/*", nil, "Data/a/b", false},
		{"star_extension", "*.bak", nil, "save.bak", true},
		{"star_extension_not_nested", "*.bak", nil, "deep/save.bak", false},
		{"star_extension_recursive", "**/*.bak", nil, "deep/save.bak", true},
		{"star_infix", "tmp-*-old", nil, "tmp-build-old", true},

		// Extensionless files are not matched by extension globs
		{"extension_glob_needs_dot", "**/*.bak", nil, "deep/Makefile", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := exclude.Compile(tt.pattern, dirSet(tt.dirs...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Match(tt.path), "pattern %q against %q", tt.pattern, tt.path)
		})
	}
}

func TestMatcher_DotDirectories(t *testing.T) {
	m := exclude.NewMatcher(nil, []string{"bin", "obj"}, "")

	t.Run("dot_dir_at_root", func(t *testing.T) {
		assert.True(t, m.IsExcluded(".git", true))
	})
	t.Run("contents_of_dot_dir", func(t *testing.T) {
		assert.True(t, m.IsExcluded(".git/config", false))
		assert.True(t, m.IsExcluded(".svn/pristine/ab/cd.svn-base", false))
	})
	t.Run("nested_dot_dir", func(t *testing.T) {
		assert.True(t, m.IsExcluded("src/.cache", true))
		assert.True(t, m.IsExcluded("src/.cache/entry", false))
	})
	t.Run("dot_files_are_retained", func(t *testing.T) {
		assert.False(t, m.IsExcluded(".gitignore", false))
		assert.False(t, m.IsExcluded("src/.editorconfig", false))
	})
}

func TestMatcher_DefaultDirectories(t *testing.T) {
	m := exclude.NewMatcher(nil, []string{"bin", "obj"}, "")

	assert.True(t, m.IsExcluded("bin", true))
	assert.True(t, m.IsExcluded("obj", true))
	assert.True(t, m.IsExcluded("bin/Debug/app.dll", false))

	// Only directly under the project root
	assert.False(t, m.IsExcluded("src/bin", true))
	assert.False(t, m.IsExcluded("src/bin/tool", false))

	// A root-level file named bin is not a directory
	assert.False(t, m.IsExcluded("bin", false))
}

func TestMatcher_PackageCache(t *testing.T) {
	m := exclude.NewMatcher(nil, nil, "packages")

	assert.True(t, m.IsExcluded("packages", true))
	assert.True(t, m.IsExcluded("packages/Newtonsoft.Json/lib/net45/n.dll", false))
	assert.False(t, m.IsExcluded("packages.config", false))
	assert.False(t, m.IsExcluded("packages", false))
}

func TestMatcher_PatternsAndAncestors(t *testing.T) {
	patterns := compileAll(t, []string{"Data/Backup/**", "Logs/*"}, dirSet())
	m := exclude.NewMatcher(patterns, nil, "")

	assert.True(t, m.IsExcluded("Data/Backup", true))
	assert.True(t, m.IsExcluded("Data/Backup/2024/dump.bak", false))
	assert.False(t, m.IsExcluded("Data/Input/a.csv", false))

	// Logs/* matches direct children; grandchildren fall out because the
	// matched child directory is their ancestor
	assert.True(t, m.IsExcluded("Logs/2024", true))
	assert.True(t, m.IsExcluded("Logs/2024/jan.log", false))
	assert.False(t, m.IsExcluded("Logs", true))
}

func TestMatcher_DirectoryShorthandExcludesSubtree(t *testing.T) {
	for _, raw := range []string{"scratch", "scratch/"} {
		t.Run(raw, func(t *testing.T) {
			patterns := compileAll(t, []string{raw}, dirSet("scratch"))
			m := exclude.NewMatcher(patterns, nil, "")

			assert.True(t, m.IsExcluded("scratch", true))
			assert.True(t, m.IsExcluded("scratch/deep/file.txt", false))
			assert.False(t, m.IsExcluded("scratch.txt", false))
		})
	}
}
