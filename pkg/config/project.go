package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	packuperr "github.com/arthur-debert/packup/pkg/errors"
	"github.com/arthur-debert/packup/pkg/logging"
	"github.com/arthur-debert/packup/pkg/types"
)

// ProjectSettings holds per-project packaging rules from .packup.toml
// that sit outside the manifest, such as extra exclusions maintained
// by the deployment side rather than the project authors.
type ProjectSettings struct {
	Exclude []ExcludeRule `toml:"exclude"`
}

// ExcludeRule names a path or pattern to drop from the output.
type ExcludeRule struct {
	Path string `toml:"path"`
}

// ExtraPatterns returns the exclusion patterns declared by the rules,
// skipping empty entries.
func (s *ProjectSettings) ExtraPatterns() []string {
	var patterns []string
	for _, rule := range s.Exclude {
		if rule.Path != "" {
			patterns = append(patterns, rule.Path)
		}
	}
	return patterns
}

// LoadProjectSettings reads the typed project rules from the project's
// .packup.toml (or packup.toml). A missing file yields empty settings.
func LoadProjectSettings(filesys types.FS, projectDir string) (*ProjectSettings, error) {
	for _, filename := range []string{".packup.toml", "packup.toml"} {
		path := filepath.Join(projectDir, filename)
		data, err := filesys.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, packuperr.Wrapf(err, packuperr.ErrFileRead,
				"failed to read project settings from %s", path)
		}

		var settings ProjectSettings
		if err := toml.Unmarshal(data, &settings); err != nil {
			return nil, packuperr.Wrapf(err, packuperr.ErrInvalidInput,
				"failed to parse project settings from %s", path)
		}

		logger := logging.GetLogger("config")
		logger.Debug().
			Str("path", path).
			Int("exclude_rules", len(settings.Exclude)).
			Msg("Loaded project settings")
		return &settings, nil
	}

	return &ProjectSettings{}, nil
}
