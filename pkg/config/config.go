// Package config loads packup's tool configuration: embedded defaults
// layered under an optional project-local .packup.toml override.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	packuperr "github.com/arthur-debert/packup/pkg/errors"
)

// Config is the typed view of the merged configuration
type Config struct {
	Pack PackConfig `koanf:"pack"`
	Host HostConfig `koanf:"host"`
}

// PackConfig controls the packaging pipeline's names and defaults
type PackConfig struct {
	PackagesDir     string   `koanf:"packages-dir"`
	PublicDir       string   `koanf:"public-dir"`
	ManifestName    string   `koanf:"manifest-name"`
	SettingsFile    string   `koanf:"settings-file"`
	DefaultExcludes []string `koanf:"default-excludes"`
}

// HostConfig describes the hosting launcher the generated scripts invoke
type HostConfig struct {
	Launcher   string `koanf:"launcher"`
	EntryPoint string `koanf:"entry-point"`
	AppbaseEnv string `koanf:"appbase-env"`
}

// rawBytesProvider adapts an embedded byte slice to koanf's Provider
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load returns the effective configuration for a project directory.
// The embedded defaults are always loaded; a .packup.toml (or packup.toml)
// in the project directory overrides them key by key.
func Load(projectDir string) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, packuperr.Wrap(err, packuperr.ErrInternal, "failed to load embedded defaults")
	}

	// 2. Project-local override, if present
	if projectDir != "" {
		for _, filename := range []string{".packup.toml", "packup.toml"} {
			path := filepath.Join(projectDir, filename)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
					return nil, packuperr.Wrapf(err, packuperr.ErrInvalidInput,
						"failed to load config from %s", path)
				}
				break
			}
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, packuperr.Wrap(err, packuperr.ErrInternal, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// Default returns the embedded defaults with no project override applied
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// The embedded defaults are compiled in; failing to parse them is
		// a programming error, not a runtime condition.
		panic(err)
	}
	return cfg
}
