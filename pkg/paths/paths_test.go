// Test Type: Unit Test
// Description: Tests for the paths package - cache and runtime home resolution

package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/packup/pkg/paths"
	"github.com/stretchr/testify/assert"
)

func TestNew_PackagesResolution(t *testing.T) {
	root := filepath.Join("/", "home", "user", "app")

	t.Run("override_wins", func(t *testing.T) {
		p := paths.New(root, "/explicit/cache", "", "packages")
		assert.Equal(t, "/explicit/cache", p.PackagesDir)
	})

	t.Run("default_is_project_local", func(t *testing.T) {
		p := paths.New(root, "", "", "packages")
		assert.Equal(t, filepath.Join(root, "packages"), p.PackagesDir)
	})
}

func TestNew_RuntimeHome(t *testing.T) {
	t.Run("override_wins", func(t *testing.T) {
		p := paths.New("/app", "", "/opt/kre", "packages")
		assert.Equal(t, "/opt/kre", p.RuntimeHome)
		assert.Equal(t, filepath.Join("/opt/kre", "packages", "KRE-Mono.1.0.0"),
			p.RuntimePackageDir("KRE-Mono.1.0.0"))
	})

	t.Run("default_is_dot_kre", func(t *testing.T) {
		p := paths.New("/app", "", "", "packages")
		assert.Equal(t, filepath.Join(xdg.Home, ".kre"), p.RuntimeHome)
	})
}

func TestNew_IgnoresEnvironment(t *testing.T) {
	// Environment resolution belongs to the CLI; the resolver must only
	// see the values it is handed.
	t.Setenv(paths.EnvPackagesDir, "/env/cache")
	t.Setenv(paths.EnvRuntimeHome, "/env/kre")

	p := paths.New("/app", "", "", "packages")
	assert.Equal(t, filepath.Join("/app", "packages"), p.PackagesDir)
	assert.Equal(t, filepath.Join(xdg.Home, ".kre"), p.RuntimeHome)
}

func TestPackageCacheRel(t *testing.T) {
	t.Run("project_local_cache", func(t *testing.T) {
		p := paths.New("/app", "", "", "packages")
		rel, ok := p.PackageCacheRel()
		assert.True(t, ok)
		assert.Equal(t, "packages", rel)
	})

	t.Run("external_cache_is_not_under_root", func(t *testing.T) {
		p := paths.New("/app", "/var/cache/packages", "", "packages")
		_, ok := p.PackageCacheRel()
		assert.False(t, ok)
	})
}

func TestRelative(t *testing.T) {
	got := paths.Relative(
		filepath.Join("/out", "approot", "src", "web"),
		filepath.Join("/out", "wwwroot"))
	assert.Equal(t, filepath.Join("..", "..", "..", "wwwroot"), got)
}
