package packup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Type: Integration Test
// Exercises the CLI surface end to end against a real temp directory.

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestRootCmd_NoArgsShowsHelpAndErrors(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, out.String(), "pack")
}

func TestRootCmd_HasPackFlags(t *testing.T) {
	cmd := NewRootCmd()
	pack, _, err := cmd.Find([]string{"pack"})
	require.NoError(t, err)

	for _, name := range []string{"out", "wwwroot", "wwwroot-out", "runtime", "packages"} {
		assert.NotNil(t, pack.Flags().Lookup(name), "flag --%s should exist", name)
	}
}

func TestPackCmd_PacksProject(t *testing.T) {
	project := writeProject(t, map[string]string{
		"project.json": `{"commands": {"web": "Microsoft.AspNet.Hosting"}}`,
		"Program.cs":   "class Program {}",
	})
	outDir := t.TempDir()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"pack", project, "-o", outDir})

	require.NoError(t, cmd.Execute())

	name := filepath.Base(project)
	_, err := os.Stat(filepath.Join(outDir, "approot", "src", name, "Program.cs"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "web.cmd"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "web.sh"))
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "2 application files")
	assert.Contains(t, out.String(), "Output written to")
}

func TestPackCmd_AcceptsManifestPath(t *testing.T) {
	project := writeProject(t, map[string]string{
		"project.json": `{"commands": {"web": "run"}}`,
		".packup.toml": "[host]\nlauncher = \"myhost\"\n",
	})
	outDir := t.TempDir()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"pack", filepath.Join(project, "project.json"), "-o", outDir})

	require.NoError(t, cmd.Execute())

	// The project-local tool config applies in the manifest-file form too.
	sh, err := os.ReadFile(filepath.Join(outDir, "web.sh"))
	require.NoError(t, err)
	assert.Contains(t, string(sh), "myhost")
}

func TestPackCmd_ResolvesPackagesEnv(t *testing.T) {
	project := writeProject(t, map[string]string{
		"project.json":        `{}`,
		"mypkgs/cached.nupkg": "cached",
	})
	t.Setenv("KRE_PACKAGES", filepath.Join(project, "mypkgs"))
	outDir := t.TempDir()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"pack", project, "-o", outDir})

	require.NoError(t, cmd.Execute())

	// The env-named cache stays out of the application tree.
	name := filepath.Base(project)
	_, err := os.Stat(filepath.Join(outDir, "approot", "src", name, "mypkgs"))
	assert.True(t, os.IsNotExist(err))
}

func TestPackCmd_MissingManifestFails(t *testing.T) {
	project := writeProject(t, map[string]string{
		"readme.txt": "no manifest here",
	})

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"pack", project, "-o", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pack failed")
}

func TestHelpTopics_Available(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"help", "topics"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "patterns")
	assert.Contains(t, out.String(), "layout")
}
