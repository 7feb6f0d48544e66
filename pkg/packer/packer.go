// Package packer sequences one pack run: partition the source tree, copy
// the classified files, write the generated configuration, render launcher
// scripts, and bundle a runtime when requested. The pipeline is fail-fast
// and additive: the first failing step aborts the run and whatever was
// already written stays on disk.
package packer

import (
	"encoding/json"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/packup/pkg/bundle"
	"github.com/arthur-debert/packup/pkg/config"
	"github.com/arthur-debert/packup/pkg/errors"
	"github.com/arthur-debert/packup/pkg/exclude"
	"github.com/arthur-debert/packup/pkg/logging"
	"github.com/arthur-debert/packup/pkg/manifest"
	"github.com/arthur-debert/packup/pkg/partition"
	"github.com/arthur-debert/packup/pkg/paths"
	"github.com/arthur-debert/packup/pkg/scripts"
	"github.com/arthur-debert/packup/pkg/settings"
	"github.com/arthur-debert/packup/pkg/types"
)

// Options are the caller-supplied inputs for one pack run
type Options struct {
	// ProjectPath is the project directory or its manifest file
	ProjectPath string

	// OutDir is the output directory; pre-existing unrelated content is
	// left alone
	OutDir string

	// WWWRoot overrides the manifest's webroot (relative to the project
	// root)
	WWWRoot string

	// WWWRootOut names the public tree directory in the output
	WWWRootOut string

	// Runtime is the runtime package to embed, or empty
	Runtime string

	// Packages overrides the dependency cache location
	Packages string

	// RuntimeHome overrides where extracted runtime packages are looked
	// up. The CLI resolves this from the environment; the pipeline never
	// reads environment state itself.
	RuntimeHome string
}

// Result summarizes a completed pack run
type Result struct {
	ProjectName string
	OutDir      string
	AppDir      string
	PublicDir   string
	AppFiles    int
	PublicFiles int
	Scripts     []string
	Runtime     *bundle.Identity
}

// Packer runs the packaging pipeline
type Packer struct {
	fs     types.FS
	cfg    *config.Config
	logger zerolog.Logger
}

// New creates a packer over the given filesystem and configuration
func New(fs types.FS, cfg *config.Config) *Packer {
	return &Packer{
		fs:     fs,
		cfg:    cfg,
		logger: logging.GetLogger("packer"),
	}
}

// Pack executes the pipeline. Steps run in a fixed order and the first
// error aborts the run; partial output is not cleaned up.
func (p *Packer) Pack(opts Options) (*Result, error) {
	projectRoot := opts.ProjectPath
	if info, err := p.fs.Stat(projectRoot); err == nil && !info.IsDir() {
		projectRoot = filepath.Dir(projectRoot)
	}

	m, err := manifest.Load(p.fs, opts.ProjectPath, p.cfg.Pack.ManifestName)
	if err != nil {
		return nil, err
	}

	if err := p.fs.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create output directory %s", opts.OutDir)
	}

	pths := paths.New(projectRoot, opts.Packages, opts.RuntimeHome, p.cfg.Pack.PackagesDir)

	webroot := opts.WWWRoot
	if webroot == "" {
		webroot = m.WebRoot
	}
	webroot = filepath.ToSlash(webroot)

	publicOut := opts.WWWRootOut
	if publicOut == "" {
		publicOut = p.cfg.Pack.PublicDir
	}

	p.logger.Info().
		Str("project", m.Name).
		Str("out", opts.OutDir).
		Str("webroot", webroot).
		Msg("Starting pack")

	// Compile the effective exclusion set: manifest patterns, project
	// settings rules, plus defaults
	projRules, err := config.LoadProjectSettings(p.fs, projectRoot)
	if err != nil {
		return nil, err
	}
	rawPatterns := append(append([]string{}, m.PackExclude...), projRules.ExtraPatterns()...)
	patterns, err := exclude.CompileAll(rawPatterns, partition.DirExists(p.fs, projectRoot))
	if err != nil {
		return nil, err
	}
	cacheRel, _ := pths.PackageCacheRel()
	matcher := exclude.NewMatcher(patterns, p.cfg.Pack.DefaultExcludes, cacheRel)

	files, err := partition.New(p.fs).Partition(projectRoot, webroot, p.cfg.Pack.ManifestName, matcher)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ProjectName: m.Name,
		OutDir:      opts.OutDir,
		AppDir:      filepath.Join(opts.OutDir, "approot", "src", m.Name),
	}
	if webroot != "" {
		result.PublicDir = filepath.Join(opts.OutDir, publicOut)
	}

	var runtimeID *bundle.Identity
	if opts.Runtime != "" {
		id := bundle.ParseIdentity(opts.Runtime)
		runtimeID = &id
	}

	if err := p.copyFiles(projectRoot, files, result); err != nil {
		return nil, err
	}

	if err := p.writeGlobalFile(opts.OutDir); err != nil {
		return nil, err
	}

	if err := p.writeManifestCopy(m, result); err != nil {
		return nil, err
	}

	if webroot != "" {
		if err := p.writeSettings(projectRoot, webroot, runtimeID, result); err != nil {
			return nil, err
		}
	}

	if err := p.writeScripts(m, opts, result); err != nil {
		return nil, err
	}

	if opts.Runtime != "" {
		id, err := bundle.New(p.fs).Bundle(opts.Runtime,
			pths.RuntimePackageDir(opts.Runtime),
			filepath.Join(opts.OutDir, "approot", paths.RuntimePackagesDir))
		if err != nil {
			return nil, err
		}
		result.Runtime = id
	}

	p.logger.Info().
		Int("appFiles", result.AppFiles).
		Int("publicFiles", result.PublicFiles).
		Msg("Pack complete")
	return result, nil
}

// copyFiles copies every classified file into its destination tree
func (p *Packer) copyFiles(projectRoot string, files []partition.File, result *Result) error {
	for _, f := range files {
		src := filepath.Join(projectRoot, filepath.FromSlash(f.SourceRel))

		var dest string
		switch f.Dest {
		case partition.DestPublic:
			dest = filepath.Join(result.PublicDir, filepath.FromSlash(f.DestRel))
			result.PublicFiles++
		default:
			dest = filepath.Join(result.AppDir, filepath.FromSlash(f.DestRel))
			result.AppFiles++
		}

		if err := p.copyFile(src, dest); err != nil {
			return err
		}
	}
	return nil
}

func (p *Packer) copyFile(src, dest string) error {
	data, err := p.fs.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to read %s", src)
	}
	if err := p.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", dest)
	}

	perm := fs.FileMode(0644)
	if info, err := p.fs.Stat(src); err == nil && info.Mode().Perm() != 0 {
		perm = info.Mode().Perm()
	}
	if err := p.fs.WriteFile(dest, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to write %s", dest)
	}
	return nil
}

// writeGlobalFile writes approot/global.json: per-application dependencies
// live in the application manifest, so the dependency map here is empty
func (p *Packer) writeGlobalFile(outDir string) error {
	doc := struct {
		Dependencies map[string]string `json:"dependencies"`
		Packages     string            `json:"packages"`
	}{
		Dependencies: map[string]string{},
		Packages:     p.cfg.Pack.PackagesDir,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode global.json")
	}
	data = append(data, '\n')

	path := filepath.Join(outDir, "approot", "global.json")
	if err := p.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", path)
	}
	if err := p.fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}

// writeManifestCopy rewrites the application-tree manifest copy so its
// webroot points back at the produced public tree. Without a public tree
// the manifest is copied through unchanged.
func (p *Packer) writeManifestCopy(m *manifest.Manifest, result *Result) error {
	data := m.Raw
	if result.PublicDir != "" {
		rewritten, err := manifest.RewriteWebRoot(m.Raw, paths.Relative(result.AppDir, result.PublicDir))
		if err != nil {
			return err
		}
		data = rewritten
	}

	dest := filepath.Join(result.AppDir, p.cfg.Pack.ManifestName)
	if err := p.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", dest)
	}
	if err := p.fs.WriteFile(dest, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write manifest copy %s", dest)
	}
	return nil
}

// writeSettings merges or synthesizes the public tree's settings document
func (p *Packer) writeSettings(projectRoot, webroot string, runtimeID *bundle.Identity, result *Result) error {
	packagesDir := filepath.Join(result.OutDir, "approot", paths.RuntimePackagesDir)
	values := settings.Values{
		PackagesPath: paths.Relative(result.PublicDir, packagesDir),
		AppBase:      paths.Relative(result.PublicDir, result.AppDir),
	}
	if runtimeID != nil {
		values.RuntimeVersion = runtimeID.Version
		values.RuntimeFlavor = runtimeID.Flavor
	}

	// An existing settings document in the source webroot is merged, not
	// replaced
	var existing []byte
	sourceSettings := filepath.Join(projectRoot, filepath.FromSlash(webroot), p.cfg.Pack.SettingsFile)
	if data, err := p.fs.ReadFile(sourceSettings); err == nil {
		existing = data
	}

	merged, err := settings.Merge(existing, values)
	if err != nil {
		return err
	}

	dest := filepath.Join(result.PublicDir, p.cfg.Pack.SettingsFile)
	if err := p.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", dest)
	}
	if err := p.fs.WriteFile(dest, merged, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write settings document %s", dest)
	}
	return nil
}

// writeScripts renders one .cmd/.sh pair per declared command at the
// output root
func (p *Packer) writeScripts(m *manifest.Manifest, opts Options, result *Result) error {
	if len(m.Commands) == 0 {
		return nil
	}

	gen := scripts.Generator{
		Launcher:    p.cfg.Host.Launcher,
		EntryPoint:  p.cfg.Host.EntryPoint,
		AppbaseEnv:  p.cfg.Host.AppbaseEnv,
		RuntimeName: opts.Runtime,
	}

	for _, cmd := range m.Commands {
		winOut, err := gen.Windows(m.Name, cmd.Value)
		if err != nil {
			return err
		}
		winPath := filepath.Join(opts.OutDir, cmd.Name+".cmd")
		if err := p.fs.WriteFile(winPath, []byte(winOut), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", winPath)
		}

		shOut, err := gen.Posix(m.Name, cmd.Value)
		if err != nil {
			return err
		}
		shPath := filepath.Join(opts.OutDir, cmd.Name+".sh")
		if err := p.fs.WriteFile(shPath, []byte(shOut), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", shPath)
		}

		result.Scripts = append(result.Scripts, cmd.Name+".cmd", cmd.Name+".sh")
	}
	return nil
}
