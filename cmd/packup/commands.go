package packup

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/packup/internal/version"
	"github.com/arthur-debert/packup/pkg/cobrax/topics"
	"github.com/arthur-debert/packup/pkg/config"
	"github.com/arthur-debert/packup/pkg/filesystem"
	"github.com/arthur-debert/packup/pkg/logging"
	"github.com/arthur-debert/packup/pkg/packer"
	"github.com/arthur-debert/packup/pkg/paths"
	"github.com/arthur-debert/packup/pkg/ui/output/styles"
)

//go:embed topics/*.md
var topicsFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "packup",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand given; show help but signal incorrect usage.
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newPackCmd())

	// Topic-based help: the documents ship inside the binary.
	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		_, _ = topics.Initialize(rootCmd, sub, topics.NewGlamourRenderer())
	}

	return rootCmd
}

func newPackCmd() *cobra.Command {
	var opts packer.Options

	cmd := &cobra.Command{
		Use:     "pack [project]",
		Short:   MsgPackShort,
		Long:    MsgPackLong,
		Example: MsgPackExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.ProjectPath = args[0]
			} else {
				opts.ProjectPath = "."
			}

			// The environment is resolved here; the pipeline only sees
			// final paths.
			if opts.Packages == "" {
				opts.Packages = os.Getenv(paths.EnvPackagesDir)
			}
			opts.RuntimeHome = os.Getenv(paths.EnvRuntimeHome)

			cfg, err := config.Load(projectDir(opts.ProjectPath))
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}

			log.Info().
				Str("project", opts.ProjectPath).
				Str("out", opts.OutDir).
				Str("runtime", opts.Runtime).
				Msg("Packing project")

			p := packer.New(filesystem.NewOS(), cfg)
			result, err := p.Pack(opts)
			if err != nil {
				return fmt.Errorf(MsgErrPack, err)
			}

			printResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", "", MsgFlagOut)
	cmd.Flags().StringVar(&opts.WWWRoot, "wwwroot", "", MsgFlagWWWRoot)
	cmd.Flags().StringVar(&opts.WWWRootOut, "wwwroot-out", "", MsgFlagWWWRootOut)
	cmd.Flags().StringVar(&opts.Runtime, "runtime", "", MsgFlagRuntime)
	cmd.Flags().StringVar(&opts.Packages, "packages", "", MsgFlagPackages)

	return cmd
}

// projectDir maps either accepted project argument form, the project
// directory or its manifest file, to the directory.
func projectDir(projectPath string) string {
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return filepath.Dir(projectPath)
	}
	return projectPath
}

func printResult(cmd *cobra.Command, result *packer.Result) {
	out := cmd.OutOrStdout()
	header := styles.GetStyle("Header")
	success := styles.GetStyle("Success")
	pathStyle := styles.GetStyle("FilePath")

	fmt.Fprintln(out, header.Render(fmt.Sprintf(MsgPackHeader, result.ProjectName)))
	fmt.Fprintf(out, MsgPackAppFiles, result.AppFiles)
	fmt.Fprintln(out, pathStyle.Render(result.AppDir))
	if result.PublicDir != "" {
		fmt.Fprintf(out, MsgPackPublicFiles, result.PublicFiles)
		fmt.Fprintln(out, pathStyle.Render(result.PublicDir))
	}
	for _, script := range result.Scripts {
		fmt.Fprintln(out, pathStyle.Render(script))
	}
	if result.Runtime != nil {
		fmt.Fprintf(out, MsgPackRuntime, result.Runtime.Name)
	}
	fmt.Fprintln(out, success.Render(fmt.Sprintf(MsgPackDone, result.OutDir)))
}
