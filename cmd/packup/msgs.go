package packup

// User-facing messages for the root command. Command-specific
// messages live next to their command.
const (
	MsgRootShort = "Bundle a project into a self-contained deployment layout"
	MsgRootLong  = `packup collects a project's files, splits them into an application
tree and a public tree, and writes a deployment layout with launcher
scripts for each declared command.

Run 'packup help patterns' for the exclusion pattern syntax and
'packup help layout' for the output directory layout.`

	MsgFlagVerbose = "Increase verbosity (-v info, -vv debug, -vvv trace)"

	MsgErrNoCommand = "no command specified"
)

// Messages for the pack command.
const (
	MsgPackShort = "Build the deployment layout for a project"
	MsgPackLong  = `Pack reads the project manifest, applies the exclusion rules, and
writes the deployment layout: application files under approot/src,
public files under the public directory, launcher scripts for each
declared command, and optionally a bundled runtime.`
	MsgPackExample = `  # Pack the project in the current directory
  packup pack -o /tmp/site

  # Pack with a runtime bundled into the output
  packup pack ./src/web -o /tmp/site --runtime KRE-Mono.1.0.0-beta1`

	MsgFlagOut        = "Output directory for the deployment layout"
	MsgFlagWWWRoot    = "Name of the public directory inside the project (overrides the manifest)"
	MsgFlagWWWRootOut = "Name of the public directory in the output"
	MsgFlagRuntime    = "Name of the runtime package to bundle (e.g. KRE-Mono.1.0.0-beta1)"
	MsgFlagPackages   = "Directory holding the project's package cache"

	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrPack       = "pack failed: %w"

	MsgPackHeader      = "Packed %s"
	MsgPackAppFiles    = "  %d application files\n"
	MsgPackPublicFiles = "  %d public files\n"
	MsgPackRuntime     = "  bundled runtime %s\n"
	MsgPackDone        = "Output written to %s"
)

// MsgUsageTemplate is the custom usage template with grouped commands.
const MsgUsageTemplate = `{{boldUpper "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

{{boldUpper "Available Commands:"}}{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{boldUpper $group.Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

{{boldUpper "Additional Commands:"}}{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
