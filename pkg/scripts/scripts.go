// Package scripts renders the per-command launcher scripts placed at the
// output root: one Windows-style .cmd and one POSIX-style .sh per declared
// command. Each family is a pure template over the same inputs so the two
// dialects stay independently testable.
package scripts

import (
	"runtime"
	"strings"
	"text/template"

	"github.com/arthur-debert/packup/pkg/errors"
)

const windowsTemplate = `@"{{.LauncherDir}}{{.Launcher}}.exe" --appbase "%~dp0approot\src\{{.ProjectName}}" {{.EntryPoint}} {{.CommandValue}} %*
`

// The POSIX script resolves its own real location through symlinks first,
// so invocation via a symlink still finds the application directory.
const posixTemplate = `#!/usr/bin/env bash

SOURCE="${BASH_SOURCE[0]}"
while [ -h "$SOURCE" ]; do
  DIR="$( cd -P "$( dirname "$SOURCE" )" && pwd )"
  SOURCE="$(readlink "$SOURCE")"
  [[ $SOURCE != /* ]] && SOURCE="$DIR/$SOURCE"
done
DIR="$( cd -P "$( dirname "$SOURCE" )" && pwd )"

export {{.AppbaseEnv}}="$DIR/approot/src/{{.ProjectName}}"

exec "{{.LauncherDir}}{{.Launcher}}" {{.EntryPoint}} {{.CommandValue}} "$@"
`

var (
	windowsTmpl = template.Must(template.New("cmd").Parse(windowsTemplate))
	posixTmpl   = template.Must(template.New("sh").Parse(posixTemplate))
)

// Generator renders launcher scripts for one pack run
type Generator struct {
	// Launcher is the hosting launcher binary name, without extension
	Launcher string

	// EntryPoint is the hosting entry point passed to the launcher
	EntryPoint string

	// AppbaseEnv is the environment variable the POSIX script exports
	AppbaseEnv string

	// RuntimeName is the bundled runtime package name, or empty when the
	// launcher resolves via the caller's search path
	RuntimeName string
}

type scriptData struct {
	ProjectName  string
	CommandValue string
	Launcher     string
	EntryPoint   string
	AppbaseEnv   string
	LauncherDir  string
}

// Windows renders the .cmd variant. Line endings follow the host
// convention.
func (g Generator) Windows(projectName, commandValue string) (string, error) {
	data := scriptData{
		ProjectName:  projectName,
		CommandValue: commandValue,
		Launcher:     g.Launcher,
		EntryPoint:   g.EntryPoint,
	}
	if g.RuntimeName != "" {
		data.LauncherDir = `%~dp0approot\packages\` + g.RuntimeName + `\bin\`
	}

	var sb strings.Builder
	if err := windowsTmpl.Execute(&sb, data); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render cmd script")
	}
	out := sb.String()
	if runtime.GOOS == "windows" {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	return out, nil
}

// Posix renders the .sh variant. Line endings are always line-feed-only,
// whatever the host convention.
func (g Generator) Posix(projectName, commandValue string) (string, error) {
	data := scriptData{
		ProjectName:  projectName,
		CommandValue: commandValue,
		Launcher:     g.Launcher,
		EntryPoint:   g.EntryPoint,
		AppbaseEnv:   g.AppbaseEnv,
	}
	if g.RuntimeName != "" {
		data.LauncherDir = "$DIR/approot/packages/" + g.RuntimeName + "/bin/"
	}

	var sb strings.Builder
	if err := posixTmpl.Execute(&sb, data); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render sh script")
	}
	return sb.String(), nil
}
