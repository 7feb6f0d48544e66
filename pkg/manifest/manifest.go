// Package manifest reads the handful of project.json fields the packaging
// pipeline consumes and rewrites the copied manifest's webroot reference.
// Everything else in the document is opaque and passes through unchanged.
// The rewrite preserves each top-level field's bytes and order but lays
// the fields out with a uniform two-space indent, so inter-field
// whitespace from the original document is not retained.
package manifest

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/packup/pkg/errors"
	"github.com/arthur-debert/packup/pkg/types"
)

// Command is one declared command, in manifest order
type Command struct {
	Name  string
	Value string
}

// Manifest is the read-only view of the fields the pipeline consumes.
// Raw holds the document bytes so copies preserve untouched content.
type Manifest struct {
	// Name is the project name, defaulted from the directory name
	Name string

	// WebRoot is the declared public-asset root, or empty
	WebRoot string

	// Commands preserves the manifest's declaration order
	Commands []Command

	// PackExclude holds the raw exclusion pattern strings
	PackExclude []string

	// Path is the manifest file location
	Path string

	// Raw is the manifest document as read from disk
	Raw []byte
}

// Load reads the manifest for a project. projectPath may be the project
// directory or the manifest file itself.
func Load(fs types.FS, projectPath, manifestName string) (*Manifest, error) {
	manifestPath := projectPath
	if info, err := fs.Stat(projectPath); err == nil && info.IsDir() {
		manifestPath = filepath.Join(projectPath, manifestName)
	}

	raw, err := fs.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad,
			"failed to read manifest %s", manifestPath)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad,
			"manifest %s is not a JSON object", manifestPath)
	}

	m := &Manifest{
		Name: filepath.Base(filepath.Dir(manifestPath)),
		Path: manifestPath,
		Raw:  raw,
	}

	if v, ok := doc["webroot"]; ok {
		if err := json.Unmarshal(v, &m.WebRoot); err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestField,
				"manifest field webroot in %s must be a string", manifestPath)
		}
	}

	if v, ok := doc["packExclude"]; ok {
		patterns, err := parsePackExclude(v)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestField,
				"manifest field packExclude in %s must be a string or array of strings", manifestPath)
		}
		m.PackExclude = patterns
	}

	if v, ok := doc["commands"]; ok {
		commands, err := parseCommands(v)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestField,
				"manifest field commands in %s must map names to command lines", manifestPath)
		}
		m.Commands = commands
	}

	return m, nil
}

// parsePackExclude accepts a single pattern string or an array of them
func parsePackExclude(raw json.RawMessage) ([]string, error) {
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		if strings.TrimSpace(one) == "" {
			return nil, nil
		}
		return []string{one}, nil
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, err
	}
	return many, nil
}

// parseCommands decodes the commands object preserving declaration order
func parseCommands(raw json.RawMessage) ([]Command, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New(errors.ErrManifestField, "commands is not an object")
	}

	var commands []Command
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := keyTok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		commands = append(commands, Command{Name: name, Value: value})
	}

	return commands, nil
}
