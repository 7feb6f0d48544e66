// Package settings generates or merges the web.config settings document
// for the public tree. The document is treated as a generic element tree
// so arbitrary unrelated content round-trips unchanged; only the six
// well-known appSettings keys are upserted.
package settings

import (
	"github.com/beevik/etree"

	"github.com/arthur-debert/packup/pkg/errors"
)

// The six well-known appSettings keys the pipeline owns
const (
	KeyPackagesPath        = "kpm-package-path"
	KeyBootstrapperVersion = "bootstrapper-version"
	KeyRuntimePackagesPath = "kre-package-path"
	KeyRuntimeVersion      = "kre-version"
	KeyRuntimeFlavor       = "kre-clr"
	KeyAppBase             = "kre-app-base"
)

// Values holds what the six keys are set to on this pack run.
// Version and flavor stay empty unless a runtime was bundled.
type Values struct {
	// PackagesPath points at the dependency cache, relative to the
	// public tree. It feeds both package-path keys.
	PackagesPath string

	BootstrapperVersion string
	RuntimeVersion      string
	RuntimeFlavor       string

	// AppBase points at the application directory, relative to the
	// public tree
	AppBase string
}

// pairs returns the keys in their canonical emit order
func (v Values) pairs() [][2]string {
	return [][2]string{
		{KeyPackagesPath, v.PackagesPath},
		{KeyBootstrapperVersion, v.BootstrapperVersion},
		{KeyRuntimePackagesPath, v.PackagesPath},
		{KeyRuntimeVersion, v.RuntimeVersion},
		{KeyRuntimeFlavor, v.RuntimeFlavor},
		{KeyAppBase, v.AppBase},
	}
}

// Merge upserts the six keys into an existing settings document, or
// synthesizes a minimal one when existing is empty. Existing entries are
// updated in place, keeping their position and any other attributes;
// everything unrelated is preserved verbatim.
func Merge(existing []byte, v Values) ([]byte, error) {
	if len(existing) == 0 {
		return synthesize(v)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(existing); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsMerge,
			"existing settings document is not well-formed XML")
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New(errors.ErrSettingsMerge,
			"existing settings document has no root element")
	}

	appSettings := root.SelectElement("appSettings")
	if appSettings == nil {
		appSettings = root.CreateElement("appSettings")
	}

	for _, kv := range v.pairs() {
		upsert(appSettings, kv[0], kv[1])
	}

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsMerge,
			"failed to serialize settings document")
	}
	return out, nil
}

// upsert updates the first <add> with the given key anywhere in the
// section, or appends a new one at the end
func upsert(section *etree.Element, key, value string) {
	for _, add := range section.SelectElements("add") {
		if add.SelectAttrValue("key", "") == key {
			add.CreateAttr("value", value)
			return
		}
	}
	add := section.CreateElement("add")
	add.CreateAttr("key", key)
	add.CreateAttr("value", value)
}

// synthesize builds a minimal settings document from scratch
func synthesize(v Values) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	root := doc.CreateElement("configuration")
	appSettings := root.CreateElement("appSettings")
	for _, kv := range v.pairs() {
		add := appSettings.CreateElement("add")
		add.CreateAttr("key", kv[0])
		add.CreateAttr("value", kv[1])
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsMerge,
			"failed to serialize settings document")
	}
	return out, nil
}
