// Test Type: Unit Test
// Description: Tests for the settings package - web.config synthesis and non-destructive merge

package settings_test

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packup/pkg/errors"
	"github.com/arthur-debert/packup/pkg/settings"
)

var testValues = settings.Values{
	PackagesPath: `../approot/packages`,
	AppBase:      `../approot/src/web`,
}

// appSettingsMap parses a document and returns key → value for every <add>
func appSettingsMap(t *testing.T, doc []byte) map[string]string {
	t.Helper()
	d := etree.NewDocument()
	require.NoError(t, d.ReadFromBytes(doc))
	section := d.Root().SelectElement("appSettings")
	require.NotNil(t, section)

	out := map[string]string{}
	for _, add := range section.SelectElements("add") {
		out[add.SelectAttrValue("key", "")] = add.SelectAttrValue("value", "")
	}
	return out
}

func TestMerge_Synthesize(t *testing.T) {
	out, err := settings.Merge(nil, testValues)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out), "<?xml"))

	got := appSettingsMap(t, out)
	assert.Equal(t, map[string]string{
		"kpm-package-path":     "../approot/packages",
		"bootstrapper-version": "",
		"kre-package-path":     "../approot/packages",
		"kre-version":          "",
		"kre-clr":              "",
		"kre-app-base":         "../approot/src/web",
	}, got)
}

func TestMerge_RuntimeIdentityPopulated(t *testing.T) {
	v := testValues
	v.RuntimeVersion = "1.0.0-beta1"
	v.RuntimeFlavor = "Mono"

	out, err := settings.Merge(nil, v)
	require.NoError(t, err)

	got := appSettingsMap(t, out)
	assert.Equal(t, "1.0.0-beta1", got["kre-version"])
	assert.Equal(t, "Mono", got["kre-clr"])
}

func TestMerge_PreservesUnrelatedContent(t *testing.T) {
	existing := `<?xml version="1.0" encoding="utf-8"?>
<configuration>
  <system.webServer>
    <handlers>
      <add name="httpPlatformHandler" path="*" verb="*" />
    </handlers>
  </system.webServer>
  <appSettings>
    <add key="my-own-setting" value="untouched" />
    <add key="kre-app-base" value="stale" extra="kept" />
  </appSettings>
</configuration>`

	out, err := settings.Merge([]byte(existing), testValues)
	require.NoError(t, err)
	text := string(out)

	// Unrelated section survives verbatim
	assert.Contains(t, text, `<add name="httpPlatformHandler" path="*" verb="*"/>`)

	// Unrelated key inside appSettings survives
	got := appSettingsMap(t, out)
	assert.Equal(t, "untouched", got["my-own-setting"])

	// Known key updated in place, other attributes kept
	assert.Equal(t, "../approot/src/web", got["kre-app-base"])
	assert.Contains(t, text, `extra="kept"`)

	// Updated in place means position is kept: the unrelated key still
	// precedes the updated one
	assert.Less(t, strings.Index(text, "my-own-setting"), strings.Index(text, "kre-app-base"))
}

func TestMerge_CreatesMissingSection(t *testing.T) {
	existing := `<configuration><connectionStrings/></configuration>`

	out, err := settings.Merge([]byte(existing), testValues)
	require.NoError(t, err)

	assert.Contains(t, string(out), "<connectionStrings/>")
	got := appSettingsMap(t, out)
	assert.Len(t, got, 6)
}

func TestMerge_Idempotent(t *testing.T) {
	first, err := settings.Merge(nil, testValues)
	require.NoError(t, err)

	second, err := settings.Merge(first, testValues)
	require.NoError(t, err)

	// Re-running against its own output updates the six keys to the same
	// values without duplicating entries
	d := etree.NewDocument()
	require.NoError(t, d.ReadFromBytes(second))
	adds := d.Root().SelectElement("appSettings").SelectElements("add")
	assert.Len(t, adds, 6)
	assert.Equal(t, appSettingsMap(t, first), appSettingsMap(t, second))
}

func TestMerge_MalformedDocument(t *testing.T) {
	_, err := settings.Merge([]byte(`<configuration><unclosed>`), testValues)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSettingsMerge))
}
