package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Type: Unit Test
// Verifies the embedded style definitions load and resolve.

func TestEmbeddedStylesLoad(t *testing.T) {
	require.NoError(t, LoadStylesFromData(embeddedStyles))

	for _, name := range []string{"Header", "Success", "Error", "Warning", "Info", "Muted", "FilePath"} {
		_, ok := StyleRegistry[name]
		assert.True(t, ok, "style %q should be registered", name)
	}
}

func TestGetStyle_UnknownReturnsDefault(t *testing.T) {
	style := GetStyle("DoesNotExist")
	assert.Equal(t, "plain", style.Render("plain"))
}

func TestLoadStylesFromData_Invalid(t *testing.T) {
	err := LoadStylesFromData([]byte("styles: ["))
	assert.Error(t, err)

	// Restore the embedded registry for other tests.
	require.NoError(t, LoadStylesFromData(embeddedStyles))
}
