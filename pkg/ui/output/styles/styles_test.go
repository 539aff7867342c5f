package styles_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/attachlink/pkg/ui/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleRegistry_EmbeddedDefinesAllNames(t *testing.T) {
	for _, name := range styles.Names {
		_, ok := styles.StyleRegistry[name]
		assert.True(t, ok, "style %s should be defined", name)
	}
}

func TestGetStyle(t *testing.T) {
	assert.True(t, styles.GetStyle("Bold").GetBold())
	assert.True(t, styles.GetStyle("Error").GetBold())
	assert.Equal(t, 9, styles.GetStyle("Status").GetWidth())

	unknown := styles.GetStyle("NoSuchStyle")
	assert.Equal(t, lipgloss.NewStyle().Render("x"), unknown.Render("x"))
}

func TestMergeStyles(t *testing.T) {
	merged := styles.MergeStyles("Bold", "Italic")
	assert.True(t, merged.GetBold())
	assert.True(t, merged.GetItalic())
}

func TestLoadStylesFromData(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, styles.LoadStyles("styles.yaml")) })

	data := []byte(`
colors:
  red:
    light: "#FF0000"
    dark: "#AA0000"
styles:
  Alert:
    bold: true
    foreground: red
    align: right
    paddingLeft: 2
`)
	require.NoError(t, styles.LoadStylesFromData(data))

	alert := styles.GetStyle("Alert")
	assert.True(t, alert.GetBold())
	assert.Equal(t, lipgloss.Right, alert.GetAlignHorizontal())
	assert.Equal(t, 2, alert.GetPaddingLeft())
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#AA0000"}, alert.GetForeground())

	_, ok := styles.StyleRegistry["Header"]
	assert.False(t, ok, "loading replaces the registry")
}

func TestLoadStylesFromData_Invalid(t *testing.T) {
	assert.Error(t, styles.LoadStylesFromData([]byte("styles: [")))
	assert.Error(t, styles.LoadStylesFromData([]byte("colors: {}")))
}

func TestLoadStyles_File(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, styles.LoadStyles("styles.yaml")) })

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("styles:\n  Header:\n    italic: true\n"), 0644))

	require.NoError(t, styles.LoadStyles(path))
	assert.True(t, styles.GetStyle("Header").GetItalic())

	assert.Error(t, styles.LoadStyles(filepath.Join(t.TempDir(), "missing.yaml")))
}
