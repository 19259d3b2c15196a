package icons

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSVG(t *testing.T, dataURI string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(dataURI, "data:image/svg+xml;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURI, "data:image/svg+xml;base64,"))
	require.NoError(t, err)
	return string(raw)
}

func TestRender(t *testing.T) {
	svg := decodeSVG(t, Render("Lightbulb", "#FF5733", 48))

	assert.Contains(t, svg, `width="48"`)
	assert.Contains(t, svg, `height="48"`)
	assert.Contains(t, svg, `stroke="#FF5733"`)
	assert.Contains(t, svg, `viewBox="0 0 24 24"`)
	assert.Contains(t, svg, "M9 18h6")
}

func TestRenderUnknownFallsBack(t *testing.T) {
	unknown := decodeSVG(t, Render("NoSuchIcon", "#000", 24))
	fallback := decodeSVG(t, Render(DefaultName, "#000", 24))
	assert.Equal(t, fallback, unknown)
}

func TestRenderDefaults(t *testing.T) {
	svg := decodeSVG(t, Render("Star", "", 0))
	assert.Contains(t, svg, `stroke="#000000"`)
	assert.Contains(t, svg, `width="24"`)
}

func TestCatalogIsClosed(t *testing.T) {
	names := Names()
	assert.NotEmpty(t, names)
	for _, name := range names {
		assert.True(t, Has(name))
		assert.NotEmpty(t, decodeSVG(t, Render(name, "#123456", 32)))
	}
	assert.True(t, Has(DefaultName))
	assert.False(t, Has("Sparkles"))
}
