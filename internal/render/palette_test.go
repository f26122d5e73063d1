package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func brightness(c drawing.Color) int {
	return int(c.R) + int(c.G) + int(c.B)
}

func TestParsePaletteDefault(t *testing.T) {
	p, err := ParsePalette("ch:s=1,r=-.1,h=1_r")
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette(), p)
}

func TestParsePaletteErrors(t *testing.T) {
	for _, name := range []string{"viridis", "ch:s", "ch:s=x", "ch:z=1"} {
		_, err := ParsePalette(name)
		assert.Error(t, err, name)
	}
}

func TestParsePaletteBare(t *testing.T) {
	p, err := ParsePalette("ch:")
	require.NoError(t, err)
	assert.Equal(t, 0.4, p.Rot)
	assert.False(t, p.Reverse)
}

func TestColors(t *testing.T) {
	p := DefaultPalette()
	assert.Nil(t, p.Colors(0))
	assert.Len(t, p.Colors(1), 1)

	colors := p.Colors(4)
	require.Len(t, colors, 4)
	// Reversed: dark to light.
	assert.Less(t, brightness(colors[0]), brightness(colors[3]))

	p.Reverse = false
	forward := p.Colors(4)
	for i := range forward {
		assert.Equal(t, forward[i], colors[len(colors)-1-i])
	}
	for _, c := range forward {
		assert.Equal(t, uint8(255), c.A)
	}
}
