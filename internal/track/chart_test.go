package track

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/pulse/pkg/board"
)

func TestRenderChartColors(t *testing.T) {
	nodes := Layout([]board.TrackingEvent{
		eventAt(0, "PRINT"),
		eventAt(1, "REPRINT"),
		eventAt(2, "PACK"),
	})
	img := RenderChart(nodes)

	assert.Equal(t, chartBackground, img.RGBAAt(0, 0))
	assert.Equal(t, chartChainColor, img.RGBAAt(nodes[0].X, nodes[0].Y), "chain node fill")
	assert.Equal(t, chartReprintColor, img.RGBAAt(nodes[1].X, nodes[1].Y), "reprint node takes the distinguishing color")
	assert.Equal(t, chartChainColor, img.RGBAAt(nodes[2].X, nodes[2].Y))
}

func TestRenderChartFitsAllNodes(t *testing.T) {
	nodes := Layout([]board.TrackingEvent{
		eventAt(0, "PRINT"),
		eventAt(1, "REPRINT"),
		eventAt(2, "PRINT"),
		eventAt(3, "CUT"),
	})
	img := RenderChart(nodes)

	for i, n := range nodes {
		assert.True(t, n.X+nodeRadius < img.Bounds().Max.X, "node %d inside the right edge", i)
		assert.True(t, n.Y+nodeRadius < img.Bounds().Max.Y, "node %d inside the bottom edge", i)
	}
}

func TestWriteChartEncodesPNG(t *testing.T) {
	var buf bytes.Buffer
	err := WriteChart(&buf, []board.TrackingEvent{eventAt(0, "PRINT")})
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.False(t, img.Bounds().Empty())
}

func TestRenderChartEmptyHistory(t *testing.T) {
	img := RenderChart(nil)
	require.NotNil(t, img)
	assert.False(t, img.Bounds().Empty())
	assert.Equal(t, chartBackground, img.RGBAAt(1, 1))
}
